package httpapi

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	app "mask-compare/internal/application"
	"mask-compare/internal/container"
	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
	"mask-compare/internal/infrastructure/progress"
	"mask-compare/internal/infrastructure/storage"
	"mask-compare/internal/infrastructure/vision"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	root, orig, gt, mine, other string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	fx := fixture{
		root:  root,
		orig:  filepath.Join(root, "orig"),
		gt:    filepath.Join(root, "gt"),
		mine:  filepath.Join(root, "mine"),
		other: filepath.Join(root, "other"),
	}
	for _, dir := range []string{fx.orig, fx.gt, fx.mine, fx.other} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	for _, name := range []string{"a.png", "b.png"} {
		writePNG(t, filepath.Join(fx.orig, name), 0)
		writePNG(t, filepath.Join(fx.gt, name), 255)
		writePNG(t, filepath.Join(fx.other, name), 255)
	}
	writePNG(t, filepath.Join(fx.mine, "a.png"), 255)
	return fx
}

func writePNG(t *testing.T, path string, value uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	img.SetGray(0, 0, color.Gray{Y: 0})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestServer(opts ...Option) *Server {
	c := container.New(storage.NewFolderScanner(), vision.NewImageDecoder(), storage.NewLocalExportStore(), app.ComparisonOptions{}, nil)
	return NewServer(c, NewProgressHub(nil), nil, opts...)
}

func do(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScanAndProbe(t *testing.T) {
	fx := newFixture(t)
	h := newTestServer().Router()

	w := do(t, h, "/api/folders/scan", gin.H{"path": fx.gt})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"files":["a.png","b.png"]}`, w.Body.String())

	w = do(t, h, "/api/folders/scan", gin.H{"path": filepath.Join(fx.root, "nope")})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "/api/files/probe", gin.H{"path": filepath.Join(fx.gt, "a.png")})
	require.JSONEq(t, `{"is_file":true}`, w.Body.String())
}

func TestValidateEndpoint(t *testing.T) {
	fx := newFixture(t)
	h := newTestServer().Router()

	w := do(t, h, "/api/folders/validate", gin.H{"folders": []string{fx.orig, fx.gt}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "/api/folders/validate", gin.H{"folders": []string{fx.orig, filepath.Join(fx.root, "nope"), fx.mine}})
	require.Equal(t, http.StatusNotFound, w.Code)
	var nf map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nf))
	require.Equal(t, "ground truth", nf["role"])

	w = do(t, h, "/api/folders/validate", gin.H{"folders": []string{fx.orig, fx.gt, fx.mine, fx.other}})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"is_valid":true,"common_files":["a.png"],"missing_files":{}}`, w.Body.String())
}

func TestCompareEndpoint(t *testing.T) {
	fx := newFixture(t)
	rec := &progress.Recorder{}
	released := false
	h := newTestServer(WithRunSinks(func(runID string) (port.ProgressSink, func()) {
		return rec, func() { released = true }
	})).Router()

	w := do(t, h, "/api/comparisons", gin.H{
		"original_folder":    fx.orig,
		"gt_folder":          fx.gt,
		"my_folder":          fx.mine,
		"comparison_folders": []gin.H{{"name": "other", "path": fx.other}},
		"common_files":       []string{"a.png", "b.png"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Run-ID"))
	require.True(t, released)
	require.Len(t, rec.Events, 3)

	var resp struct {
		RunID   string `json:"run_id"`
		Results []struct {
			Filename  string                    `json:"filename"`
			IOUScores entity.LabeledMap[float64] `json:"iou_scores"`
			Paths     entity.LabeledMap[string]  `json:"paths"`
			Failures  []entity.MetricFailure     `json:"failures"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	require.Equal(t, []string{entity.LabelPrimary, "other"}, resp.Results[0].IOUScores.Labels())
	require.Equal(t, []string{entity.LabelOriginal, entity.LabelGroundTruth, entity.LabelPrimary, "other"}, resp.Results[0].Paths.Labels())
	mine, _ := resp.Results[1].IOUScores.Get(entity.LabelPrimary)
	require.Equal(t, 0.0, mine)
	require.Len(t, resp.Results[1].Failures, 2)

	w = do(t, h, "/api/comparisons", gin.H{"gt_folder": fx.gt})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

type exportSpy struct{ calls int }

func (e *exportSpy) ExportFinished(*entity.ExportOutcome, error) { e.calls++ }

func TestExportEndpoint(t *testing.T) {
	fx := newFixture(t)
	spy := &exportSpy{}
	h := newTestServer(WithExportObservers(spy)).Router()
	dest := filepath.Join(fx.root, "out")
	require.NoError(t, os.Mkdir(dest, 0o755))

	w := do(t, h, "/api/exports", gin.H{"export_folder": filepath.Join(fx.root, "nope"), "image_files": []gin.H{}})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "/api/exports", gin.H{
		"export_folder": dest,
		"image_files": []gin.H{{
			"filename":    "a.png",
			"model_paths": gin.H{"GT": filepath.Join(fx.gt, "a.png"), "my result": filepath.Join(fx.mine, "a.png")},
		}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.FileExists(t, filepath.Join(dest, "a_png", "my result_a.png"))
	require.Equal(t, 2, spy.calls)
}

func TestAnalysisEndpoint(t *testing.T) {
	h := newTestServer().Router()

	w := do(t, h, "/api/analysis", gin.H{
		"results": []gin.H{
			{"filename": "a.png", "iou_scores": gin.H{"my result": 0.9}, "accuracy_scores": gin.H{"my result": 0.95}, "paths": gin.H{}},
			{"filename": "b.png", "iou_scores": gin.H{"my result": 0.1}, "accuracy_scores": gin.H{"my result": 0.5}, "paths": gin.H{}},
		},
		"sort_by": "avg_iou",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cases, 2)
	require.Equal(t, "a.png", resp.Cases[0].Filename)
	require.Equal(t, entity.CategoryWorst, resp.Cases[1].Category)

	w = do(t, h, "/api/analysis", gin.H{"sort_by": "bogus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressWebsocket(t *testing.T) {
	fx := newFixture(t)
	s := newTestServer()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws/progress", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	w := do(t, s.Router(), "/api/comparisons", gin.H{
		"gt_folder":    fx.gt,
		"my_folder":    fx.other,
		"common_files": []string{"a.png", "b.png"},
		"progress":     true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got []Envelope
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for len(got) < 3 {
		var env Envelope
		require.NoError(t, conn.ReadJSON(&env))
		got = append(got, env)
	}
	require.Equal(t, entity.ProgressEventName, got[0].Event)
	require.Equal(t, "a.png", got[0].Payload.CurrentFile)
	require.Equal(t, got[0].RunID, got[2].RunID)
	require.True(t, got[2].Payload.Done())
}
