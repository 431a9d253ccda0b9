package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	app "mask-compare/internal/application"
	"mask-compare/internal/container"
	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
	"mask-compare/internal/infrastructure/progress"
)

// RunSinkFactory выдаёт получателя прогресса для запуска и функцию его освобождения
type RunSinkFactory func(runID string) (port.ProgressSink, func())

// ExportObserver получает итоги экспорта
type ExportObserver interface {
	ExportFinished(outcome *entity.ExportOutcome, err error)
}

// Server HTTP-интерфейс движка сравнения
type Server struct {
	app       *container.Container
	hub       *ProgressHub
	sinks     []RunSinkFactory
	observers []ExportObserver
	logger    *slog.Logger
}

// Option настраивает сервер
type Option func(*Server)

// WithRunSinks добавляет получателей прогресса помимо websocket-хаба
func WithRunSinks(f ...RunSinkFactory) Option {
	return func(s *Server) { s.sinks = append(s.sinks, f...) }
}

// WithExportObservers добавляет наблюдателей экспорта
func WithExportObservers(o ...ExportObserver) Option {
	return func(s *Server) { s.observers = append(s.observers, o...) }
}

// NewServer создаёт сервер
func NewServer(c *container.Container, hub *ProgressHub, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{app: c, hub: hub, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router собирает маршруты
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/folders/scan", s.handleScan)
	api.POST("/files/probe", s.handleProbe)
	api.POST("/folders/validate", s.handleValidate)
	api.POST("/comparisons", s.handleCompare)
	api.POST("/exports", s.handleExport)
	api.POST("/analysis", s.handleAnalysis)

	r.GET("/ws/progress", s.hub.Serve)
	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}

func (s *Server) handleScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	files, err := s.app.Validator.ScanFolder(req.Path)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, scanResponse{Files: files})
}

func (s *Server) handleProbe(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, probeResponse{IsFile: s.app.Validator.IsFile(req.Path)})
}

func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	report, err := s.app.Validator.Validate(req.Folders)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	runID := uuid.New().String()
	sink, release := s.runSink(runID, req.Progress)
	defer release()

	s.logger.Info("comparison started", "run", runID, "files", len(req.CommonFiles), "sources", len(req.ComparisonFolders))
	results, err := s.app.Comparison.Compare(c.Request.Context(), app.BatchRequest{
		OriginalFolder:    req.OriginalFolder,
		GroundTruthFolder: req.GroundTruthFolder,
		ResultFolder:      req.ResultFolder,
		Sources:           req.ComparisonFolders,
		Files:             req.CommonFiles,
	}, sink)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("X-Run-ID", runID)
	c.JSON(http.StatusOK, compareResponse{RunID: runID, Results: results})
}

func (s *Server) handleExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	outcome, err := s.app.Export.ExportSelected(req.ExportFolder, req.ImageFiles)
	for _, o := range s.observers {
		o.ExportFinished(outcome, err)
	}
	if err != nil {
		if outcome != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   err.Error(),
				"outcome": outcome,
			})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, exportResponse{ExportOutcome: outcome, Message: outcome.Message()})
}

func (s *Server) handleAnalysis(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	key, err := app.ParseSortKey(req.SortBy)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	desc := true
	if req.Desc != nil {
		desc = *req.Desc
	}

	cases := app.FilterCases(app.Analyze(req.Results), req.Category)
	app.SortCases(cases, key, desc)
	c.JSON(http.StatusOK, analysisResponse{Cases: cases})
}

// runSink собирает получателей прогресса для запуска
func (s *Server) runSink(runID string, withHub bool) (port.ProgressSink, func()) {
	var fan progress.Fanout
	var releases []func()
	if withHub {
		fan = append(fan, s.hub.RunSink(runID))
	}
	for _, factory := range s.sinks {
		sink, release := factory(runID)
		fan = append(fan, sink)
		if release != nil {
			releases = append(releases, release)
		}
	}

	release := func() {
		for _, r := range releases {
			r()
		}
	}
	if len(fan) == 0 {
		return nil, release
	}
	return fan, release
}

func (s *Server) fail(c *gin.Context, err error) {
	var nf *entity.FolderNotFoundError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "role": nf.Role, "path": nf.Path})
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrDestinationNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, entity.ErrInsufficientFolders):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrExportFailed):
		respondError(c, http.StatusUnprocessableEntity, err)
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "err", err)
		respondError(c, http.StatusInternalServerError, err)
	}
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
