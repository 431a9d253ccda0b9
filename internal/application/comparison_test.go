package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/infrastructure/progress"
)

type batchFixture struct {
	req   BatchRequest
	files []string
}

// newBatchFixture три файла, эталон, основной результат и два источника
func newBatchFixture(t *testing.T) batchFixture {
	t.Helper()
	root := t.TempDir()
	files := []string{"a.png", "b.png", "c.png"}

	orig := mkdir(t, root, "orig")
	gt := mkdir(t, root, "gt")
	mine := mkdir(t, root, "mine")
	unet := mkdir(t, root, "unet")
	empty := mkdir(t, root, "empty")
	for _, f := range files {
		writeMask(t, orig, f, 4, 4, nil)
		writeMask(t, gt, f, 4, 4, square)
		writeMask(t, mine, f, 4, 4, square)
		writeMask(t, unet, f, 4, 4, func(x, y int) bool { return !square(x, y) })
		writeMask(t, empty, f, 4, 4, nil)
	}

	return batchFixture{
		req: BatchRequest{
			OriginalFolder:    orig,
			GroundTruthFolder: gt,
			ResultFolder:      mine,
			Sources: []entity.ComparisonSource{
				{Name: "unet", Path: unet},
				{Name: "empty", Path: empty},
			},
			Files: files,
		},
		files: files,
	}
}

func newComparison(opts ComparisonOptions) *ComparisonService {
	return NewComparisonService(newCalculator(), opts, nil)
}

func TestCompare_ScoresAndOrdering(t *testing.T) {
	fx := newBatchFixture(t)

	results, err := newComparison(ComparisonOptions{}).Compare(context.Background(), fx.req, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		require.Equal(t, fx.files[i], r.Filename)
		require.Equal(t, []string{entity.LabelPrimary, "unet", "empty"}, r.IOUScores.Labels())
		require.Equal(t, []string{entity.LabelOriginal, entity.LabelGroundTruth, entity.LabelPrimary, "unet", "empty"}, r.Paths.Labels())

		mine, _ := r.IOUScores.Get(entity.LabelPrimary)
		require.Equal(t, 1.0, mine)
		unet, _ := r.IOUScores.Get("unet")
		require.Equal(t, 0.0, unet)
		empty, _ := r.IOUScores.Get("empty")
		require.Equal(t, 0.0, empty)
		emptyAcc, _ := r.AccuracyScores.Get("empty")
		require.Equal(t, 0.75, emptyAcc)
		require.Empty(t, r.Failures)
		require.True(t, r.Scored("unet", entity.MetricIOU))
	}
}

func TestCompare_ProgressEvents(t *testing.T) {
	fx := newBatchFixture(t)
	rec := &progress.Recorder{}

	_, err := newComparison(ComparisonOptions{}).Compare(context.Background(), fx.req, rec)
	require.NoError(t, err)
	require.Len(t, rec.Events, 4)

	for i := 1; i < len(rec.Events); i++ {
		require.GreaterOrEqual(t, rec.Events[i].Current, rec.Events[i-1].Current)
	}
	require.Equal(t, entity.ProgressEvent{Current: 0, Total: 3, Percentage: 0, CurrentFile: "a.png"}, rec.Events[0])
	require.InDelta(t, 100.0/3.0, rec.Events[1].Percentage, 1e-9)

	last := rec.Events[3]
	require.Equal(t, 3, last.Current)
	require.Equal(t, 3, last.Total)
	require.Equal(t, 100.0, last.Percentage)
	require.Equal(t, entity.ProgressCompleteLabel, last.CurrentFile)
	require.True(t, last.Done())
}

func TestCompare_PairFailureScoresZero(t *testing.T) {
	fx := newBatchFixture(t)
	fx.req.Sources = append(fx.req.Sources, entity.ComparisonSource{Name: "ghost", Path: t.TempDir()})
	rec := &progress.Recorder{}

	results, err := newComparison(ComparisonOptions{}).Compare(context.Background(), fx.req, rec)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Len(t, rec.Events, 4)

	for _, r := range results {
		iou, ok := r.IOUScores.Get("ghost")
		require.True(t, ok)
		require.Equal(t, 0.0, iou)
		acc, ok := r.AccuracyScores.Get("ghost")
		require.True(t, ok)
		require.Equal(t, 0.0, acc)

		require.Len(t, r.Failures, 2)
		require.False(t, r.Scored("ghost", entity.MetricIOU))
		require.False(t, r.Scored("ghost", entity.MetricAccuracy))
		require.True(t, r.Scored("unet", entity.MetricIOU))
	}
}

func TestCompare_StrictOmitsFailedScores(t *testing.T) {
	fx := newBatchFixture(t)
	fx.req.Sources = []entity.ComparisonSource{{Name: "ghost", Path: t.TempDir()}}

	results, err := newComparison(ComparisonOptions{Strict: true}).Compare(context.Background(), fx.req, nil)
	require.NoError(t, err)
	for _, r := range results {
		_, ok := r.IOUScores.Get("ghost")
		require.False(t, ok)
		require.Len(t, r.Failures, 2)
		require.Contains(t, r.Sources(), "ghost")
	}
}

type failingSink struct{ calls int }

func (s *failingSink) Notify(entity.ProgressEvent) error {
	s.calls++
	return errors.New("window closed")
}

func TestCompare_FailingSinkDoesNotAbort(t *testing.T) {
	fx := newBatchFixture(t)
	sink := &failingSink{}

	results, err := newComparison(ComparisonOptions{}).Compare(context.Background(), fx.req, sink)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, 4, sink.calls)
}

func TestCompare_CancelledReturnsPartial(t *testing.T) {
	fx := newBatchFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	svc := newComparison(ComparisonOptions{})

	sink := progress.Func(func(e entity.ProgressEvent) {
		if e.Current == 1 {
			cancel()
		}
	})
	results, err := svc.Compare(ctx, fx.req, sink)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	require.Equal(t, "b.png", results[1].Filename)
}

func TestCompare_EmptyFileList(t *testing.T) {
	fx := newBatchFixture(t)
	fx.req.Files = nil
	rec := &progress.Recorder{}

	results, err := newComparison(ComparisonOptions{}).Compare(context.Background(), fx.req, rec)
	require.NoError(t, err)
	require.Empty(t, results)
	require.Equal(t, []entity.ProgressEvent{entity.CompletedProgressEvent(0)}, rec.Events)
}
