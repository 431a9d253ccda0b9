package app

import (
	"context"
	"log/slog"
	"path/filepath"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// BatchRequest входные данные пакетного сравнения
type BatchRequest struct {
	OriginalFolder    string // необязательно, только для отображения
	GroundTruthFolder string
	ResultFolder      string
	Sources           []entity.ComparisonSource
	Files             []string
}

// ComparisonOptions настройки сравнения
type ComparisonOptions struct {
	// Strict не записывает 0.0 для неудавшихся пар, оставляя только запись в Failures
	Strict bool
}

// ComparisonService пакетно сравнивает результаты с эталоном
type ComparisonService struct {
	metrics *MetricsCalculator
	opts    ComparisonOptions
	logger  *slog.Logger
}

// NewComparisonService создаёт сервис сравнения
func NewComparisonService(metrics *MetricsCalculator, opts ComparisonOptions, logger *slog.Logger) *ComparisonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComparisonService{metrics: metrics, opts: opts, logger: logger}
}

// Compare последовательно обходит общие файлы и считает метрики каждого источника.
// Ошибка одной пары не прерывает пакет. При отмене контекста возвращается
// уже собранная часть результатов вместе с ошибкой контекста.
func (s *ComparisonService) Compare(ctx context.Context, req BatchRequest, sink port.ProgressSink) ([]*entity.ComparisonResult, error) {
	total := len(req.Files)
	results := make([]*entity.ComparisonResult, 0, total)

	for i, filename := range req.Files {
		if err := ctx.Err(); err != nil {
			s.logger.Info("comparison cancelled", "processed", i, "total", total)
			return results, err
		}

		s.notify(sink, entity.NewProgressEvent(i, total, filename))
		results = append(results, s.compareFile(req, filename))
	}

	s.notify(sink, entity.CompletedProgressEvent(total))
	return results, nil
}

func (s *ComparisonService) compareFile(req BatchRequest, filename string) *entity.ComparisonResult {
	res := entity.NewComparisonResult(filename)

	gtPath := filepath.Join(req.GroundTruthFolder, filename)
	myPath := filepath.Join(req.ResultFolder, filename)

	if req.OriginalFolder != "" {
		res.Paths.Set(entity.LabelOriginal, filepath.Join(req.OriginalFolder, filename))
	}
	res.Paths.Set(entity.LabelGroundTruth, gtPath)
	res.Paths.Set(entity.LabelPrimary, myPath)

	s.score(res, entity.LabelPrimary, gtPath, myPath)

	for _, src := range req.Sources {
		path := filepath.Join(src.Path, filename)
		res.Paths.Set(src.Name, path)
		s.score(res, src.Name, gtPath, path)
	}

	return res
}

func (s *ComparisonService) score(res *entity.ComparisonResult, label, gtPath, path string) {
	iou, err := s.metrics.IOU(gtPath, path)
	s.record(res, res.IOUScores, label, entity.MetricIOU, iou, err)

	acc, err := s.metrics.Accuracy(gtPath, path)
	s.record(res, res.AccuracyScores, label, entity.MetricAccuracy, acc, err)
}

func (s *ComparisonService) record(res *entity.ComparisonResult, scores *entity.LabeledMap[float64], label string, metric entity.Metric, value float64, err error) {
	if err == nil {
		scores.Set(label, value)
		return
	}

	s.logger.Warn("metric computation failed",
		"file", res.Filename,
		"source", label,
		"metric", metric,
		"err", err)
	res.Failures = append(res.Failures, entity.MetricFailure{
		Source: label,
		Metric: metric,
		Reason: err.Error(),
	})
	if !s.opts.Strict {
		scores.Set(label, 0.0)
	}
}

func (s *ComparisonService) notify(sink port.ProgressSink, event entity.ProgressEvent) {
	if sink == nil {
		return
	}
	if err := sink.Notify(event); err != nil {
		s.logger.Warn("failed to send progress event",
			"event", entity.ProgressEventName,
			"current", event.Current,
			"total", event.Total,
			"err", err)
	}
}
