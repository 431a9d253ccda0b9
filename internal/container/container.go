package container

import (
	"log/slog"

	app "mask-compare/internal/application"
	"mask-compare/internal/domain/port"
)

type Container struct {
	Validator  *app.FolderValidator
	Metrics    *app.MetricsCalculator
	Comparison *app.ComparisonService
	Export     *app.ExportService
}

func New(scanner port.FolderScanner, loader port.MaskLoader, store port.ExportStore, opts app.ComparisonOptions, logger *slog.Logger) *Container {
	metrics := app.NewMetricsCalculator(loader)

	return &Container{
		Validator:  app.NewFolderValidator(scanner, logger),
		Metrics:    metrics,
		Comparison: app.NewComparisonService(metrics, opts, logger),
		Export:     app.NewExportService(store, logger),
	}
}
