package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// ExportService раскладывает выбранные изображения по подпапкам
type ExportService struct {
	store  port.ExportStore
	logger *slog.Logger
}

// NewExportService создаёт сервис экспорта
func NewExportService(store port.ExportStore, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{store: store, logger: logger}
}

// ExportSelected копирует каждую версию выбранных файлов в destination/<имя_файла>/.
// Выборка считается успешной, как только создана её подпапка.
// Если ни одна выборка не удалась, вместе с итогом возвращается ErrExportFailed.
func (s *ExportService) ExportSelected(destination string, selections []entity.ExportSelection) (*entity.ExportOutcome, error) {
	if !s.store.DirExists(destination) {
		return nil, fmt.Errorf("%w: %s", entity.ErrDestinationNotFound, destination)
	}

	outcome := &entity.ExportOutcome{
		Total:       len(selections),
		Failures:    []string{},
		Destination: destination,
	}

	for _, sel := range selections {
		dir := filepath.Join(destination, entity.ImageDirName(sel.Filename))
		if err := s.store.EnsureDir(dir); err != nil {
			outcome.Failures = append(outcome.Failures,
				fmt.Sprintf("failed to create folder %s: %v", sel.Filename, err))
			continue
		}

		sel.Paths.Each(func(label, src string) {
			if !s.store.Exists(src) {
				outcome.Failures = append(outcome.Failures,
					fmt.Sprintf("source file does not exist: %s", src))
				return
			}
			dst := filepath.Join(dir, entity.ExportFileName(label, sel.Filename))
			if err := s.store.Copy(src, dst); err != nil {
				outcome.Failures = append(outcome.Failures,
					fmt.Sprintf("failed to copy %s -> %s: %v", src, dst, err))
				return
			}
			outcome.Copied++
		})

		outcome.Exported++
	}

	s.logger.Info("export finished",
		"destination", destination,
		"exported", outcome.Exported,
		"total", outcome.Total,
		"copied", outcome.Copied,
		"failures", len(outcome.Failures))

	if len(outcome.Failures) > 0 && outcome.Exported == 0 {
		return outcome, fmt.Errorf("%w: %s", entity.ErrExportFailed, outcome.Message())
	}
	return outcome, nil
}
