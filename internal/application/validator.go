package app

import (
	"errors"
	"fmt"
	"log/slog"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// FolderValidator ищет общие файлы в наборе папок
type FolderValidator struct {
	scanner port.FolderScanner
	logger  *slog.Logger
}

// NewFolderValidator создаёт валидатор поверх сканера
func NewFolderValidator(scanner port.FolderScanner, logger *slog.Logger) *FolderValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderValidator{scanner: scanner, logger: logger}
}

// ScanFolder возвращает список изображений одной папки
func (v *FolderValidator) ScanFolder(path string) ([]string, error) {
	return v.scanner.Scan(path)
}

// IsFile проверяет, что путь указывает на обычный файл
func (v *FolderValidator) IsFile(path string) bool {
	return v.scanner.IsFile(path)
}

// Validate сканирует папки и строит отчёт об общих и недостающих файлах.
// Первая папка задаёт порядок общего списка.
func (v *FolderValidator) Validate(folders []string) (*entity.ValidationReport, error) {
	if len(folders) < entity.MinFolders {
		return nil, fmt.Errorf("%w: got %d", entity.ErrInsufficientFolders, len(folders))
	}

	scanned := make([]entity.ImageFolder, 0, len(folders))
	for i, path := range folders {
		files, err := v.scanner.Scan(path)
		if err != nil {
			role := entity.RoleAt(i)
			if errors.Is(err, entity.ErrNotFound) {
				return nil, &entity.FolderNotFoundError{Role: string(role), Path: path}
			}
			return nil, fmt.Errorf("scan %s folder %s: %w", role, path, err)
		}
		scanned = append(scanned, entity.ImageFolder{Path: path, Role: entity.RoleAt(i), Files: files})
	}

	common := intersect(scanned)

	missing := entity.NewLabeledMap[[]string]()
	for _, folder := range scanned {
		have := toSet(folder.Files)
		var lacks []string
		for _, name := range common {
			if _, ok := have[name]; !ok {
				lacks = append(lacks, name)
			}
		}
		if len(lacks) > 0 {
			missing.Set(folder.DisplayName(), lacks)
		}
	}

	report := entity.NewValidationReport(common, missing)
	v.logger.Info("folders validated",
		"folders", len(folders),
		"common", len(report.CommonFiles),
		"valid", report.IsValid)
	return report, nil
}

func intersect(folders []entity.ImageFolder) []string {
	common := append([]string(nil), folders[0].Files...)
	for _, folder := range folders[1:] {
		have := toSet(folder.Files)
		kept := common[:0]
		for _, name := range common {
			if _, ok := have[name]; ok {
				kept = append(kept, name)
			}
		}
		common = kept
	}
	return common
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
