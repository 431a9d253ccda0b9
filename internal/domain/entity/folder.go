package entity

import (
	"fmt"
	"path/filepath"
)

// FolderRole логическая роль папки в наборе
type FolderRole string

const (
	RoleSourceImages  FolderRole = "source images"
	RoleGroundTruth   FolderRole = "ground truth"
	RolePrimaryResult FolderRole = "primary result"
)

// Метки путей и оценок в ComparisonResult
const (
	LabelOriginal    = "original"
	LabelGroundTruth = "GT"
	LabelPrimary     = "my result"
)

// MinFolders минимальное количество папок для валидации
const MinFolders = 3

// RoleAt возвращает роль папки по её позиции в списке
func RoleAt(index int) FolderRole {
	switch index {
	case 0:
		return RoleSourceImages
	case 1:
		return RoleGroundTruth
	case 2:
		return RolePrimaryResult
	default:
		return FolderRole(fmt.Sprintf("comparison %d", index-2))
	}
}

// ImageFolder папка с изображениями, отсканированная по запросу
type ImageFolder struct {
	Path  string     // путь в формате хост-системы
	Role  FolderRole // логическая роль
	Files []string   // отсортированные имена подходящих файлов
}

// DisplayName имя папки для отчётов (последний элемент пути)
func (f ImageFolder) DisplayName() string {
	name := filepath.Base(filepath.Clean(f.Path))
	if name == "." || name == string(filepath.Separator) {
		return "unknown"
	}
	return name
}

// ComparisonSource именованный набор результатов для сравнения с эталоном
type ComparisonSource struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}
