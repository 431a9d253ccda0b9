package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// ImageExtensions расширения файлов, которые считаются изображениями
var ImageExtensions = []string{"jpg", "jpeg", "png", "bmp", "tiff", "webp"}

// FolderScanner сканирует папки локальной файловой системы
type FolderScanner struct {
	extensions map[string]struct{}
	readDir    func(string) ([]os.DirEntry, error)
	logger     *slog.Logger
}

// NewFolderScanner создаёт сканер со стандартным набором расширений
func NewFolderScanner() *FolderScanner {
	exts := make(map[string]struct{}, len(ImageExtensions))
	for _, ext := range ImageExtensions {
		exts[ext] = struct{}{}
	}
	return &FolderScanner{extensions: exts, readDir: os.ReadDir, logger: slog.Default()}
}

// WithLogger задаёт логгер для предупреждений сканера
func (s *FolderScanner) WithLogger(logger *slog.Logger) *FolderScanner {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Scan возвращает отсортированный список изображений в папке.
// Каталоги, файлы без расширения и нечитаемые записи пропускаются.
// Существующая, но нечитаемая папка даёт пустой список.
func (s *FolderScanner) Scan(folderPath string) ([]string, error) {
	info, err := os.Stat(folderPath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("folder %s: %w", folderPath, entity.ErrNotFound)
	}

	entries, err := s.readDir(folderPath)
	if err != nil {
		s.logger.Warn("folder is not readable, treating as empty", "path", folderPath, "err", err)
		return []string{}, nil
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !s.qualifies(name) {
			continue
		}
		// Stat идёт по симлинкам: ссылка на файл подходит, на каталог нет
		fi, err := os.Stat(filepath.Join(folderPath, name))
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, name)
	}

	sort.Strings(files)
	return files, nil
}

// IsFile проверяет, что путь указывает на обычный файл
func (s *FolderScanner) IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// ScanFolder сканирует папку и возвращает её описание
func (s *FolderScanner) ScanFolder(folderPath string, role entity.FolderRole) (*entity.ImageFolder, error) {
	files, err := s.Scan(folderPath)
	if err != nil {
		return nil, err
	}
	return &entity.ImageFolder{Path: folderPath, Role: role, Files: files}, nil
}

func (s *FolderScanner) qualifies(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	_, ok := s.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// Проверка реализации интерфейса
var _ port.FolderScanner = (*FolderScanner)(nil)
