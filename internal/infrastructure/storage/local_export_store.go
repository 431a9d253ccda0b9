package storage

import (
	"fmt"
	"io"
	"os"

	"mask-compare/internal/domain/port"
)

// LocalExportStore пишет экспорт в локальную файловую систему
type LocalExportStore struct{}

// NewLocalExportStore создаёт хранилище экспорта
func NewLocalExportStore() *LocalExportStore {
	return &LocalExportStore{}
}

// DirExists проверяет, что путь существует и является каталогом
func (s *LocalExportStore) DirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Exists проверяет существование пути
func (s *LocalExportStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir создаёт каталог со всеми родителями
func (s *LocalExportStore) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Copy копирует содержимое файла, перезаписывая dst
func (s *LocalExportStore) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy data: %w", err)
	}
	return out.Close()
}

// Проверка реализации интерфейса
var _ port.ExportStore = (*LocalExportStore)(nil)
