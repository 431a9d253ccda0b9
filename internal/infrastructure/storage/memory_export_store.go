package storage

import (
	"errors"
	"path"
	"strings"
	"sync"

	"mask-compare/internal/domain/port"
)

// MemoryExportStore in-memory хранилище экспорта для тестов и пробных запусков
type MemoryExportStore struct {
	mu       sync.RWMutex
	dirs     map[string]bool
	files    map[string][]byte
	failCopy map[string]error
}

// NewMemoryExportStore создаёт хранилище с заданными каталогами
func NewMemoryExportStore(dirs ...string) *MemoryExportStore {
	s := &MemoryExportStore{
		dirs:     make(map[string]bool),
		files:    make(map[string][]byte),
		failCopy: make(map[string]error),
	}
	for _, d := range dirs {
		s.dirs[clean(d)] = true
	}
	return s
}

// PutFile добавляет файл-источник
func (s *MemoryExportStore) PutFile(p string, data []byte) {
	s.mu.Lock()
	s.files[clean(p)] = data
	s.mu.Unlock()
}

// FailCopy заставляет копирование из src завершаться ошибкой
func (s *MemoryExportStore) FailCopy(src string, err error) {
	s.mu.Lock()
	s.failCopy[clean(src)] = err
	s.mu.Unlock()
}

// File возвращает содержимое файла
func (s *MemoryExportStore) File(p string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[clean(p)]
	return data, ok
}

// DirExists проверяет наличие каталога
func (s *MemoryExportStore) DirExists(p string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirs[clean(p)]
}

// Exists проверяет наличие файла или каталога
func (s *MemoryExportStore) Exists(p string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p = clean(p)
	_, isFile := s.files[p]
	return isFile || s.dirs[p]
}

// EnsureDir создаёт каталог и его родителей
func (s *MemoryExportStore) EnsureDir(p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p = clean(p)
	if _, isFile := s.files[p]; isFile {
		return errors.New("path exists and is a file")
	}
	for d := p; d != "/" && d != "."; d = path.Dir(d) {
		s.dirs[d] = true
	}
	return nil
}

// Copy копирует файл внутри хранилища
func (s *MemoryExportStore) Copy(src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, dst = clean(src), clean(dst)
	if err, ok := s.failCopy[src]; ok {
		return err
	}
	data, ok := s.files[src]
	if !ok {
		return errors.New("source file not found")
	}
	if !s.dirs[path.Dir(dst)] {
		return errors.New("destination directory not found")
	}
	s.files[dst] = append([]byte(nil), data...)
	return nil
}

func clean(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// Проверка реализации интерфейса
var _ port.ExportStore = (*MemoryExportStore)(nil)
