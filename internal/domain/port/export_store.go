package port

// ExportStore интерфейс хранилища, в которое выгружаются изображения
type ExportStore interface {
	// DirExists проверяет существование каталога
	DirExists(path string) bool

	// Exists проверяет существование пути
	Exists(path string) bool

	// EnsureDir создаёт каталог рекурсивно, если его нет
	EnsureDir(path string) error

	// Copy копирует файл src в dst
	Copy(src, dst string) error
}
