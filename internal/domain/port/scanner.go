package port

// FolderScanner интерфейс сканера папок с изображениями
type FolderScanner interface {
	// Scan возвращает отсортированные имена подходящих файлов папки
	Scan(folderPath string) ([]string, error)

	// IsFile проверяет, что путь указывает на обычный файл
	IsFile(path string) bool
}
