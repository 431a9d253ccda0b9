package port

import "mask-compare/internal/domain/entity"

// MaskLoader интерфейс декодера масок
type MaskLoader interface {
	// Load декодирует изображение и переводит его в яркость
	Load(path string) (*entity.Mask, error)
}
