package port

import "mask-compare/internal/domain/entity"

// ProgressSink получатель событий прогресса.
// Notify не должен блокировать пакетный цикл; ошибка доставки только логируется.
type ProgressSink interface {
	Notify(event entity.ProgressEvent) error
}
