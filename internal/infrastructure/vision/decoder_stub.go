//go:build !gocv
// +build !gocv

package vision

import "mask-compare/internal/domain/port"

// Available сообщает, собран ли бинарник с OpenCV
func Available() bool { return false }

// Default возвращает предпочтительный декодер сборки
func Default() port.MaskLoader { return NewImageDecoder() }
