package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientFolders = errors.New("at least 3 folders are required")
	ErrDecode              = errors.New("decode image")
	ErrDimensionMismatch   = errors.New("image dimensions mismatch")
	ErrDestinationNotFound = errors.New("export destination does not exist")
	ErrExportFailed        = errors.New("export failed")
)

// FolderNotFoundError сообщает, какая по роли папка не найдена
type FolderNotFoundError struct {
	Role string
	Path string
}

func (e *FolderNotFoundError) Error() string {
	return fmt.Sprintf("'%s' folder does not exist: %s", e.Role, e.Path)
}

func (e *FolderNotFoundError) Unwrap() error { return ErrNotFound }

// DecodeError ошибка декодирования одной из сторон сравнения
type DecodeError struct {
	Side string // "first" или "second"
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot open %s image %s: %v", e.Side, e.Path, e.Err)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

// DimensionMismatchError размеры сравниваемых масок различаются
type DimensionMismatchError struct {
	PathA string
	SizeA Size
	PathB string
	SizeB Size
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("image size %s vs %s mismatch: %s vs %s", e.SizeA, e.SizeB, e.PathA, e.PathB)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }
