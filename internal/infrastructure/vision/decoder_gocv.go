//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// GoCVDecoder декодирует изображения через OpenCV сразу в оттенки серого.
// OpenCV считает яркость по коэффициентам BT.601.
type GoCVDecoder struct{}

// NewGoCVDecoder создаёт декодер на OpenCV
func NewGoCVDecoder() *GoCVDecoder {
	return &GoCVDecoder{}
}

// Load читает файл в одноканальную матрицу.
func (d *GoCVDecoder) Load(path string) (*entity.Mask, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("failed to decode image")
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("unexpected mat type %v", mat.Type())
	}

	mask := entity.NewMask(mat.Cols(), mat.Rows())
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			mask.Luma[y*mat.Cols()+x] = mat.GetUCharAt(y, x)
		}
	}
	return mask, nil
}

// Available сообщает, собран ли бинарник с OpenCV
func Available() bool { return true }

// Default возвращает предпочтительный декодер сборки
func Default() port.MaskLoader { return NewGoCVDecoder() }

var _ port.MaskLoader = (*GoCVDecoder)(nil)
