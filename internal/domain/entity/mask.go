package entity

import "fmt"

// ForegroundThreshold середина диапазона 8-битного канала.
// Пиксель считается передним планом, если яркость строго больше порога.
const ForegroundThreshold uint8 = 128

// Size размеры изображения в пикселях
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Mask одноканальное изображение яркости (построчно, по байту на пиксель)
type Mask struct {
	Size
	Luma []uint8
}

// NewMask создаёт маску заданного размера, заполненную фоном
func NewMask(width, height int) *Mask {
	return &Mask{
		Size: Size{Width: width, Height: height},
		Luma: make([]uint8, width*height),
	}
}

// Foreground сообщает, относится ли пиксель i к переднему плану
func (m *Mask) Foreground(i int) bool {
	return m.Luma[i] > ForegroundThreshold
}

// PixelMaskPair пара масок одинакового размера для одного вычисления метрики
type PixelMaskPair struct {
	A *Mask
	B *Mask
}

// PairCounts счётчики совпадений по всем пикселям пары
type PairCounts struct {
	Intersection int // передний план в обеих масках
	Union        int // передний план хотя бы в одной
	Agree        int // классы совпадают
	Total        int
}

// Count обходит пиксели пары. Размеры должны быть проверены заранее.
func (p PixelMaskPair) Count() PairCounts {
	c := PairCounts{Total: len(p.A.Luma)}
	for i := range p.A.Luma {
		a := p.A.Foreground(i)
		b := p.B.Foreground(i)
		if a && b {
			c.Intersection++
		}
		if a || b {
			c.Union++
		}
		if a == b {
			c.Agree++
		}
	}
	return c
}

// IOU пересечение над объединением; две пустые маски дают 1.0
func (c PairCounts) IOU() float64 {
	if c.Union == 0 {
		return 1.0
	}
	return float64(c.Intersection) / float64(c.Union)
}

// Accuracy доля пикселей с совпадающим классом
func (c PairCounts) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Agree) / float64(c.Total)
}
