package vision

import (
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/jpeg" // JPEG
	_ "image/png"  // PNG

	_ "golang.org/x/image/bmp"  // BMP
	_ "golang.org/x/image/tiff" // TIFF
	_ "golang.org/x/image/webp" // WEBP

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// ImageDecoder декодирует изображения средствами image и x/image
type ImageDecoder struct{}

// NewImageDecoder создаёт декодер масок
func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{}
}

// Load открывает файл и переводит изображение в 8-битную яркость.
func (d *ImageDecoder) Load(path string) (*entity.Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ToMask(img), nil
}

// ToMask переводит изображение в маску яркости.
// Коэффициенты Rec. 709, альфа-канал не учитывается.
func ToMask(img image.Image) *entity.Mask {
	b := img.Bounds()
	mask := entity.NewMask(b.Dx(), b.Dy())

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
			copy(mask.Luma[y*b.Dx():], row)
		}
		return mask
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			mask.Luma[i] = luma(img.At(x, y))
			i++
		}
	}
	return mask
}

func luma(c color.Color) uint8 {
	switch v := c.(type) {
	case color.Gray:
		return v.Y
	case color.Gray16:
		return uint8(v.Y >> 8)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	// 8-битные каналы, дробная часть отбрасывается
	return uint8((2126*uint32(n.R) + 7152*uint32(n.G) + 722*uint32(n.B)) / 10000)
}

// Проверка реализации интерфейса
var _ port.MaskLoader = (*ImageDecoder)(nil)
