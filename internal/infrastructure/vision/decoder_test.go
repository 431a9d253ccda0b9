package vision

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestToMask_GraySubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 2, color.Gray{Y: 200})
	sub := img.SubImage(image.Rect(1, 1, 3, 3))

	mask := ToMask(sub)
	require.Equal(t, 2, mask.Width)
	require.Equal(t, 2, mask.Height)
	require.Equal(t, []uint8{0, 0, 0, 200}, mask.Luma)
}

func TestToMask_ColorLuma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})

	mask := ToMask(img)
	require.Equal(t, uint8(255), mask.Luma[0])
	require.True(t, mask.Foreground(1), "pure green is bright")
	require.False(t, mask.Foreground(2), "pure blue is dark")
}

func TestToMask_LumaTruncates(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{G: 180, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 181, B: 10, A: 255})

	mask := ToMask(img)
	// 7152*180/10000 = 128.736
	require.Equal(t, uint8(128), mask.Luma[0])
	require.False(t, mask.Foreground(0))
	// (21260+1294512+7220)/10000 = 132.299
	require.Equal(t, uint8(132), mask.Luma[1])
	require.True(t, mask.Foreground(1))
}

func TestToMask_IgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 10})

	require.Equal(t, uint8(255), ToMask(img).Luma[0])
}

func TestImageDecoder_Formats(t *testing.T) {
	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(1, 1, color.Gray{Y: 255})

	encoders := map[string]func(f *os.File) error{
		"m.png":  func(f *os.File) error { return png.Encode(f, img) },
		"m.bmp":  func(f *os.File) error { return bmp.Encode(f, img) },
		"m.tiff": func(f *os.File) error { return tiff.Encode(f, img, nil) },
	}
	for name, encode := range encoders {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, encode(f))
		require.NoError(t, f.Close())

		mask, err := NewImageDecoder().Load(path)
		require.NoError(t, err, name)
		require.Equal(t, 3, mask.Width, name)
		require.Equal(t, 2, mask.Height, name)
		require.True(t, mask.Foreground(4), name)
		require.False(t, mask.Foreground(0), name)
	}
}

func TestImageDecoder_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewImageDecoder().Load(filepath.Join(dir, "missing.png"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	_, err = NewImageDecoder().Load(bad)
	require.Error(t, err)
}

func TestImageDecoder_OnlyScannedFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.gif")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), 0o644))

	_, err := NewImageDecoder().Load(path)
	require.ErrorIs(t, err, image.ErrFormat)
}

func TestDefaultDecoder(t *testing.T) {
	require.NotNil(t, Default())
	if !Available() {
		require.IsType(t, &ImageDecoder{}, Default())
	}
}
