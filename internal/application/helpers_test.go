package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeMask пишет PNG в оттенках серого: 255 там, где fg истинно, иначе 0
func writeMask(t *testing.T, dir, name string, w, h int, fg func(x, y int) bool) string {
	t.Helper()
	return writeGray(t, dir, name, w, h, func(x, y int) uint8 {
		if fg != nil && fg(x, y) {
			return 255
		}
		return 0
	})
}

func writeGray(t *testing.T, dir, name string, w, h int, value func(x, y int) uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: value(x, y)})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func mkdir(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func square(x, y int) bool { return x < 2 && y < 2 }
