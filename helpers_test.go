package watermark

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fillNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readImage(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := Decode(f)
	require.NoError(t, err)
	return img
}

// writeUniformMask writes <root>/assets/mask_<size>.png filled with grey v.
func writeUniformMask(t *testing.T, root string, size int, v uint8) string {
	t.Helper()
	path := DirLocator(root).MaskPath(size)
	writePNG(t, path, fillNRGBA(size, size, color.NRGBA{R: v, G: v, B: v, A: 255}))
	return path
}

func uniformAlphaMap(size int, v uint8) *AlphaMap {
	return AlphaMapFromImage(fillNRGBA(size, size, color.NRGBA{R: v, G: v, B: v, A: 255}), size)
}

func blendChannel(original uint8, alpha float64) uint8 {
	observed := alpha*logoValue + (1.0-alpha)*float64(original)
	if observed > 255 {
		observed = 255
	}
	return uint8(observed + 0.5)
}
