package watermark

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAlphaMapUsesBrightestChannel(t *testing.T) {
	mask := fillNRGBA(48, 48, color.NRGBA{A: 255})
	mask.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	mask.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 51, B: 20, A: 255})
	mask.SetNRGBA(0, 1, color.NRGBA{R: 0, G: 0, B: 102, A: 255})
	mask.SetNRGBA(47, 47, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "mask_48.png")
	writePNG(t, path, mask)

	m, err := LoadAlphaMap(path, 48)
	require.NoError(t, err)
	require.Equal(t, 48, m.Size())
	require.Len(t, m.Values(), 48*48)

	assert.InDelta(t, 1.0, m.At(0, 0), 1e-9)
	assert.InDelta(t, 0.2, m.At(0, 1), 1e-9)
	assert.InDelta(t, 0.4, m.At(1, 0), 1e-9)
	assert.InDelta(t, 1.0, m.At(47, 47), 1e-9)
	assert.Zero(t, m.At(10, 10))

	// Row-major: index 1 is row 0, column 1.
	assert.InDelta(t, 0.2, m.Values()[1], 1e-9)
	assert.InDelta(t, 0.4, m.Values()[48], 1e-9)
}

func TestLoadAlphaMapIgnoresMaskTransparency(t *testing.T) {
	mask := fillNRGBA(48, 48, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	path := filepath.Join(t.TempDir(), "mask_48.png")
	writePNG(t, path, mask)

	m, err := LoadAlphaMap(path, 48)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.At(5, 5), 1e-9)
}

func TestLoadAlphaMapResizesToLogoSize(t *testing.T) {
	// Left half black, right half mid grey.
	mask := fillNRGBA(24, 24, color.NRGBA{A: 255})
	for y := 0; y < 24; y++ {
		for x := 12; x < 24; x++ {
			mask.SetNRGBA(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "mask.png")
	writePNG(t, path, mask)

	m, err := LoadAlphaMap(path, 48)
	require.NoError(t, err)
	require.Equal(t, 48, m.Size())
	require.Len(t, m.Values(), 48*48)

	assert.Zero(t, m.At(20, 0))
	assert.Zero(t, m.At(20, 20))
	assert.InDelta(t, 128.0/255.0, m.At(20, 30), 0.005)
	assert.InDelta(t, 128.0/255.0, m.At(20, 47), 0.005)
}

func TestLoadAlphaMapMissingAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "mask_96.png")

	_, err := LoadAlphaMap(path, 96)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAsset))

	var missing *MissingAssetError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, path, missing.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadAlphaMapDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask_48.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := LoadAlphaMap(path, 48)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, path, decodeErr.Path)
}

func TestLoadAlphaMapRejectsInvalidSize(t *testing.T) {
	_, err := LoadAlphaMap("unused.png", 0)
	require.Error(t, err)
}

func TestAlphaMapFromImageHonoursBoundsOffset(t *testing.T) {
	src := fillNRGBA(64, 64, color.NRGBA{A: 255})
	src.SetNRGBA(16, 16, color.NRGBA{R: 255, A: 255})
	sub := src.SubImage(image.Rect(16, 16, 64, 64))

	m := AlphaMapFromImage(sub, 48)
	assert.InDelta(t, 1.0, m.At(0, 0), 1e-9)
	assert.Zero(t, m.At(0, 1))
}

func TestMaskCache(t *testing.T) {
	root := t.TempDir()
	path := writeUniformMask(t, root, 48, 51)
	cache := NewMaskCache()

	first, err := cache.Load(path, 48)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	second, err := cache.Load(path, 48)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	missing := DirLocator(root).MaskPath(96)
	_, err = cache.Load(missing, 96)
	require.ErrorIs(t, err, ErrMissingAsset)
	assert.Equal(t, 1, cache.Len())

	writeUniformMask(t, root, 96, 51)
	_, err = cache.Load(missing, 96)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}
