package watermark

import (
	"fmt"
	"image"
	"math"
)

const (
	alphaThreshold = 0.002
	maxAlpha       = 0.99
	logoValue      = 255.0
)

// Unblend reverses the watermark composite in place. For every pixel of the
// placement rectangle that lies inside the image and whose mask opacity is at
// least the noise floor, the RGB channels are solved for the value beneath a
// solid white overlay. Alpha channels and all other pixels are left as they
// are. It returns the number of pixels rewritten.
func Unblend(img *image.NRGBA, alphaMap *AlphaMap, cfg WatermarkConfig) (int, error) {
	if img == nil {
		return 0, fmt.Errorf("nil image provided")
	}
	if alphaMap == nil || alphaMap.Size() != cfg.LogoSize {
		have := 0
		if alphaMap != nil {
			have = alphaMap.Size()
		}
		return 0, fmt.Errorf("alpha map size mismatch: have %d, want %d", have, cfg.LogoSize)
	}

	bounds := img.Bounds()
	rect := cfg.Rect(bounds)
	changed := 0

	for row := 0; row < cfg.LogoSize; row++ {
		y := rect.Min.Y + row
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		for col := 0; col < cfg.LogoSize; col++ {
			x := rect.Min.X + col
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}

			alpha := alphaMap.At(row, col)
			if alpha < alphaThreshold {
				continue
			}

			offset := img.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				img.Pix[offset+c] = recoverChannel(img.Pix[offset+c], alpha)
			}
			changed++
		}
	}

	return changed, nil
}

// recoverChannel solves observed = a*255 + (1-a)*original for original.
// Opacity is capped at maxAlpha so the divisor never falls below 0.01.
func recoverChannel(observed uint8, alpha float64) uint8 {
	return invertComposite(float64(observed), alpha)
}

func invertComposite(observed, alpha float64) uint8 {
	alpha = math.Min(alpha, maxAlpha)
	original := math.RoundToEven((observed - alpha*logoValue) / (1.0 - alpha))
	return uint8(math.Max(0, math.Min(255, original)))
}
