package watermark

import "image"

// WatermarkConfig describes the logo footprint and its distance from the
// bottom-right corner of the image.
type WatermarkConfig struct {
	LogoSize     int
	MarginRight  int
	MarginBottom int
}

// configTier is one row of the placement table. An image selects the first
// tier whose minimums it strictly exceeds on both axes.
type configTier struct {
	minWidth  int
	minHeight int
	config    WatermarkConfig
}

var configTiers = []configTier{
	{minWidth: 1024, minHeight: 1024, config: WatermarkConfig{LogoSize: 96, MarginRight: 64, MarginBottom: 64}},
	{minWidth: 0, minHeight: 0, config: WatermarkConfig{LogoSize: 48, MarginRight: 32, MarginBottom: 32}},
}

// ConfigFor selects the watermark parameters for an image of the given size:
// images larger than 1024 on both sides carry the 96x96 logo with 64px
// margins, everything else the 48x48 logo with 32px margins.
func ConfigFor(width, height int) WatermarkConfig {
	for _, tier := range configTiers {
		if width > tier.minWidth && height > tier.minHeight {
			return tier.config
		}
	}
	return configTiers[len(configTiers)-1].config
}

// Rect returns the placement rectangle inside bounds. The rectangle is not
// clipped; on small images it may extend past the top or left edge.
func (c WatermarkConfig) Rect(bounds image.Rectangle) image.Rectangle {
	x := bounds.Max.X - c.MarginRight - c.LogoSize
	y := bounds.Max.Y - c.MarginBottom - c.LogoSize
	return image.Rect(x, y, x+c.LogoSize, y+c.LogoSize)
}

// SupportedLogoSizes lists the logo sizes a mask asset must exist for.
func SupportedLogoSizes() []int {
	sizes := make([]int, 0, len(configTiers))
	for _, tier := range configTiers {
		sizes = append(sizes, tier.config.LogoSize)
	}
	return sizes
}
