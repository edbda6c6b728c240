package watermark

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// Progress line prefixes emitted by the processor.
const (
	ErrorPrefix     = "❌ Error: "
	dimensionPrefix = "⚡ Processing... "
	SavedPNGPrefix  = "💾 Saved PNG: "
	SavedJPGPrefix  = "💾 Saved JPG: "
)

// LogSink receives human-readable progress lines. It must not block.
type LogSink func(message string)

func (s LogSink) emit(message string) {
	if s != nil {
		s(message)
	}
}

// IsErrorLine reports whether message is an error-class progress line.
func IsErrorLine(message string) bool {
	return strings.HasPrefix(message, ErrorPrefix)
}

// MaskLocator resolves the mask asset path for a logo size.
type MaskLocator interface {
	MaskPath(logoSize int) string
}

// DirLocator finds masks at <root>/assets/mask_<size>.png.
type DirLocator string

// MaskPath implements MaskLocator.
func (d DirLocator) MaskPath(logoSize int) string {
	return filepath.Join(string(d), "assets", fmt.Sprintf("mask_%d.png", logoSize))
}

// Processor runs the decode, unblend and dual-save pipeline for one file at a
// time. It holds no per-file state; the optional cache only stores read-only
// alpha maps.
type Processor struct {
	masks MaskLocator
	cache *MaskCache
}

// Option configures a Processor.
type Option func(*Processor)

// WithMaskCache shares alpha maps across calls through cache.
func WithMaskCache(cache *MaskCache) Option {
	return func(p *Processor) { p.cache = cache }
}

// NewProcessor constructs a Processor that loads masks through masks.
func NewProcessor(masks MaskLocator, opts ...Option) *Processor {
	p := &Processor{masks: masks}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result describes a completed run.
type Result struct {
	Width, Height int
	Config        WatermarkConfig
	Position      image.Rectangle
	Changed       int
	PNGPath       string
	JPGPath       string
}

// ProcessImage removes the watermark from sourcePath and writes
// destinationBase+".png" and destinationBase+".jpg". Failures are reported
// as a single error line on sink and a false return; a missing source returns
// false without logging.
func (p *Processor) ProcessImage(sourcePath, destinationBase string, sink LogSink) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			sink.emit(fmt.Sprintf("%s%v", ErrorPrefix, r))
			ok = false
		}
	}()

	_, err := p.Process(sourcePath, destinationBase, sink)
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrSourceNotFound) {
		sink.emit(ErrorPrefix + err.Error())
	}
	return false
}

// Process is ProcessImage with the cause of a failure returned instead of
// logged.
func (p *Processor) Process(sourcePath, destinationBase string, sink LogSink) (Result, error) {
	if !isRegularFile(sourcePath) {
		return Result{}, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	img, _, err := DecodeFile(sourcePath)
	if err != nil {
		return Result{}, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return Result{}, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	cfg := ConfigFor(width, height)
	sink.emit(fmt.Sprintf("%s(%dx%d)", dimensionPrefix, width, height))

	alphaMap, err := p.alphaMap(cfg.LogoSize)
	if err != nil {
		return Result{}, err
	}

	changed, err := Unblend(img, alphaMap, cfg)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Width:    width,
		Height:   height,
		Config:   cfg,
		Position: cfg.Rect(bounds),
		Changed:  changed,
	}

	res.PNGPath, res.JPGPath, err = SaveDual(img, destinationBase, sink)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (p *Processor) alphaMap(size int) (*AlphaMap, error) {
	if p.masks == nil {
		return nil, fmt.Errorf("no mask locator configured")
	}

	path := p.masks.MaskPath(size)
	if p.cache != nil {
		return p.cache.Load(path, size)
	}
	return LoadAlphaMap(path, size)
}

// ProcessImage runs a one-off Processor that loads masks from
// <resourceRoot>/assets.
func ProcessImage(resourceRoot, sourcePath, destinationBase string, sink LogSink) bool {
	return NewProcessor(DirLocator(resourceRoot)).ProcessImage(sourcePath, destinationBase, sink)
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
