// Package batch feeds dropped or listed files through the watermark
// processor one at a time, the way the desktop drop zone did.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	watermark "github.com/gcslaoli/watermark-unblend"
)

// Progress lines written around each file.
const (
	IgnoredPrefix = "⚠️ Ignored non-image: "
	StartPrefix   = "⏳ Processing: "
	DonePrefix    = "✨ Done: "
)

// TimestampLayout is the suffix appended to generated output names.
const TimestampLayout = "20060102_150405"

var acceptedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Accepts reports whether path has a supported image extension.
func Accepts(path string) bool {
	return acceptedExts[strings.ToLower(filepath.Ext(path))]
}

// DestinationBase derives {dir}/{name}_{YYYYMMDD_HHMMSS} for src. An empty
// outDir places the outputs next to the source.
func DestinationBase(src, outDir string, now time.Time) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, name+"_"+now.Format(TimestampLayout))
}

// TrimOutputExt drops a .png, .jpg or .jpeg extension from a user supplied
// destination so both outputs share the base.
func TrimOutputExt(base string) string {
	switch strings.ToLower(filepath.Ext(base)) {
	case ".png", ".jpg", ".jpeg":
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

// Processor is the single-file pipeline the runner drives.
type Processor interface {
	ProcessImage(sourcePath, destinationBase string, sink watermark.LogSink) bool
}

// ProgressFunc is called after each accepted file completes.
type ProgressFunc func(completed, total, failed int)

// Config configures a Runner.
type Config struct {
	Processor Processor
	Sink      watermark.LogSink

	// OutDir overrides the output directory; empty means beside the source.
	OutDir string

	// Destination, when set, is used as the output base for a single input.
	Destination string

	OnProgress ProgressFunc

	// Now defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome for one accepted file.
type Result struct {
	Source  string
	Base    string
	OK      bool
	Elapsed time.Duration
}

// Summary totals a run.
type Summary struct {
	Results []Result
	Ignored []string
	Failed  int
}

// Runner processes files strictly in order.
type Runner struct {
	cfg Config
}

// New creates a Runner.
func New(cfg Config) *Runner {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Runner{cfg: cfg}
}

// Run processes paths sequentially. Directories and missing paths are
// skipped silently, unsupported extensions are logged and skipped, and a
// failing file never stops the ones after it.
func (r *Runner) Run(paths []string) (Summary, error) {
	if r.cfg.Processor == nil {
		return Summary{}, fmt.Errorf("no processor configured")
	}
	if r.cfg.Destination != "" && len(paths) != 1 {
		return Summary{}, fmt.Errorf("an explicit destination needs exactly one input, got %d", len(paths))
	}

	var (
		summary Summary
		queue   []string
	)

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !Accepts(p) {
			summary.Ignored = append(summary.Ignored, p)
			r.log(IgnoredPrefix + filepath.Base(p))
			continue
		}
		queue = append(queue, p)
	}

	for _, src := range queue {
		res := r.processOne(src)
		summary.Results = append(summary.Results, res)
		if !res.OK {
			summary.Failed++
		}
		if r.cfg.OnProgress != nil {
			r.cfg.OnProgress(len(summary.Results), len(queue), summary.Failed)
		}
	}

	return summary, nil
}

func (r *Runner) processOne(src string) Result {
	base := TrimOutputExt(r.cfg.Destination)
	if base == "" {
		base = DestinationBase(src, r.cfg.OutDir, r.cfg.Now())
	}

	name := filepath.Base(src)
	r.log(StartPrefix + name + " ...")

	start := time.Now()
	ok := r.cfg.Processor.ProcessImage(src, base, r.cfg.Sink)
	elapsed := time.Since(start)

	if ok {
		r.log(DonePrefix + name)
	}

	return Result{Source: src, Base: base, OK: ok, Elapsed: elapsed}
}

func (r *Runner) log(message string) {
	if r.cfg.Sink != nil {
		r.cfg.Sink(message)
	}
}
