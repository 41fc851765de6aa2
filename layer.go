package plexus

import (
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// tickDt returns the duration of one tick at the current Ebitengine TPS,
// falling back to 60 TPS when ticks are synced to the frame rate.
func tickDt() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// SurfaceFactory allocates a drawing surface of the given size. It may return
// nil when no surface can be obtained; the layer then skips frames until the
// next Resize.
type SurfaceFactory func(w, h int) Surface

// LayerOption configures a Layer.
type LayerOption func(*Layer)

// WithSurfaceFactory replaces the default Ebitengine canvas factory.
func WithSurfaceFactory(f SurfaceFactory) LayerOption {
	return func(l *Layer) { l.newSurface = f }
}

// WithRand injects the random source used for field creation and packet spawns.
func WithRand(rng *rand.Rand) LayerOption {
	return func(l *Layer) { l.rng = rng }
}

// WithSeed seeds a PCG source for reproducible fields.
func WithSeed(seed uint64) LayerOption {
	return func(l *Layer) { l.rng = NewSeededRand(seed) }
}

// Layer is the animated particle layer. It owns its Field and Surface
// exclusively between Mount and Unmount, and is driven by calling Frame once
// per host tick. A Layer is not safe for concurrent use.
type Layer struct {
	cfg        Config
	newSurface SurfaceFactory
	rng        *rand.Rand
	renderer   *Renderer

	surface Surface
	field   *Field
	theme   Theme
	palette Palette
	fade    *PaletteFade

	mounted bool
	paused  bool
	w, h    int
	ticks   uint64

	debug    bool
	debugOut io.Writer

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewLayer creates an unmounted layer for cfg.
func NewLayer(cfg Config, opts ...LayerOption) *Layer {
	l := &Layer{
		cfg:           cfg,
		newSurface:    CanvasFactory,
		renderer:      NewRenderer(cfg),
		theme:         ThemeDark,
		palette:       PaletteFor(cfg.Look, ThemeDark),
		debugOut:      os.Stderr,
		ScreenshotDir: "screenshots",
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = newRand()
	}
	return l
}

// Config returns the layer's configuration.
func (l *Layer) Config() Config { return l.cfg }

// Mounted reports whether the layer is between Mount and Unmount.
func (l *Layer) Mounted() bool { return l.mounted }

// Field returns the current field, or nil when none exists.
func (l *Layer) Field() *Field { return l.field }

// Surface returns the current surface, or nil when none exists.
func (l *Layer) Surface() Surface { return l.surface }

// Theme returns the active theme.
func (l *Layer) Theme() Theme { return l.theme }

// Palette returns the palette used by the next Frame.
func (l *Layer) Palette() Palette { return l.palette }

// Size returns the size last passed to Mount or Resize.
func (l *Layer) Size() (w, h int) { return l.w, l.h }

// Ticks returns the number of frames painted since Mount.
func (l *Layer) Ticks() uint64 { return l.ticks }

// SetPaused stops (or resumes) stepping and painting without unmounting.
func (l *Layer) SetPaused(paused bool) { l.paused = paused }

// Paused reports whether the layer is paused.
func (l *Layer) Paused() bool { return l.paused }

// Mount attaches the layer at the given size and theme and starts ticking,
// clearing any pause left over from a previous mount.
// When no surface can be allocated (zero size, or the factory returns nil)
// the layer stays mounted and retries on the next Resize. Mounting an already
// mounted layer does nothing.
func (l *Layer) Mount(w, h int, theme Theme) {
	if l.mounted {
		return
	}
	l.mounted = true
	l.w, l.h = w, h
	l.theme = theme
	l.palette = PaletteFor(l.cfg.Look, theme)
	l.fade = nil
	l.paused = false
	l.ticks = 0
	l.attach()
}

// attach allocates the surface and, if missing, the field.
func (l *Layer) attach() {
	if l.w <= 0 || l.h <= 0 {
		return
	}
	l.surface = l.newSurface(l.w, l.h)
	if l.surface == nil {
		return
	}
	if l.field == nil {
		l.field = NewField(l.cfg, float64(l.w), float64(l.h), l.rng)
		return
	}
	l.field.Resize(float64(l.w), float64(l.h), l.cfg.ResizeMode)
}

// Resize reallocates the surface for a new size. Resizing to the current size
// while a surface exists is a no-op. Points are kept or rescaled according to
// Config.ResizeMode; velocities never change.
func (l *Layer) Resize(w, h int) {
	if !l.mounted {
		return
	}
	if w == l.w && h == l.h && l.surface != nil {
		return
	}
	l.release()
	l.w, l.h = w, h
	l.attach()
}

// SetTheme switches the palette. Field dynamics are untouched unless
// Config.ReinitOnTheme is set, in which case the field is rebuilt. With a
// non-zero Config.ThemeFade the palette cross-fades over that many seconds.
func (l *Layer) SetTheme(theme Theme) {
	if theme == l.theme {
		return
	}
	l.theme = theme
	target := PaletteFor(l.cfg.Look, theme)
	if !l.mounted {
		l.palette = target
		return
	}
	if l.cfg.ReinitOnTheme {
		l.palette = target
		l.fade = nil
		if l.surface != nil {
			l.surface.Clear()
			l.field = NewField(l.cfg, float64(l.w), float64(l.h), l.rng)
		}
		return
	}
	if l.cfg.ThemeFade <= 0 {
		l.palette = target
		l.fade = nil
		return
	}
	l.fade = NewPaletteFade(l.palette, target, float32(l.cfg.ThemeFade))
}

// Unmount stops ticking and releases the surface and field. Frame is a no-op
// afterwards.
func (l *Layer) Unmount() {
	if !l.mounted {
		return
	}
	l.mounted = false
	l.release()
	l.field = nil
	l.fade = nil
	l.screenshotQueue = l.screenshotQueue[:0]
}

func (l *Layer) release() {
	if d, ok := l.surface.(disposer); ok {
		d.Dispose()
	}
	l.surface = nil
}

// Frame runs one tick: step the field, then paint it. Palette fades advance
// by one tick at the current TPS. It does nothing when the layer is
// unmounted, paused, or has no surface.
func (l *Layer) Frame() {
	l.FrameDt(tickDt())
}

// FrameDt is Frame with an explicit tick duration in seconds, for hosts that
// do not run at Ebitengine's TPS.
func (l *Layer) FrameDt(dt float64) {
	if !l.mounted || l.paused || l.surface == nil || l.field == nil {
		return
	}
	if l.fade != nil {
		l.palette = l.fade.Update(float32(dt))
		if l.fade.Done {
			l.fade = nil
		}
	}

	var stats debugStats
	var t0 time.Time
	if l.debug {
		t0 = time.Now()
	}

	l.field.Step()

	if l.debug {
		stats.stepTime = time.Since(t0)
		t0 = time.Now()
	}

	l.renderer.Paint(l.surface, l.field, l.palette)
	l.ticks++

	if l.debug {
		stats.paintTime = time.Since(t0)
		stats.points = len(l.field.Points())
		stats.connections = len(l.field.Connections())
		stats.packets = len(l.field.Packets())
		l.debugLog(stats)
	}

	l.flushScreenshots()
}

// SetDebugMode enables or disables debug mode. When enabled, step and paint
// timings and entity counts are logged to stderr once per second of ticks.
func (l *Layer) SetDebugMode(enabled bool) {
	l.debug = enabled
}
