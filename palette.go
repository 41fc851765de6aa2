package plexus

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var (
	cyan   = RGBA8(0, 178, 255, 1)
	violet = RGBA8(123, 97, 255, 1)
)

// Palette holds every color the Renderer uses for one theme.
type Palette struct {
	// Fade is painted over the whole surface each tick.
	Fade Color
	// LineStops are the gradient stop colors at offsets 0, 0.5 and 1. Flat
	// lines use LineStops[0].
	LineStops [3]Color
	// LineAlpha scales every link opacity.
	LineAlpha float64
	// LineWidth is the link stroke width in pixels.
	LineWidth float64
	// NodeInner and NodeOuter are the radial gradient ends of a node disc.
	NodeInner, NodeOuter Color
	// Packet is the packet color; its alpha is replaced per packet.
	Packet Color
	// Accent tints decorations (grid, scanline).
	Accent Color
}

// PaletteFor returns the palette of a look in a theme.
func PaletteFor(look Look, theme Theme) Palette {
	dark := theme != ThemeLight
	if look == LookConstellation {
		if dark {
			return Palette{
				Fade:      RGBA8(13, 13, 13, 0.05),
				LineStops: [3]Color{cyan, cyan, cyan},
				LineAlpha: 1,
				LineWidth: 0.5,
				NodeInner: cyan.WithAlpha(0.4),
				NodeOuter: cyan.WithAlpha(0.4),
				Packet:    cyan,
				Accent:    cyan,
			}
		}
		return Palette{
			Fade:      RGBA8(255, 255, 255, 0.08),
			LineStops: [3]Color{violet, violet, violet},
			LineAlpha: 1,
			LineWidth: 0.5,
			NodeInner: violet.WithAlpha(0.5),
			NodeOuter: violet.WithAlpha(0.5),
			Packet:    violet,
			Accent:    violet,
		}
	}
	if dark {
		return Palette{
			Fade:      RGBA8(13, 13, 13, 0.08),
			LineStops: [3]Color{cyan, violet, cyan},
			LineAlpha: 1,
			LineWidth: 1,
			NodeInner: cyan.WithAlpha(0.8),
			NodeOuter: cyan.WithAlpha(0.2),
			Packet:    cyan,
			Accent:    cyan,
		}
	}
	return Palette{
		Fade:      RGBA8(255, 255, 255, 0.1),
		LineStops: [3]Color{violet, cyan, violet},
		LineAlpha: 0.8,
		LineWidth: 1,
		NodeInner: violet.WithAlpha(0.7),
		NodeOuter: violet.WithAlpha(0.1),
		Packet:    violet,
		Accent:    violet,
	}
}

// Lerp interpolates every color and scalar of p toward o by t.
func (p Palette) Lerp(o Palette, t float64) Palette {
	out := Palette{
		Fade:      p.Fade.Lerp(o.Fade, t),
		LineAlpha: lerp(p.LineAlpha, o.LineAlpha, t),
		LineWidth: lerp(p.LineWidth, o.LineWidth, t),
		NodeInner: p.NodeInner.Lerp(o.NodeInner, t),
		NodeOuter: p.NodeOuter.Lerp(o.NodeOuter, t),
		Packet:    p.Packet.Lerp(o.Packet, t),
		Accent:    p.Accent.Lerp(o.Accent, t),
	}
	for i := range out.LineStops {
		out.LineStops[i] = p.LineStops[i].Lerp(o.LineStops[i], t)
	}
	return out
}

// PaletteFade cross-fades between two palettes. Call Update each frame; once
// Done is set the palette stays at the target.
type PaletteFade struct {
	from, to Palette
	tween    *gween.Tween
	Done     bool
}

// NewPaletteFade creates a fade from -> to over duration seconds with an
// ease-in-out curve.
func NewPaletteFade(from, to Palette, duration float32) *PaletteFade {
	return &PaletteFade{
		from:  from,
		to:    to,
		tween: gween.New(0, 1, duration, ease.InOutSine),
	}
}

// Update advances the fade by dt seconds and returns the current palette.
func (f *PaletteFade) Update(dt float32) Palette {
	if f.Done {
		return f.to
	}
	t, finished := f.tween.Update(dt)
	if finished {
		f.Done = true
		return f.to
	}
	return f.from.Lerp(f.to, float64(t))
}

// Target returns the palette the fade ends on.
func (f *PaletteFade) Target() Palette {
	return f.to
}
