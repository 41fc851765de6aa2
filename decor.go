package plexus

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// OrbSpec describes one blurred gradient orb. X, Y and Scale are keyframes
// looped over Duration seconds after an initial Delay.
type OrbSpec struct {
	// Diameter in pixels at scale 1.
	Size float64
	// Color at the orb center; it fades to transparent at 70% of the radius.
	Color Color
	// Anchor is a point of the viewport as a fraction of its size; Offset is
	// the orb center relative to it in pixels.
	Anchor   Vec2
	Offset   Vec2
	X, Y     []float64
	Scale    []float64
	Duration float32
	Delay    float32
}

// Orb is an animated OrbSpec.
type Orb struct {
	spec     OrbSpec
	x, y, sc *Track
}

// NewOrb starts the keyframe tracks of spec.
func NewOrb(spec OrbSpec) *Orb {
	return &Orb{
		spec: spec,
		x:    NewTrack(spec.X, spec.Duration, spec.Delay, ease.InOutSine),
		y:    NewTrack(spec.Y, spec.Duration, spec.Delay, ease.InOutSine),
		sc:   NewTrack(spec.Scale, spec.Duration, spec.Delay, ease.InOutSine),
	}
}

// Update advances the orb by dt seconds.
func (o *Orb) Update(dt float32) {
	o.x.Update(dt)
	o.y.Update(dt)
	o.sc.Update(dt)
}

// Center returns the orb center in a w×h viewport.
func (o *Orb) Center(w, h float64) Vec2 {
	return Vec2{
		X: o.spec.Anchor.X*w + o.spec.Offset.X + o.x.Value(),
		Y: o.spec.Anchor.Y*h + o.spec.Offset.Y + o.y.Value(),
	}
}

// Radius returns the visible radius: the gradient is transparent beyond 70%
// of half the diameter.
func (o *Orb) Radius() float64 {
	scale := o.sc.Value()
	if scale == 0 {
		scale = 1
	}
	return o.spec.Size / 2 * scale * 0.7
}

// Draw paints the orb onto s.
func (o *Orb) Draw(s Surface) {
	w, h := s.Size()
	c := o.Center(float64(w), float64(h))
	s.FillCircle(c.X, c.Y, o.Radius(), o.spec.Color, o.spec.Color.WithAlpha(0))
}

// OrbSpecs returns the orb set for a look and theme.
func OrbSpecs(look Look, theme Theme) []OrbSpec {
	pink := RGBA8(255, 182, 193, 1)
	// The orb box edge sits at (ax, ay) like a CSS left/top or right/bottom
	// pair; sx and sy are +1 for left/top and -1 for right/bottom.
	orb := func(size float64, c Color, ax, ay, sx, sy float64, x, y, sc []float64, dur, delay float32) OrbSpec {
		return OrbSpec{Size: size, Color: c,
			Anchor: Vec2{ax, ay}, Offset: Vec2{sx * size / 2, sy * size / 2},
			X: x, Y: y, Scale: sc, Duration: dur, Delay: delay}
	}
	if look == LookConstellation {
		if theme == ThemeLight {
			return []OrbSpec{
				orb(700, violet.WithAlpha(0.08), 0.05, 0, 1, 1,
					[]float64{0, 60, 0}, []float64{0, -70, 0}, []float64{1, 1.15, 1}, 20, 0),
				orb(600, cyan.WithAlpha(0.06), 1, 0.2, -1, 1,
					[]float64{0, -50, 0}, []float64{0, 70, 0}, []float64{1, 1.2, 1}, 22, 3),
				orb(500, pink.WithAlpha(0.05), 0.6, 0.9, 1, -1,
					[]float64{-40, 40, -40}, []float64{0, -50, 0}, []float64{1, 1.1, 1}, 16, 5),
			}
		}
		return []OrbSpec{
			orb(600, cyan.WithAlpha(0.15), 0.1, 0.1, 1, 1,
				[]float64{0, 50, 0}, []float64{0, -80, 0}, []float64{1, 1.2, 1}, 15, 0),
			orb(500, violet.WithAlpha(0.12), 0.9, 0.3, -1, 1,
				[]float64{0, -60, 0}, []float64{0, 60, 0}, []float64{1, 1.15, 1}, 18, 2),
			orb(400, cyan.WithAlpha(0.1), 0.5, 0.8, 1, -1,
				[]float64{-30, 30, -30}, []float64{0, -40, 0}, []float64{1, 1.1, 1}, 12, 4),
		}
	}
	if theme == ThemeLight {
		return []OrbSpec{
			orb(800, violet.WithAlpha(0.1), -0.1, -0.15, 1, 1,
				[]float64{0, 120, -60, 0}, []float64{0, -100, 80, 0}, []float64{1, 1.15, 0.95, 1}, 22, 0),
			orb(700, cyan.WithAlpha(0.08), 1.1, 0.15, -1, 1,
				[]float64{0, -90, 70, 0}, []float64{0, 110, -60, 0}, []float64{1, 0.9, 1.2, 1}, 26, 3),
			orb(600, pink.WithAlpha(0.07), 0.55, 0.95, 1, -1,
				[]float64{-70, 70, -70}, []float64{0, -70, 0}, []float64{1, 1.12, 1}, 20, 6),
		}
	}
	return []OrbSpec{
		orb(700, cyan.WithAlpha(0.18), -0.1, -0.1, 1, 1,
			[]float64{0, 100, -50, 0}, []float64{0, -80, 60, 0}, []float64{1, 1.2, 0.9, 1}, 20, 0),
		orb(600, violet.WithAlpha(0.15), 1.05, 0.2, -1, 1,
			[]float64{0, -80, 60, 0}, []float64{0, 100, -50, 0}, []float64{1, 0.9, 1.15, 1}, 25, 2),
		orb(500, cyan.WithAlpha(0.12), 0.5, 0.9, 1, -1,
			[]float64{-60, 60, -60}, []float64{0, -60, 0}, []float64{1, 1.1, 1}, 18, 4),
	}
}

// MeshSpot is one static radial spot of the gradient mesh, centered at a
// viewport fraction and fading out at half the distance to the farthest corner.
type MeshSpot struct {
	At    Vec2
	Color Color
}

// MeshSpots returns the gradient-mesh spots for a look and theme. Only the
// constellation look has a mesh.
func MeshSpots(look Look, theme Theme) []MeshSpot {
	if look != LookConstellation {
		return nil
	}
	if theme == ThemeLight {
		return []MeshSpot{
			{Vec2{0.15, 0.25}, violet.WithAlpha(0.06)},
			{Vec2{0.85, 0.45}, cyan.WithAlpha(0.05)},
			{Vec2{0.5, 0.85}, RGBA8(255, 182, 193, 0.04)},
		}
	}
	return []MeshSpot{
		{Vec2{0.2, 0.3}, cyan.WithAlpha(0.08)},
		{Vec2{0.8, 0.5}, violet.WithAlpha(0.08)},
		{Vec2{0.4, 0.8}, cyan.WithAlpha(0.06)},
	}
}

// Decoration constants.
const (
	scanlineDuration = 10
	scanlineAlpha    = 0.3
	scanlineWidth    = 2
	noiseTile        = 128
)

// drawBase paints the opaque theme background plus a soft glow at the top.
func drawBase(s Surface, theme Theme) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	if theme == ThemeLight {
		s.FillRect(0, 0, fw, fh, RGBA8(255, 255, 255, 1))
		glow := RGBA8(248, 250, 255, 1)
		s.FillCircle(fw/2, 0, math.Max(fw, fh)*0.8, glow, glow.WithAlpha(0))
		return
	}
	s.FillRect(0, 0, fw, fh, RGBA8(0, 0, 0, 1))
	s.FillCircle(fw/2, 0, math.Max(fw, fh)*0.8, RGBA8(0, 13, 26, 1), RGBA8(13, 13, 13, 1))
}

// drawMesh paints the mesh spots scaled by opacity.
func drawMesh(s Surface, spots []MeshSpot, opacity float64) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	for _, m := range spots {
		cx, cy := m.At.X*fw, m.At.Y*fh
		far := math.Hypot(math.Max(cx, fw-cx), math.Max(cy, fh-cy))
		c := m.Color.ScaleAlpha(opacity)
		s.FillCircle(cx, cy, far/2, c, c.WithAlpha(0))
	}
}

// drawGrid paints a grid of 1px lines every cell pixels with alpha opacity.
func drawGrid(s Surface, cell, opacity float64, accent Color) {
	if cell <= 0 {
		return
	}
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	c := accent.WithAlpha(opacity)
	stops := []GradientStop{{0, c}, {1, c}}
	for x := 0.0; x <= fw; x += cell {
		s.StrokeLine(x, 0, x, fh, 1, stops)
	}
	for y := 0.0; y <= fh; y += cell {
		s.StrokeLine(0, y, fw, y, 1, stops)
	}
}

// drawScanline paints the horizontal sweep at fraction pos of the height.
func drawScanline(s Surface, pos float64, accent Color) {
	w, h := s.Size()
	y := pos * float64(h)
	c := accent.WithAlpha(scanlineAlpha)
	s.StrokeLine(0, y, float64(w), y, scanlineWidth, []GradientStop{
		{0, c.WithAlpha(0)},
		{0.5, c},
		{1, c.WithAlpha(0)},
	})
}

// drawVignette darkens (or, in light mode, washes out) the edges up to alpha.
func drawVignette(s Surface, theme Theme, alpha float64) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	edge := RGBA8(0, 0, 0, alpha)
	if theme == ThemeLight {
		edge = RGBA8(255, 255, 255, alpha)
	}
	s.FillCircle(fw/2, fh/2, math.Hypot(fw, fh)/2, edge.WithAlpha(0), edge)
}

// noisePixels returns size×size opaque gray pixels in RGBA order.
func noisePixels(size int, rng *rand.Rand) []byte {
	pix := make([]byte, 4*size*size)
	for i := 0; i < len(pix); i += 4 {
		v := byte(rng.IntN(256))
		pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 0xff
	}
	return pix
}

// newNoiseTile builds the static noise texture tiled over the backdrop.
func newNoiseTile(rng *rand.Rand) *ebiten.Image {
	img := ebiten.NewImage(noiseTile, noiseTile)
	img.WritePixels(noisePixels(noiseTile, rng))
	return img
}

// drawNoise tiles the noise texture over screen at the given opacity.
func drawNoise(screen, tile *ebiten.Image, opacity float64) {
	if tile == nil || opacity <= 0 {
		return
	}
	b := screen.Bounds()
	var op ebiten.DrawImageOptions
	for y := b.Min.Y; y < b.Max.Y; y += noiseTile {
		for x := b.Min.X; x < b.Max.X; x += noiseTile {
			op.GeoM.Reset()
			op.GeoM.Translate(float64(x), float64(y))
			op.ColorScale.Reset()
			op.ColorScale.ScaleAlpha(float32(opacity))
			screen.DrawImage(tile, &op)
		}
	}
}
