package plexus

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are submitted to a Canvas.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// RGBA8 builds a Color from 8-bit channels and a [0, 1] alpha, the way CSS
// rgba() literals are written.
func RGBA8(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// WithAlpha returns c with its alpha replaced by a (clamped to [0, 1]).
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// ScaleAlpha returns c with its alpha multiplied by k (clamped to [0, 1]).
func (c Color) ScaleAlpha(k float64) Color {
	c.A = clamp01(c.A * k)
	return c
}

// Lerp linearly interpolates every channel from c to other by t.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: lerp(c.R, other.R, t),
		G: lerp(c.G, other.G, t),
		B: lerp(c.B, other.B, t),
		A: lerp(c.A, other.A, t),
	}
}

// premultiplied returns the channels as float32 premultiplied by alpha.
func (c Color) premultiplied() (r, g, b, a float32) {
	a64 := clamp01(c.A)
	return float32(clamp01(c.R) * a64), float32(clamp01(c.G) * a64), float32(clamp01(c.B) * a64), float32(a64)
}

// Vec2 is a 2D vector used for positions, velocities and offsets.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Range is a general-purpose min/max range.
// Used by Config for radii and packet speeds.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Theme selects the color scheme. Only colors depend on it; field dynamics do not.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme converts "dark" or "light" to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want %q or %q)", s, ThemeDark, ThemeLight)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// PerTheme holds one value for each theme.
type PerTheme struct {
	Dark  float64 `yaml:"dark"`
	Light float64 `yaml:"light"`
}

// For returns the value for theme t.
func (p PerTheme) For(t Theme) float64 {
	if t == ThemeLight {
		return p.Light
	}
	return p.Dark
}

func (p PerTheme) inUnit() bool {
	return p.Dark >= 0 && p.Dark <= 1 && p.Light >= 0 && p.Light <= 1
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
