package plexus

import "math"

// Packet glyph sizes in pixels.
const (
	packetRadius     = 3
	packetGlowRadius = 6
	packetGlowAlpha  = 0.2
)

// Renderer paints a Field onto a Surface. It keeps scratch buffers between
// calls, so one Renderer should serve one Layer.
type Renderer struct {
	gradient  bool
	pulse     bool
	amplitude float64
	stops     [3]GradientStop
}

// NewRenderer creates a renderer for the line and pulse style of cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		gradient:  cfg.Gradient,
		pulse:     cfg.Pulse,
		amplitude: cfg.PulseAmplitude,
	}
}

// Paint draws one frame: the translucent fade, connection lines, nodes and
// packets, in that order.
func (r *Renderer) Paint(s Surface, f *Field, p Palette) {
	w, h := s.Size()
	s.FillRect(0, 0, float64(w), float64(h), p.Fade)

	pts := f.Points()
	for _, c := range f.Connections() {
		a, b := pts[c.A].Pos, pts[c.B].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, p.LineWidth, r.lineStops(p, c.Opacity))
	}

	for i := range pts {
		pt := &pts[i]
		rad := r.NodeRadius(*pt)
		if rad <= 0 {
			continue
		}
		s.FillCircle(pt.Pos.X, pt.Pos.Y, rad, p.NodeInner, p.NodeOuter)
	}

	for _, pk := range f.Packets() {
		fade := 1 - pk.Progress()
		if fade <= 0 {
			continue
		}
		pos := pk.Position()
		glow := p.Packet.WithAlpha(fade * packetGlowAlpha)
		s.FillCircle(pos.X, pos.Y, packetGlowRadius, glow, glow)
		core := p.Packet.WithAlpha(fade)
		s.FillCircle(pos.X, pos.Y, packetRadius, core, core)
	}
}

// NodeRadius returns the drawn radius of pt, including the pulse.
func (r *Renderer) NodeRadius(pt Point) float64 {
	if !r.pulse {
		return pt.Radius
	}
	return pt.Radius + r.amplitude*math.Sin(pt.Phase)
}

// lineStops returns the stops of one link. The slice aliases r.stops and is
// only valid until the next call.
func (r *Renderer) lineStops(p Palette, opacity float64) []GradientStop {
	alpha := opacity * p.LineAlpha
	if !r.gradient {
		c := p.LineStops[0]
		c.A = clamp01(c.A * alpha)
		r.stops[0] = GradientStop{Offset: 0, Color: c}
		r.stops[1] = GradientStop{Offset: 1, Color: c}
		return r.stops[:2]
	}
	for i, off := range [3]float64{0, 0.5, 1} {
		c := p.LineStops[i]
		c.A = clamp01(c.A * alpha)
		r.stops[i] = GradientStop{Offset: off, Color: c}
	}
	return r.stops[:3]
}
