package plexus

// GradientStop is a color at a fractional offset along a line.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Surface is the 2D raster target a Renderer paints on. Coordinates are in
// pixels with the origin at the top-left and Y increasing downward.
// Implementations blend source-over.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)
	// Clear resets every pixel to transparent.
	Clear()
	// FillRect blends a solid rectangle.
	FillRect(x, y, w, h float64, c Color)
	// StrokeLine draws a line of the given width whose color follows stops
	// from (x0, y0) at offset 0 to (x1, y1) at offset 1.
	StrokeLine(x0, y0, x1, y1, width float64, stops []GradientStop)
	// FillCircle fills a disc with a radial gradient from inner at the center
	// to outer at the rim.
	FillCircle(cx, cy, r float64, inner, outer Color)
}

// disposer is implemented by surfaces that hold GPU resources.
type disposer interface {
	Dispose()
}

// SurfaceOpKind identifies a recorded drawing operation.
type SurfaceOpKind uint8

const (
	OpClear SurfaceOpKind = iota
	OpFillRect
	OpStrokeLine
	OpFillCircle
)

// SurfaceOp is one operation captured by a RecordingSurface. Only the fields
// relevant to Kind are set.
type SurfaceOp struct {
	Kind SurfaceOpKind

	X0, Y0, X1, Y1 float64 // line endpoints, or rect origin in X0/Y0
	W, H           float64 // rect size
	Width          float64 // line width
	R              float64 // circle radius

	Color Color // rect color, or circle inner color
	Outer Color // circle outer color
	Stops []GradientStop
}

// RecordingSurface is an in-memory Surface that records every operation
// instead of rasterizing. It backs headless runs and tests.
type RecordingSurface struct {
	w, h     int
	ops      []SurfaceOp
	disposed bool
}

// NewRecordingSurface creates a recording surface of the given size.
func NewRecordingSurface(w, h int) *RecordingSurface {
	return &RecordingSurface{w: w, h: h}
}

// RecordingFactory is a SurfaceFactory producing RecordingSurfaces.
func RecordingFactory(w, h int) Surface {
	return NewRecordingSurface(w, h)
}

func (r *RecordingSurface) Size() (w, h int) { return r.w, r.h }

func (r *RecordingSurface) Clear() {
	r.ops = append(r.ops, SurfaceOp{Kind: OpClear})
}

func (r *RecordingSurface) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, SurfaceOp{Kind: OpFillRect, X0: x, Y0: y, W: w, H: h, Color: c})
}

func (r *RecordingSurface) StrokeLine(x0, y0, x1, y1, width float64, stops []GradientStop) {
	cp := make([]GradientStop, len(stops))
	copy(cp, stops)
	r.ops = append(r.ops, SurfaceOp{Kind: OpStrokeLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Stops: cp})
}

func (r *RecordingSurface) FillCircle(cx, cy, rad float64, inner, outer Color) {
	r.ops = append(r.ops, SurfaceOp{Kind: OpFillCircle, X0: cx, Y0: cy, R: rad, Color: inner, Outer: outer})
}

// Dispose marks the surface released.
func (r *RecordingSurface) Dispose() {
	r.disposed = true
}

// Disposed reports whether Dispose was called.
func (r *RecordingSurface) Disposed() bool {
	return r.disposed
}

// Ops returns the recorded operations. The returned slice MUST NOT be mutated.
func (r *RecordingSurface) Ops() []SurfaceOp {
	return r.ops
}

// Count returns how many operations of kind k were recorded.
func (r *RecordingSurface) Count(k SurfaceOpKind) int {
	n := 0
	for i := range r.ops {
		if r.ops[i].Kind == k {
			n++
		}
	}
	return n
}

// Reset discards the recorded operations.
func (r *RecordingSurface) Reset() {
	r.ops = r.ops[:0]
}
