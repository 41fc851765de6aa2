package plexus

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is a Surface backed by an *ebiten.Image. Shapes are tessellated into
// triangles with per-vertex colors, so linear and radial gradients cost one
// DrawTriangles32 call each.
//
// A Canvas created with NewCanvas owns its image and keeps its contents between
// frames, which is what gives the field its fading trails. WrapImage borrows an
// image (typically the screen) for one frame.
type Canvas struct {
	image *ebiten.Image
	owned bool
	w, h  int

	verts []ebiten.Vertex
	inds  []uint32
}

var (
	whitePixelOnce sync.Once
	whitePixel     *ebiten.Image
)

// solidSource returns the 1x1 white image all Canvas geometry samples from.
func solidSource() *ebiten.Image {
	whitePixelOnce.Do(func() {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	})
	return whitePixel
}

// NewCanvas creates a persistent offscreen canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		image: ebiten.NewImage(w, h),
		owned: true,
		w:     w,
		h:     h,
	}
}

// CanvasFactory is the default SurfaceFactory. It returns nil for empty sizes.
func CanvasFactory(w, h int) Surface {
	if w <= 0 || h <= 0 {
		return nil
	}
	return NewCanvas(w, h)
}

// WrapImage returns a Canvas drawing directly onto img. The caller keeps
// ownership; Dispose on the returned canvas does nothing.
func WrapImage(img *ebiten.Image) *Canvas {
	b := img.Bounds()
	return &Canvas{image: img, w: b.Dx(), h: b.Dy()}
}

// Image returns the underlying *ebiten.Image.
func (c *Canvas) Image() *ebiten.Image {
	return c.image
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Clear fills the canvas with transparent black.
func (c *Canvas) Clear() {
	if c.image == nil {
		return
	}
	c.image.Clear()
}

// FillRect blends a solid rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if c.image == nil || w <= 0 || h <= 0 || col.A <= 0 {
		return
	}
	c.begin()
	c.vertex(x, y, col)
	c.vertex(x+w, y, col)
	c.vertex(x, y+h, col)
	c.vertex(x+w, y+h, col)
	c.inds = append(c.inds, 0, 1, 2, 1, 3, 2)
	c.flush()
}

// StrokeLine draws a quad strip along the line with one vertex pair per stop.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, stops []GradientStop) {
	if c.image == nil || len(stops) == 0 || width <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Half-width normal.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	if len(stops) == 1 {
		stops = []GradientStop{{0, stops[0].Color}, {1, stops[0].Color}}
	}

	c.begin()
	for i, st := range stops {
		px := x0 + dx*st.Offset
		py := y0 + dy*st.Offset
		c.vertex(px+nx, py+ny, st.Color)
		c.vertex(px-nx, py-ny, st.Color)
		if i > 0 {
			base := uint32(2 * (i - 1))
			c.inds = append(c.inds,
				base, base+1, base+2,
				base+1, base+3, base+2,
			)
		}
	}
	c.flush()
}

// FillCircle draws a triangle fan: the center vertex carries inner, the rim
// vertices carry outer, and the GPU interpolates the radial gradient.
func (c *Canvas) FillCircle(cx, cy, r float64, inner, outer Color) {
	if c.image == nil || r <= 0 || (inner.A <= 0 && outer.A <= 0) {
		return
	}
	segments := circleSegments(r)
	c.begin()
	c.vertex(cx, cy, inner)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		c.vertex(cx+math.Cos(a)*r, cy+math.Sin(a)*r, outer)
	}
	for i := 1; i <= segments; i++ {
		next := i%segments + 1
		c.inds = append(c.inds, 0, uint32(i), uint32(next))
	}
	c.flush()
}

// circleSegments picks a rim resolution that keeps small dots cheap and large
// glows round.
func circleSegments(r float64) int {
	n := int(r*1.5) + 12
	return min(max(n, 12), 96)
}

// Dispose deallocates an owned image. The Canvas should not be used after
// calling Dispose.
func (c *Canvas) Dispose() {
	if c.owned && c.image != nil {
		c.image.Deallocate()
	}
	c.image = nil
}

// ReadPixels copies premultiplied RGBA pixels into dst (len 4*w*h).
func (c *Canvas) ReadPixels(dst []byte) {
	if c.image == nil {
		return
	}
	c.image.ReadPixels(dst)
}

// Snapshot copies the canvas into an image.RGBA. Both use premultiplied
// alpha, so the pixels are taken as is.
func (c *Canvas) Snapshot() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
	c.ReadPixels(img.Pix)
	return img
}

func (c *Canvas) begin() {
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
}

func (c *Canvas) vertex(x, y float64, col Color) {
	r, g, b, a := col.premultiplied()
	c.verts = append(c.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	})
}

func (c *Canvas) flush() {
	if len(c.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	c.image.DrawTriangles32(c.verts, c.inds, solidSource(), &op)
}
