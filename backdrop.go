package plexus

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// noiseSeed seeds the static noise texture.
const noiseSeed = 0x5eed

// Backdrop composes the particle Layer with its decorations into a full
// background. Bottom to top: base gradient, orbs, the layer at
// Config.LayerOpacity, gradient mesh, grid, scanline, noise, vignette.
type Backdrop struct {
	cfg   Config
	layer *Layer
	theme Theme
	orbs  []*Orb
	scan  *Track
	noise *ebiten.Image
}

// NewBackdrop creates an unmounted backdrop. Options are passed to the layer.
func NewBackdrop(cfg Config, opts ...LayerOption) *Backdrop {
	return &Backdrop{
		cfg:   cfg,
		layer: NewLayer(cfg, opts...),
		theme: ThemeDark,
	}
}

// Layer returns the particle layer.
func (b *Backdrop) Layer() *Layer { return b.layer }

// Theme returns the active theme.
func (b *Backdrop) Theme() Theme { return b.theme }

// Mount mounts the layer and starts the decoration tracks.
func (b *Backdrop) Mount(w, h int, theme Theme) {
	b.theme = theme
	b.layer.Mount(w, h, theme)
	b.resetDecor()
}

// Resize forwards a viewport change to the layer.
func (b *Backdrop) Resize(w, h int) {
	b.layer.Resize(w, h)
}

// SetTheme switches the theme of the layer and the decorations.
func (b *Backdrop) SetTheme(theme Theme) {
	if theme == b.theme {
		return
	}
	b.theme = theme
	b.layer.SetTheme(theme)
	b.resetDecor()
}

// ToggleTheme flips between dark and light.
func (b *Backdrop) ToggleTheme() {
	b.SetTheme(b.theme.Toggle())
}

// Unmount tears the layer down and stops the decorations.
func (b *Backdrop) Unmount() {
	b.layer.Unmount()
	b.orbs = nil
	b.scan = nil
	if b.noise != nil {
		b.noise.Deallocate()
		b.noise = nil
	}
}

func (b *Backdrop) resetDecor() {
	b.orbs = b.orbs[:0]
	if b.cfg.Decor.Orbs {
		for _, spec := range OrbSpecs(b.cfg.Look, b.theme) {
			b.orbs = append(b.orbs, NewOrb(spec))
		}
	}
	b.scan = nil
	if b.cfg.Decor.Scanline {
		b.scan = NewTrack([]float64{0, 1}, scanlineDuration, 0, ease.Linear)
	}
}

// Update advances the decorations and the layer by dt seconds.
func (b *Backdrop) Update(dt float64) {
	if !b.layer.Mounted() {
		return
	}
	for _, o := range b.orbs {
		o.Update(float32(dt))
	}
	if b.scan != nil {
		b.scan.Update(float32(dt))
	}
	b.layer.FrameDt(dt)
}

// Draw composes the backdrop onto screen.
func (b *Backdrop) Draw(screen *ebiten.Image) {
	if !b.layer.Mounted() {
		return
	}
	dst := WrapImage(screen)
	b.drawUnderlay(dst)
	if c, ok := b.layer.Surface().(*Canvas); ok && c.Image() != nil {
		var op ebiten.DrawImageOptions
		op.ColorScale.ScaleAlpha(float32(b.cfg.LayerOpacity.For(b.theme)))
		screen.DrawImage(c.Image(), &op)
	}
	b.drawOverlay(dst)
	if b.cfg.Decor.Noise {
		if b.noise == nil {
			b.noise = newNoiseTile(NewSeededRand(noiseSeed))
		}
		drawNoise(screen, b.noise, b.cfg.Decor.NoiseOpacity.For(b.theme))
	}
	b.drawVignette(dst)
}

func (b *Backdrop) drawUnderlay(s Surface) {
	if b.cfg.Decor.Base {
		drawBase(s, b.theme)
	}
	for _, o := range b.orbs {
		o.Draw(s)
	}
}

func (b *Backdrop) drawOverlay(s Surface) {
	d := b.cfg.Decor
	if d.Mesh {
		drawMesh(s, MeshSpots(b.cfg.Look, b.theme), d.MeshOpacity.For(b.theme))
	}
	accent := b.layer.Palette().Accent
	if d.Grid {
		drawGrid(s, d.GridCell, d.GridOpacity.For(b.theme), accent)
	}
	if b.scan != nil {
		drawScanline(s, b.scan.Value(), accent)
	}
}

func (b *Backdrop) drawVignette(s Surface) {
	if b.cfg.Decor.Vignette {
		drawVignette(s, b.theme, b.cfg.Decor.VignetteAlpha.For(b.theme))
	}
}
