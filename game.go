package plexus

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Theme is the initial theme.
	Theme Theme
	// TPS overrides Ebitengine's tick rate when positive.
	TPS int
	// Keys enables the keyboard shortcuts: T toggles the theme, Space pauses,
	// Esc or Q quits.
	Keys bool
	// Themes, when set, delivers theme changes from outside the game loop
	// (for example the OS appearance). It is polled once per tick.
	Themes <-chan Theme
}

// Game adapts a Backdrop to ebiten.Game. The backdrop is mounted on the first
// Layout call and resized on every later one.
type Game struct {
	backdrop *Backdrop
	cfg      RunConfig
	fps      *fpsOverlay
	mounted  bool
}

// NewGame wraps b for use with ebiten.RunGame.
func NewGame(b *Backdrop, cfg RunConfig) *Game {
	if cfg.Theme == "" {
		cfg.Theme = ThemeDark
	}
	return &Game{backdrop: b, cfg: cfg}
}

// Backdrop returns the wrapped backdrop, or nil after Close.
func (g *Game) Backdrop() *Backdrop { return g.backdrop }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.backdrop == nil {
		return ebiten.Termination
	}
	dt := tickDt()
	g.pollTheme()
	if g.cfg.Keys {
		if err := g.handleKeys(); err != nil {
			return err
		}
	}
	g.backdrop.Update(dt)
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

func (g *Game) pollTheme() {
	if g.cfg.Themes == nil {
		return
	}
	select {
	case t, ok := <-g.cfg.Themes:
		if !ok {
			g.cfg.Themes = nil
			return
		}
		g.backdrop.SetTheme(t)
	default:
	}
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.backdrop.ToggleTheme()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		l := g.backdrop.Layer()
		l.SetPaused(!l.Paused())
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.backdrop == nil {
		return
	}
	g.backdrop.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backdrop != nil {
		if !g.mounted {
			g.mounted = true
			g.backdrop.Mount(outsideWidth, outsideHeight, g.cfg.Theme)
			if g.cfg.ShowFPS {
				g.fps = newFPSOverlay()
			}
		} else {
			g.backdrop.Resize(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}

// Close unmounts the backdrop and drops the reference to it.
func (g *Game) Close() {
	if g.backdrop != nil {
		g.backdrop.Unmount()
		g.backdrop = nil
	}
	if g.fps != nil {
		g.fps.dispose()
		g.fps = nil
	}
}

// Run opens a resizable window and drives b until the window is closed or a
// quit key is pressed. A clean quit returns nil.
func Run(b *Backdrop, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "plexus"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	g := NewGame(b, cfg)
	defer g.Close()
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
