// Package plexus animates a field of drifting points linked by fading lines
// for [Ebitengine] backgrounds.
//
// A [Field] holds the points and the transient data packets that travel
// between them. A [Renderer] paints one field onto a [Surface]. A [Layer]
// ties the two to a mount lifecycle: it allocates the surface, advances and
// paints the field once per [Layer.Frame], and releases everything on
// [Layer.Unmount]. A [Backdrop] composes a layer with the decorations around
// it: background gradient, orbs, gradient mesh, grid, scanline, noise and
// vignette, each toggled and tuned per look in [DecorConfig].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a resizable window
// and game loop for you:
//
//	b := plexus.NewBackdrop(plexus.NeuralConfig())
//	plexus.Run(b, plexus.RunConfig{
//		Title: "plexus", Width: 1280, Height: 720, Keys: true,
//	})
//
// For full control, implement [ebiten.Game] yourself and drive a [Layer]
// directly:
//
//	type Game struct{ layer *plexus.Layer }
//
//	func (g *Game) Update() error { g.layer.Frame(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) {
//		s.DrawImage(g.layer.Surface().(*plexus.Canvas).Image(), nil)
//	}
//	func (g *Game) Layout(w, h int) (int, int) { g.layer.Resize(w, h); return w, h }
//
// # Field dynamics
//
// Every tick each point moves by its velocity and reflects off the bounds,
// packets age, and every pair of points closer than [Config.LinkDistance] is
// connected with opacity (1 - d/D) * [Config.LineOpacity]. Each connected
// pair may spawn a packet with probability [Config.SpawnChance] while fewer
// than [Config.MaxPackets] are alive.
//
// # Themes
//
// A [Theme] changes colors only. By default [Layer.SetTheme] keeps the field
// and cross-fades the [Palette] over [Config.ThemeFade] seconds; set
// [Config.ReinitOnTheme] to clear the surface and rebuild the field instead.
//
// # Configuration
//
// Two presets are built in: [NeuralConfig] and [ConstellationConfig].
// [ParseConfig] and [LoadConfig] read YAML documents that override a preset:
//
//	preset: constellation
//	points: 120
//	resize_mode: rescale
//
// # Headless use
//
// [RecordingSurface] records drawing operations instead of rasterizing them.
// Pass [RecordingFactory] through [WithSurfaceFactory] to run a layer without
// a GPU, and [WithSeed] to make the field reproducible. [ScriptRunner] drives
// a layer through a JSON sequence of mount, resize, theme, spawn, screenshot,
// wait and unmount actions.
//
// # Debugging
//
// [Layer.SetDebugMode] logs step and paint timings and entity counts to
// stderr once per 60 ticks. [Layer.Screenshot] writes the next painted frame
// of a [Canvas] to <label>_t<tick>.png.
//
// [Ebitengine]: https://ebitengine.org
package plexus
