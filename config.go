package plexus

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Look selects the palette family used for a field.
type Look string

const (
	// LookNeural is the cyan/violet neural-network look with gradient links.
	LookNeural Look = "neural"
	// LookConstellation is the quieter flat-colored particle look.
	LookConstellation Look = "constellation"
)

// ResizeMode controls what happens to existing points when the surface is resized.
type ResizeMode string

const (
	// ResizeKeep leaves points where they are; points outside the new bounds
	// drift back in through normal wall reflection.
	ResizeKeep ResizeMode = "keep"
	// ResizeRescale maps every point proportionally into the new bounds.
	ResizeRescale ResizeMode = "rescale"
)

// DecorConfig toggles the decorations a Backdrop draws around the field and
// holds their look-specific strengths.
type DecorConfig struct {
	Base     bool `yaml:"base"`
	Orbs     bool `yaml:"orbs"`
	Mesh     bool `yaml:"mesh"`
	Grid     bool `yaml:"grid"`
	Scanline bool `yaml:"scanline"`
	Noise    bool `yaml:"noise"`
	Vignette bool `yaml:"vignette"`

	// MeshOpacity scales the static gradient-mesh spots.
	MeshOpacity PerTheme `yaml:"mesh_opacity"`
	// GridCell is the grid spacing in pixels.
	GridCell float64 `yaml:"grid_cell"`
	// GridOpacity is the final alpha of a grid line.
	GridOpacity PerTheme `yaml:"grid_opacity"`
	// NoiseOpacity is the alpha the noise texture is drawn with.
	NoiseOpacity PerTheme `yaml:"noise_opacity"`
	// VignetteAlpha is the alpha at the vignette edge.
	VignetteAlpha PerTheme `yaml:"vignette_alpha"`
}

// Config parameterizes a field, its renderer and its layer. All values are
// fixed for the lifetime of a mount.
type Config struct {
	// Preset names the preset this config was derived from.
	Preset string `yaml:"preset,omitempty"`
	// Look selects the palette family.
	Look Look `yaml:"look"`

	// Points is the number of points, fixed at field creation.
	Points int `yaml:"points"`
	// MaxSpeed bounds each velocity component to [-MaxSpeed, MaxSpeed] px/tick.
	MaxSpeed float64 `yaml:"max_speed"`
	// Radius is the range of base point radii in pixels.
	Radius Range `yaml:"radius"`
	// PhaseStep is added to every point's phase each tick.
	PhaseStep float64 `yaml:"phase_step"`

	// LinkDistance is the connection threshold D in pixels.
	LinkDistance float64 `yaml:"link_distance"`
	// LineOpacity is the constant k in opacity = (1 - d/D) * k.
	LineOpacity float64 `yaml:"line_opacity"`
	// Gradient draws links with the palette's gradient stops instead of a flat color.
	Gradient bool `yaml:"gradient"`
	// Pulse modulates node radii with sin(phase).
	Pulse bool `yaml:"pulse"`
	// PulseAmplitude is the radius swing when Pulse is set.
	PulseAmplitude float64 `yaml:"pulse_amplitude"`

	// Packets enables transient data packets between connected points.
	Packets bool `yaml:"packets"`
	// SpawnChance is the per-pair, per-tick spawn probability.
	SpawnChance float64 `yaml:"spawn_chance"`
	// MaxPackets caps the number of live packets.
	MaxPackets int `yaml:"max_packets"`
	// PacketSpeed is the range of per-packet progress increments per tick.
	PacketSpeed Range `yaml:"packet_speed"`

	// LayerOpacity is the opacity the field layer is composited with.
	LayerOpacity PerTheme `yaml:"layer_opacity"`
	// ResizeMode selects how points react to a resize.
	ResizeMode ResizeMode `yaml:"resize_mode"`
	// ReinitOnTheme rebuilds the field on every theme change.
	ReinitOnTheme bool `yaml:"reinit_on_theme"`
	// ThemeFade is the palette cross-fade duration in seconds. Zero switches instantly.
	ThemeFade float64 `yaml:"theme_fade"`

	Decor DecorConfig `yaml:"decor"`
}

// NeuralConfig returns the richer preset: 80 pulsing nodes, gradient links
// within 150 px and data packets.
func NeuralConfig() Config {
	return Config{
		Preset:         "neural",
		Look:           LookNeural,
		Points:         80,
		MaxSpeed:       0.2,
		Radius:         Range{Min: 1, Max: 3},
		PhaseStep:      0.02,
		LinkDistance:   150,
		LineOpacity:    0.2,
		Gradient:       true,
		Pulse:          true,
		PulseAmplitude: 0.5,
		Packets:        true,
		SpawnChance:    0.0005,
		MaxPackets:     20,
		PacketSpeed:    Range{Min: 0.02, Max: 0.05},
		LayerOpacity:   PerTheme{Dark: 0.6, Light: 0.6},
		ResizeMode:     ResizeKeep,
		ThemeFade:      0.7,
		Decor: DecorConfig{
			Base: true, Orbs: true, Grid: true, Scanline: true, Noise: true, Vignette: true,
			GridCell:      100,
			GridOpacity:   PerTheme{Dark: 0.15 * 0.04, Light: 0.12 * 0.03},
			NoiseOpacity:  PerTheme{Dark: 0.025, Light: 0.02},
			VignetteAlpha: PerTheme{Dark: 0.4, Light: 0.5},
		},
	}
}

// ConstellationConfig returns the simpler preset: 60 fixed-size particles with
// flat links within 120 px, no packets, and a gradient mesh instead of the
// scanline.
func ConstellationConfig() Config {
	return Config{
		Preset:       "constellation",
		Look:         LookConstellation,
		Points:       60,
		MaxSpeed:     0.25,
		Radius:       Range{Min: 0.5, Max: 2.5},
		PhaseStep:    0.02,
		LinkDistance: 120,
		LineOpacity:  0.15,
		LayerOpacity: PerTheme{Dark: 0.5, Light: 0.5},
		ResizeMode:   ResizeKeep,
		ThemeFade:    0.5,
		Decor: DecorConfig{
			Base: true, Orbs: true, Mesh: true, Grid: true, Noise: true, Vignette: true,
			MeshOpacity:   PerTheme{Dark: 0.2, Light: 0.3},
			GridCell:      80,
			GridOpacity:   PerTheme{Dark: 0.1 * 0.03, Light: 0.08 * 0.02},
			NoiseOpacity:  PerTheme{Dark: 0.02, Light: 0.015},
			VignetteAlpha: PerTheme{Dark: 0.3, Light: 0.4},
		},
	}
}

var presets = map[string]func() Config{
	"neural":        NeuralConfig,
	"constellation": ConstellationConfig,
}

// Presets returns the sorted preset names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName returns the named preset.
func PresetByName(name string) (Config, bool) {
	fn, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return fn(), true
}

// ParseConfig decodes YAML over a preset. The preset is chosen by the
// document's "preset" key and defaults to "neural"; fields present in the
// document override the preset's values.
func ParseConfig(data []byte) (Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	name := head.Preset
	if name == "" {
		name = "neural"
	}
	cfg, ok := PresetByName(name)
	if !ok {
		return Config{}, fmt.Errorf("parse config: unknown preset %q", name)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// EncodeConfig renders cfg as YAML.
func EncodeConfig(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Validate reports the first out-of-range value in c.
func (c Config) Validate() error {
	switch {
	case c.Look != LookNeural && c.Look != LookConstellation:
		return fmt.Errorf("look %q is not %q or %q", c.Look, LookNeural, LookConstellation)
	case c.Points < 0:
		return fmt.Errorf("points must be >= 0, got %d", c.Points)
	case c.MaxSpeed < 0:
		return fmt.Errorf("max_speed must be >= 0, got %v", c.MaxSpeed)
	case c.Radius.Min <= 0 || c.Radius.Max < c.Radius.Min:
		return fmt.Errorf("radius must satisfy 0 < min <= max, got %+v", c.Radius)
	case c.LinkDistance <= 0:
		return fmt.Errorf("link_distance must be > 0, got %v", c.LinkDistance)
	case c.LineOpacity < 0 || c.LineOpacity > 1:
		return fmt.Errorf("line_opacity must be in [0, 1], got %v", c.LineOpacity)
	case c.Pulse && c.PulseAmplitude >= c.Radius.Min:
		return fmt.Errorf("pulse_amplitude %v must be below radius.min %v", c.PulseAmplitude, c.Radius.Min)
	case c.SpawnChance < 0 || c.SpawnChance > 1:
		return fmt.Errorf("spawn_chance must be in [0, 1], got %v", c.SpawnChance)
	case c.MaxPackets < 0:
		return fmt.Errorf("max_packets must be >= 0, got %d", c.MaxPackets)
	case c.Packets && (c.PacketSpeed.Min <= 0 || c.PacketSpeed.Max < c.PacketSpeed.Min):
		return fmt.Errorf("packet_speed must satisfy 0 < min <= max, got %+v", c.PacketSpeed)
	case c.ResizeMode != ResizeKeep && c.ResizeMode != ResizeRescale:
		return fmt.Errorf("resize_mode %q is not %q or %q", c.ResizeMode, ResizeKeep, ResizeRescale)
	case c.ThemeFade < 0:
		return fmt.Errorf("theme_fade must be >= 0, got %v", c.ThemeFade)
	case c.Decor.Grid && c.Decor.GridCell <= 0:
		return fmt.Errorf("decor.grid_cell must be > 0, got %v", c.Decor.GridCell)
	}
	for name, p := range map[string]PerTheme{
		"layer_opacity":        c.LayerOpacity,
		"decor.mesh_opacity":   c.Decor.MeshOpacity,
		"decor.grid_opacity":   c.Decor.GridOpacity,
		"decor.noise_opacity":  c.Decor.NoiseOpacity,
		"decor.vignette_alpha": c.Decor.VignetteAlpha,
	} {
		if !p.inUnit() {
			return fmt.Errorf("%s must be in [0, 1], got %+v", name, p)
		}
	}
	return nil
}
