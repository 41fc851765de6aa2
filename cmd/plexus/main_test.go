package main

import (
	"testing"

	"github.com/phanxgames/plexus"
)

func TestCollectStats(t *testing.T) {
	cfg := plexus.NeuralConfig()
	cfg.SpawnChance = 0.01
	s := collectStats(cfg, 640, 480, 120, plexus.WithSeed(5))
	if len(s.connections) != 120 || len(s.packets) != 120 {
		t.Fatalf("series lengths = %d/%d, want 120", len(s.connections), len(s.packets))
	}
	if maxOf(s.connections) == 0 {
		t.Error("expected some connections")
	}
	if maxOf(s.packets) > float64(cfg.MaxPackets) {
		t.Errorf("packets %v exceed cap %d", maxOf(s.packets), cfg.MaxPackets)
	}
}

func TestCollectStatsZeroSize(t *testing.T) {
	s := collectStats(plexus.NeuralConfig(), 0, 0, 5)
	if maxOf(s.connections) != 0 || maxOf(s.packets) != 0 {
		t.Error("zero-size run should record nothing")
	}
}

func TestMeanAndMax(t *testing.T) {
	xs := []float64{1, 2, 3, 6}
	if mean(xs) != 3 {
		t.Errorf("mean = %v, want 3", mean(xs))
	}
	if maxOf(xs) != 6 {
		t.Errorf("maxOf = %v, want 6", maxOf(xs))
	}
	if mean(nil) != 0 || maxOf(nil) != 0 {
		t.Error("empty series should give zero")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	presetName, configFile = "constellation", ""
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Look != plexus.LookConstellation {
		t.Errorf("look = %q", cfg.Look)
	}

	presetName = "nebula"
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown preset")
	}
	presetName = "neural"
}

func TestResolveThemeExplicit(t *testing.T) {
	theme, ch, stop, err := resolveTheme("light")
	defer stop()
	if err != nil || theme != plexus.ThemeLight || ch != nil {
		t.Errorf("resolveTheme(light) = %q, %v, %v", theme, ch, err)
	}
	if _, _, _, err := resolveTheme("sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
