package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/jelly-go/common"
	"github.com/Carmen-Shannon/jelly-go/engine"
)

func writePreset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing preset: %v", err)
	}
	return path
}

func TestLoadFullPreset(t *testing.T) {
	path := writePreset(t, `
grid:
  cols: 32
  rows: 20
wave:
  amplitude: 7.5
  frequency: 0.03
  damping: 0.015
max_boost: 8.0
settle_fps: 60.0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Grid.Cols != 32 || cfg.Grid.Rows != 20 {
		t.Errorf("grid = %dx%d, want 32x20", cfg.Grid.Cols, cfg.Grid.Rows)
	}
	if cfg.Wave.Amplitude != 7.5 || cfg.Wave.Frequency != 0.03 || cfg.Wave.Damping != 0.015 {
		t.Errorf("wave = %+v, want 7.5/0.03/0.015", cfg.Wave)
	}
	if cfg.MaxBoost != 8.0 {
		t.Errorf("MaxBoost = %v, want 8.0", cfg.MaxBoost)
	}
	if cfg.SettleFPS != 60.0 {
		t.Errorf("SettleFPS = %v, want 60.0", cfg.SettleFPS)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writePreset(t, `
wave:
  amplitude: 9.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if cfg.Grid != def.Grid {
		t.Errorf("grid = %+v, want defaults %+v", cfg.Grid, def.Grid)
	}
	if cfg.Wave.Amplitude != 9.5 {
		t.Errorf("amplitude = %v, want the preset's 9.5", cfg.Wave.Amplitude)
	}
	if cfg.Wave.Frequency != def.Wave.Frequency || cfg.Wave.Damping != def.Wave.Damping {
		t.Errorf("wave = %+v, want default frequency/damping %+v", cfg.Wave, def.Wave)
	}
	if cfg.MaxBoost != 0 || cfg.SettleFPS != 0 {
		t.Errorf("boost/settle = %v/%v, want 0/0", cfg.MaxBoost, cfg.SettleFPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writePreset(t, "grid: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"zero cols", "grid:\n  cols: 0\n  rows: 12\n"},
		{"negative rows", "grid:\n  cols: 20\n  rows: -3\n"},
		{"negative damping", "wave:\n  damping: -0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePreset(t, tt.contents)
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %s", tt.name)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() fails validation: %v", err)
	}
	if cfg.Grid.Cols != 20 || cfg.Grid.Rows != 12 {
		t.Errorf("default grid = %dx%d, want 20x12", cfg.Grid.Cols, cfg.Grid.Rows)
	}
	if cfg.Wave.Amplitude != 6 || cfg.Wave.Frequency != 0.02 || cfg.Wave.Damping != 0.02 {
		t.Errorf("default wave = %+v, want 6/0.02/0.02", cfg.Wave)
	}
}

func TestEngineOptionsBridge(t *testing.T) {
	cfg := Default()
	cfg.Grid = GridConfig{Cols: 4, Rows: 3}

	eng := engine.NewEngine(cfg.EngineOptions()...)
	out, err := eng.FrameUpdate(engine.FrameInput{
		Surface:  1,
		Size:     common.Vec2{X: 200, Y: 100},
		Position: common.Vec2{},
		Now:      0.1,
	})
	if err != nil {
		t.Fatalf("FrameUpdate failed: %v", err)
	}

	if want := (4 + 1) * (3 + 1); len(out.Mesh.Vertices) != want {
		t.Errorf("len(Vertices) = %d, want %d from the preset grid", len(out.Mesh.Vertices), want)
	}
}
