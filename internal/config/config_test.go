package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Nx != DefaultNx {
		t.Errorf("expected nx %d, got %d", DefaultNx, cfg.Grid.Nx)
	}
	if cfg.Grid.Ns != DefaultNs {
		t.Errorf("expected ns %d, got %d", DefaultNs, cfg.Grid.Ns)
	}
	if cfg.Solver.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Solver.Timesteps <= 0 {
		t.Error("timesteps should be positive")
	}
}

func TestParameters_Defaults(t *testing.T) {
	par := DefaultConfig().Parameters()
	if err := par.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if par.Shape.Nx != DefaultNx || par.Shape.Nn != DefaultNn {
		t.Errorf("shape not carried over: %+v", par.Shape)
	}
	if par.Lx != 4*math.Pi {
		t.Errorf("expected default lx 4pi, got %f", par.Lx)
	}
}

func TestParameters_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.Nu = 12.0
	cfg.Physics.Dn1 = 0.05
	cfg.Physics.TMax = 7.5
	cfg.Solver.Tolerance = 1e-9

	par := cfg.Parameters()
	if par.Nu != 12.0 {
		t.Errorf("expected nu 12, got %f", par.Nu)
	}
	if par.Dn1 != 0.05 {
		t.Errorf("expected dn1 0.05, got %f", par.Dn1)
	}
	if par.TMax != 7.5 {
		t.Errorf("expected t_max 7.5, got %f", par.TMax)
	}
	if par.OdeTolerance != 1e-9 {
		t.Errorf("expected tolerance 1e-9, got %g", par.OdeTolerance)
	}
}

func TestRunOptions_Defaults(t *testing.T) {
	var cfg Config
	opts := cfg.RunOptions()
	if opts.Timesteps != DefaultTimesteps {
		t.Errorf("expected %d timesteps, got %d", DefaultTimesteps, opts.Timesteps)
	}
	if opts.Dt != DefaultDt {
		t.Errorf("expected dt %f, got %f", DefaultDt, opts.Dt)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Grid.Nn = 12
	cfg.Physics.Nu = 3.0
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Grid.Nn != 12 {
		t.Errorf("expected nn 12, got %d", loaded.Grid.Nn)
	}
	if loaded.Physics.Nu != 3.0 {
		t.Errorf("expected nu 3, got %f", loaded.Physics.Nu)
	}
}

func TestLoad_PartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("physics:\n  nu: 9.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Nu != 9.0 {
		t.Errorf("expected nu 9, got %f", cfg.Physics.Nu)
	}
	if cfg.Grid.Nx != DefaultNx {
		t.Errorf("unset grid should keep default nx, got %d", cfg.Grid.Nx)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("landau")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Grid.Nn != 20 {
		t.Errorf("expected nn 20, got %d", cfg.Grid.Nn)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestPresets_Finalize(t *testing.T) {
	for name, cfg := range Presets {
		par := cfg.Parameters()
		if err := par.Finalize(); err != nil {
			t.Errorf("preset %s does not finalize: %v", name, err)
		}
	}
}
