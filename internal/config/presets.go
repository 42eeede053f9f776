package config

import "math"

var Presets = map[string]*Config{
	"landau": {
		Grid: GridConfig{Nx: 33, Ny: 1, Nz: 1, Nn: 20, Nm: 1, Np: 1, Ns: 2},
		Physics: PhysicsConfig{
			Lx:   4 * math.Pi,
			Nu:   5.0,
			D:    1.0,
			Dn1:  1e-3,
			TMax: 50,
		},
		Solver: SolverConfig{Timesteps: 300, Dt: 0.01, Tolerance: 1e-6, Integrator: "rk45"},
	},
	"two-stream": {
		Grid: GridConfig{Nx: 33, Ny: 1, Nz: 1, Nn: 24, Nm: 1, Np: 1, Ns: 2},
		Physics: PhysicsConfig{
			Lx:   8 * math.Pi,
			Nu:   5.0,
			D:    1.0,
			Dn1:  1e-3,
			TMax: 40,
			// counter-streaming electron beams, immobile ion background
			Qs:      []float64{-1, -1},
			OmegaCs: []float64{1, 1},
			AlphaS:  []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
			US:      []float64{1.0, 0, 0, -1.0, 0, 0},
		},
		Solver: SolverConfig{Timesteps: 300, Dt: 0.01, Tolerance: 1e-6, Integrator: "rk45"},
	},
	"ion-acoustic": {
		Grid: GridConfig{Nx: 33, Ny: 1, Nz: 1, Nn: 16, Nm: 1, Np: 1, Ns: 2},
		Physics: PhysicsConfig{
			Lx:   10 * math.Pi,
			Nu:   10.0,
			D:    1.0,
			Dn1:  1e-2,
			TMax: 100,
		},
		Solver: SolverConfig{Timesteps: 500, Dt: 0.01, Tolerance: 1e-6, Integrator: "rk45"},
	},
	"quick": {
		Grid: GridConfig{Nx: 17, Ny: 1, Nz: 1, Nn: 8, Nm: 1, Np: 1, Ns: 2},
		Physics: PhysicsConfig{
			Lx:   4 * math.Pi,
			Nu:   5.0,
			D:    1.0,
			Dn1:  1e-2,
			TMax: 10,
		},
		Solver: SolverConfig{Timesteps: 100, Dt: 0.01, Tolerance: 1e-5, Integrator: "rk45"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
