package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwinther/hfvm/internal/plasma"
)

const (
	DefaultNx        = 33
	DefaultNn        = 20
	DefaultNs        = 2
	DefaultTimesteps = 200
	DefaultDt        = 0.01
)

// Config is the YAML-facing run description: truncation, physics
// overrides, and solver settings. Zero-valued physics fields fall back
// to the plasma defaults.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Physics PhysicsConfig `yaml:"physics"`
	Solver  SolverConfig  `yaml:"solver"`
}

type GridConfig struct {
	Nx int `yaml:"nx"`
	Ny int `yaml:"ny"`
	Nz int `yaml:"nz"`
	Nn int `yaml:"nn"`
	Nm int `yaml:"nm"`
	Np int `yaml:"np"`
	Ns int `yaml:"ns"`
}

type PhysicsConfig struct {
	Lx   float64 `yaml:"lx"`
	Ly   float64 `yaml:"ly"`
	Lz   float64 `yaml:"lz"`
	Nu   float64 `yaml:"nu"`
	D    float64 `yaml:"d"`
	Dn1  float64 `yaml:"dn1"`
	TMax float64 `yaml:"t_max"`

	Qs      []float64 `yaml:"qs"`
	OmegaCs []float64 `yaml:"omega_cs"`
	AlphaS  []float64 `yaml:"alpha_s"`
	US      []float64 `yaml:"u_s"`
}

type SolverConfig struct {
	Timesteps  int     `yaml:"timesteps"`
	Dt         float64 `yaml:"dt"`
	Tolerance  float64 `yaml:"tolerance"`
	MaxSteps   int     `yaml:"max_steps"`
	Integrator string  `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Nx: DefaultNx, Ny: 1, Nz: 1,
			Nn: DefaultNn, Nm: 1, Np: 1,
			Ns: DefaultNs,
		},
		Solver: SolverConfig{
			Timesteps:  DefaultTimesteps,
			Dt:         DefaultDt,
			Integrator: "rk45",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Shape converts the grid section to the solver truncation.
func (c *Config) Shape() plasma.Shape {
	return plasma.Shape{
		Nx: c.Grid.Nx, Ny: c.Grid.Ny, Nz: c.Grid.Nz,
		Nn: c.Grid.Nn, Nm: c.Grid.Nm, Np: c.Grid.Np,
		Ns: c.Grid.Ns,
	}
}

// Parameters builds plasma parameters from the defaults for the
// configured shape, with every non-zero physics field applied on top.
// The result is not finalized; callers may override further before use.
func (c *Config) Parameters() *plasma.Parameters {
	par := plasma.Default(c.Shape())

	ph := c.Physics
	if ph.Lx > 0 {
		par.Lx = ph.Lx
	}
	if ph.Ly > 0 {
		par.Ly = ph.Ly
	}
	if ph.Lz > 0 {
		par.Lz = ph.Lz
	}
	if ph.Nu != 0 {
		par.Nu = ph.Nu
	}
	if ph.D != 0 {
		par.D = ph.D
	}
	if ph.Dn1 != 0 {
		par.Dn1 = ph.Dn1
	}
	if ph.TMax > 0 {
		par.TMax = ph.TMax
	}
	if len(ph.Qs) > 0 {
		par.Qs = ph.Qs
	}
	if len(ph.OmegaCs) > 0 {
		par.OmegaCs = ph.OmegaCs
	}
	if len(ph.AlphaS) > 0 {
		par.AlphaS = ph.AlphaS
	}
	if len(ph.US) > 0 {
		par.US = ph.US
	}
	if c.Solver.Tolerance > 0 {
		par.OdeTolerance = c.Solver.Tolerance
	}
	return par
}

// RunOptions converts the solver section. Integrator selection is left
// to the caller.
func (c *Config) RunOptions() plasma.RunOptions {
	opts := plasma.RunOptions{
		Timesteps: c.Solver.Timesteps,
		Dt:        c.Solver.Dt,
		MaxSteps:  c.Solver.MaxSteps,
	}
	if opts.Timesteps == 0 {
		opts.Timesteps = DefaultTimesteps
	}
	if opts.Dt == 0 {
		opts.Dt = DefaultDt
	}
	return opts
}
