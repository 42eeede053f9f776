package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mwinther/hfvm/internal/diagnostics"
	"github.com/mwinther/hfvm/internal/plasma"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string       `json:"id"`
	Preset      string       `json:"preset,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
	Shape       plasma.Shape `json:"shape"`
	Nu          float64      `json:"nu"`
	D           float64      `json:"d"`
	Dn1         float64      `json:"dn1"`
	TMax        float64      `json:"t_max"`
	Tolerance   float64      `json:"tolerance"`
	Integrator  string       `json:"integrator"`
	Steps       int          `json:"steps"`
	EnergyDrift float64      `json:"energy_drift"`
}

// Save writes one run as a directory: metadata.json plus an
// energies.csv with the per-sample energy traces.
func (s *Store) Save(preset, integrator string, out *plasma.Output, series *diagnostics.Series) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Preset:      preset,
		Timestamp:   time.Now(),
		Shape:       out.Shape,
		Nu:          out.Params.Nu,
		D:           out.Params.D,
		Dn1:         out.Params.Dn1,
		TMax:        out.Params.TMax,
		Tolerance:   out.Params.OdeTolerance,
		Integrator:  integrator,
		Steps:       out.Steps,
		EnergyDrift: diagnostics.RelativeDrift(series.Total),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "energies.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "em", "kinetic", "total"}
	for sp := range series.Species {
		header = append(header, fmt.Sprintf("kinetic_s%d", sp))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range series.Time {
		row := []string{
			strconv.FormatFloat(series.Time[i], 'g', 10, 64),
			strconv.FormatFloat(series.EM[i], 'g', 10, 64),
			strconv.FormatFloat(series.Kinetic[i], 'g', 10, 64),
			strconv.FormatFloat(series.Total[i], 'g', 10, 64),
		}
		for sp := range series.Species {
			row = append(row, strconv.FormatFloat(series.Species[sp][i], 'g', 10, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the energy traces back. Per-species columns beyond
// the fixed four are reassembled in order.
func (s *Store) LoadSeries(runID string) (*diagnostics.Series, error) {
	csvPath := filepath.Join(s.baseDir, runID, "energies.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &diagnostics.Series{}
	if len(records) < 2 {
		return series, nil
	}

	nSpecies := len(records[0]) - 4
	series.Species = make([][]float64, nSpecies)

	for _, record := range records[1:] {
		if len(record) != len(records[0]) {
			continue
		}
		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		series.Time = append(series.Time, vals[0])
		series.EM = append(series.EM, vals[1])
		series.Kinetic = append(series.Kinetic, vals[2])
		series.Total = append(series.Total, vals[3])
		for sp := 0; sp < nSpecies; sp++ {
			series.Species[sp] = append(series.Species[sp], vals[4+sp])
		}
	}

	return series, nil
}
