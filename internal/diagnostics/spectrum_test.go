package diagnostics

import (
	"math"
	"testing"
)

func TestPowerSpectrum_SingleTone(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = 3.0 + math.Sin(2*math.Pi*8*float64(i)/float64(n))
	}

	ps := PowerSpectrum(data)
	maxIdx := 0
	for i := range ps {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 8 {
		t.Errorf("expected peak at bin 8, got %d", maxIdx)
	}
	if ps[0] > ps[8]*1e-6 {
		t.Errorf("mean not removed: dc bin %g vs peak %g", ps[0], ps[8])
	}
}

func TestDominantFrequency(t *testing.T) {
	n := 512
	time := make([]float64, n)
	data := make([]float64, n)
	for i := range data {
		time[i] = float64(i) * 0.1
		data[i] = math.Cos(2 * math.Pi * 0.5 * time[i])
	}

	freq := DominantFrequency(time, data)
	if math.Abs(freq-0.5) > 0.05 {
		t.Errorf("expected frequency near 0.5, got %g", freq)
	}
}

func TestDominantFrequency_Flat(t *testing.T) {
	time := []float64{0, 1, 2, 3}
	data := []float64{2, 2, 2, 2}
	if f := DominantFrequency(time, data); f != 0 {
		t.Errorf("expected 0 for constant trace, got %g", f)
	}
}
