package diagnostics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum is the one-sided amplitude spectrum of a uniformly
// sampled trace. The mean is removed first so the zero bin does not
// swamp the oscillating part.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	detrended := make([]float64, len(data))
	for i, v := range data {
		detrended[i] = v - mean
	}

	spec := fft.FFTReal(detrended)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-zero spectral peak of a
// trace sampled at the given times, in cycles per unit time. It returns
// 0 when no peak stands out of a flat spectrum.
func DominantFrequency(time, data []float64) float64 {
	if len(time) < 2 || len(time) != len(data) {
		return 0
	}
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx == 0 || ps[maxIdx] == 0 {
		return 0
	}

	span := time[len(time)-1] - time[0]
	if span <= 0 {
		return 0
	}
	return float64(maxIdx) / span
}
