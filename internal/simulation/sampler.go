package simulation

import (
	"math/rand"

	"github.com/cadentwebb/financial-simulator/internal/marketdata"
)

// Sampler produces the perturbed monthly returns for one run: the window's
// historical value plus additive noise drawn from N(0, sigma) with the asset's
// configured standard deviation.
//
// Noise draws are independent across assets and months; no cross-asset
// correlation is modeled beyond what the shared historical window encodes.
// This is an explicit simplification surfaced to users.
type Sampler struct {
	noise map[string]float64
}

// NewSampler creates a sampler with per-asset noise standard deviations.
// Assets without an entry get zero noise (exact historical returns).
func NewSampler(noise map[string]float64) *Sampler {
	return &Sampler{noise: noise}
}

// Sample returns one monthly return series per asset, aligned with the given
// asset order. It is a pure function of rng: the same seed sequence yields the
// same output, and assets are consumed in the caller's (sorted) order so that
// draws are reproducible.
func (s *Sampler) Sample(w *marketdata.Window, assets []string, rng *rand.Rand) [][]float64 {
	out := make([][]float64, len(assets))
	for i, id := range assets {
		hist := w.Returns[id]
		sigma := s.noise[id]
		returns := make([]float64, len(hist))
		if sigma == 0 {
			copy(returns, hist)
		} else {
			for m, r := range hist {
				returns[m] = r + rng.NormFloat64()*sigma
			}
		}
		out[i] = returns
	}
	return out
}
