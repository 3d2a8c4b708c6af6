package xcsf

import "math"

// Self-adaptive mutation: each classifier may carry NUM_SAM rates that are
// themselves perturbed on reproduction. The first rate stands in for
// P_MUTATION, the second (when present) for S_MUTATION.

// samInit draws the initial rate vector, or nil when SAM is disabled.
func samInit(s *XCSF) []float64 {
	if s.NumSam <= 0 {
		return nil
	}
	mu := make([]float64, s.NumSam)
	for i := range mu {
		mu[i] = s.rng.Float64()
	}
	return mu
}

// samAdapt applies the log-normal perturbation, clamping into [muEPS_0, 1].
func samAdapt(s *XCSF, mu []float64) {
	for i := range mu {
		mu[i] *= math.Exp(s.rng.NormFloat64())
		if mu[i] < s.MuEps0 {
			mu[i] = s.MuEps0
		} else if mu[i] > 1.0 {
			mu[i] = 1.0
		}
	}
}
