package xcsf

import (
	"fmt"
	"math"
	"strings"
)

// NLMSPred computes a polynomial prediction from a weight vector per output
// variable and adapts the weights with the normalised least mean square
// update (the modified Delta rule, or Widrow-Hoff update).
type NLMSPred struct {
	Quadratic bool
	Weights   [][]float64 // [num_y_vars][featureLen]
	Pres      []float64

	phi []float64 // feature scratch
}

func newNLMSPred(s *XCSF, quadratic bool) *NLMSPred {
	l := featureLen(s.NumX, quadratic)
	p := &NLMSPred{
		Quadratic: quadratic,
		Weights:   make([][]float64, s.NumY),
		Pres:      make([]float64, s.NumY),
	}
	for v := range p.Weights {
		p.Weights[v] = make([]float64, l)
		p.Weights[v][0] = s.X0
	}
	return p
}

func (p *NLMSPred) Compute(s *XCSF, x []float64) []float64 {
	if p.phi == nil {
		p.phi = make([]float64, len(p.Weights[0]))
	}
	features(p.phi, x, s.X0, p.Quadratic)
	for v, w := range p.Weights {
		pre := 0.0
		for k, f := range p.phi {
			pre += w[k] * f
		}
		p.Pres[v] = pre
	}
	return p.Pres
}

// Update applies the normalised gradient step using the prediction cached by
// the preceding Compute. The norm is at least X0^2, so no divisor guard is
// needed; a non-finite target or weight still trips the numeric fault path.
func (p *NLMSPred) Update(s *XCSF, y, x []float64) error {
	norm := s.X0 * s.X0
	for _, xi := range x {
		norm += xi * xi
	}
	if p.phi == nil {
		p.phi = make([]float64, len(p.Weights[0]))
	}
	features(p.phi, x, s.X0, p.Quadratic)
	for v, w := range p.Weights {
		correction := s.Eta * (y[v] - p.Pres[v]) / norm
		if math.IsNaN(correction) || math.IsInf(correction, 0) {
			return errNumeric
		}
		for k, f := range p.phi {
			w[k] += correction * f
		}
	}
	return nil
}

func (p *NLMSPred) Pre(i int) float64 { return p.Pres[i] }

func (p *NLMSPred) Copy() Predictor {
	c := &NLMSPred{
		Quadratic: p.Quadratic,
		Weights:   make([][]float64, len(p.Weights)),
		Pres:      append([]float64(nil), p.Pres...),
	}
	for v := range p.Weights {
		c.Weights[v] = append([]float64(nil), p.Weights[v]...)
	}
	return c
}

func (p *NLMSPred) String() string {
	var b strings.Builder
	b.WriteString("weights:")
	for _, w := range p.Weights {
		for _, wi := range w {
			fmt.Fprintf(&b, " %f", wi)
		}
	}
	return b.String()
}
