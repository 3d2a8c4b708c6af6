package xcsf

import (
	"fmt"
	"strings"
)

// ConstantPred predicts a single scalar per output variable, blended toward
// the target at rate BETA.
type ConstantPred struct {
	Weights []float64
	Pres    []float64
}

func newConstantPred(s *XCSF) *ConstantPred {
	return &ConstantPred{
		Weights: make([]float64, s.NumY),
		Pres:    make([]float64, s.NumY),
	}
}

func (p *ConstantPred) Compute(s *XCSF, x []float64) []float64 {
	copy(p.Pres, p.Weights)
	return p.Pres
}

func (p *ConstantPred) Pre(i int) float64 { return p.Pres[i] }

func (p *ConstantPred) Update(s *XCSF, y, x []float64) error {
	for v := range p.Weights {
		p.Weights[v] += s.Beta * (y[v] - p.Weights[v])
	}
	return nil
}

func (p *ConstantPred) Copy() Predictor {
	return &ConstantPred{
		Weights: append([]float64(nil), p.Weights...),
		Pres:    append([]float64(nil), p.Pres...),
	}
}

func (p *ConstantPred) String() string {
	var b strings.Builder
	b.WriteString("constant:")
	for _, w := range p.Weights {
		fmt.Fprintf(&b, " %f", w)
	}
	return b.String()
}
