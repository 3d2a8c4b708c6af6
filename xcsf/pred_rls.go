package xcsf

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// rlsMinDivisor guards the gain divisor; anything at or below it would blow
// up the gain vector.
const rlsMinDivisor = 1e-12

// RLSPred computes a polynomial prediction and fits the weights with
// recursive least squares. Each output variable carries its own weight
// vector and gain matrix; matrices are sized by the feature length and are
// held per classifier, never shared.
type RLSPred struct {
	Quadratic bool
	Weights   [][]float64 // [num_y_vars][featureLen]
	Pres      []float64

	gain []*mat.SymDense // one L x L gain matrix per output
	phi  []float64
	u    []float64 // gain-vector scratch
}

func newRLSPred(s *XCSF, quadratic bool) *RLSPred {
	l := featureLen(s.NumX, quadratic)
	p := &RLSPred{
		Quadratic: quadratic,
		Weights:   make([][]float64, s.NumY),
		Pres:      make([]float64, s.NumY),
		gain:      make([]*mat.SymDense, s.NumY),
	}
	for v := range p.Weights {
		p.Weights[v] = make([]float64, l)
		p.Weights[v][0] = s.X0
		p.gain[v] = scaledIdentity(l, s.RLSScaleFactor)
	}
	return p
}

func scaledIdentity(n int, scale float64) *mat.SymDense {
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, scale)
	}
	return m
}

func (p *RLSPred) Compute(s *XCSF, x []float64) []float64 {
	p.scratch()
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

func (p *RLSPred) scratch() {
	if p.phi == nil {
		l := len(p.Weights[0])
		p.phi = make([]float64, l)
		p.u = make([]float64, l)
	}
}

func (p *RLSPred) Pre(i int) float64 { return p.Pres[i] }

// Update performs one recursive least squares step per output variable using
// the prediction cached by the preceding Compute:
//
//	u = P phi
//	k = u / (lambda + phi' u)
//	w += (y - pre) k
//	P = (P - u u' / (lambda + phi' u)) / lambda
//
// Storing P as a symmetric matrix keeps it symmetric by construction.
func (p *RLSPred) Update(s *XCSF, y, x []float64) error {
	p.scratch()
	features(p.phi, x, s.X0, p.Quadratic)
	l := len(p.phi)
	phi := mat.NewVecDense(l, p.phi)
	u := mat.NewVecDense(l, p.u)

	for v, w := range p.Weights {
		u.MulVec(p.gain[v], phi)
		divisor := s.RLSLambda + mat.Dot(phi, u)
		if divisor <= rlsMinDivisor || math.IsNaN(divisor) {
			return errNumeric
		}
		errv := y[v] - p.Pres[v]
		if math.IsNaN(errv) || math.IsInf(errv, 0) {
			return errNumeric
		}
		for i := range w {
			w[i] += errv * p.u[i] / divisor
		}
		p.gain[v].SymRankOne(p.gain[v], -1.0/divisor, u)
		if s.RLSLambda != 1.0 {
			p.gain[v].ScaleSym(1.0/s.RLSLambda, p.gain[v])
		}
	}
	return nil
}

func (p *RLSPred) Copy() Predictor {
	c := &RLSPred{
		Quadratic: p.Quadratic,
		Weights:   make([][]float64, len(p.Weights)),
		Pres:      append([]float64(nil), p.Pres...),
		gain:      make([]*mat.SymDense, len(p.gain)),
	}
	for v := range p.Weights {
		c.Weights[v] = append([]float64(nil), p.Weights[v]...)
		c.gain[v] = mat.NewSymDense(p.gain[v].SymmetricDim(), nil)
		c.gain[v].CopySym(p.gain[v])
	}
	return c
}

// rlsWire is the gob form of RLSPred; the gain matrices travel as raw data.
type rlsWire struct {
	Quadratic bool
	Weights   [][]float64
	Pres      []float64
	Gain      [][]float64
}

func (p *RLSPred) GobEncode() ([]byte, error) {
	w := rlsWire{
		Quadratic: p.Quadratic,
		Weights:   p.Weights,
		Pres:      p.Pres,
		Gain:      make([][]float64, len(p.gain)),
	}
	for v, g := range p.gain {
		w.Gain[v] = append([]float64(nil), g.RawSymmetric().Data...)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *RLSPred) GobDecode(data []byte) error {
	var w rlsWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	p.Quadratic = w.Quadratic
	p.Weights = w.Weights
	p.Pres = w.Pres
	p.gain = make([]*mat.SymDense, len(w.Gain))
	for v, raw := range w.Gain {
		p.gain[v] = mat.NewSymDense(len(p.Weights[v]), raw)
	}
	return nil
}

func (p *RLSPred) String() string {
	var b strings.Builder
	b.WriteString("weights:")
	for _, w := range p.Weights {
		for _, wi := range w {
			fmt.Fprintf(&b, " %f", wi)
		}
	}
	return b.String()
}
