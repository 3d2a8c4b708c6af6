package xcsf

// CondOutputPred reuses a condition's evaluator as the computed prediction
// (tree-GP and graph conditions). There is nothing to fit: the structure
// adapts through the GA, so Update is a no-op.
type CondOutputPred struct {
	Pres []float64

	src condOutput
}

func newCondOutputPred(s *XCSF, src condOutput) *CondOutputPred {
	return &CondOutputPred{
		Pres: make([]float64, s.NumY),
		src:  src,
	}
}

// Bind points the predictor at the condition it reads from. The engine
// rebinds after classifier copies and after deserialisation.
func (p *CondOutputPred) Bind(c Condition) {
	if src, ok := c.(condOutput); ok {
		p.src = src
	}
}

func (p *CondOutputPred) Compute(s *XCSF, x []float64) []float64 {
	for i := range p.Pres {
		p.Pres[i] = p.src.CondOutput(s, x, i)
	}
	return p.Pres
}

func (p *CondOutputPred) Pre(i int) float64 { return p.Pres[i] }

func (p *CondOutputPred) Update(s *XCSF, y, x []float64) error { return nil }

// Copy duplicates the cached outputs only; the caller must Bind the copy to
// the copied condition.
func (p *CondOutputPred) Copy() Predictor {
	return &CondOutputPred{
		Pres: append([]float64(nil), p.Pres...),
		src:  p.src,
	}
}

func (p *CondOutputPred) String() string { return "cond-output" }
