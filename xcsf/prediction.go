package xcsf

// Predictor is the capability set every computed-prediction variant
// implements. Compute caches its result; Update consumes that cache, so
// callers must Compute for the current input before calling Update.
type Predictor interface {
	// Compute evaluates the prediction for x, caching and returning it. The
	// returned slice is owned by the predictor.
	Compute(s *XCSF, x []float64) []float64
	// Pre returns output variable i from the last Compute.
	Pre(i int) float64
	// Update fits the prediction toward target y for input x. A returned
	// error marks a numeric fault; the engine skips the update and raises
	// the classifier's deletion vote.
	Update(s *XCSF, y, x []float64) error
	// Copy returns a deep copy.
	Copy() Predictor

	String() string
}

// condOutput is implemented by conditions whose evaluator doubles as a
// computed prediction (tree-GP and graph variants).
type condOutput interface {
	Condition
	// CondOutput returns output variable i of the condition's evaluator for
	// input x, evaluating it afresh.
	CondOutput(s *XCSF, x []float64, i int) float64
}

// newPredictor builds a predictor of the configured variant for a classifier
// whose condition is cond.
func newPredictor(s *XCSF, cond Condition) Predictor {
	switch s.PredType {
	case PredNLMSQuadratic:
		return newNLMSPred(s, true)
	case PredRLSLinear:
		return newRLSPred(s, false)
	case PredRLSQuadratic:
		return newRLSPred(s, true)
	case PredConstant:
		return newConstantPred(s)
	case PredCondOutput:
		if src, ok := cond.(condOutput); ok {
			return newCondOutputPred(s, src)
		}
		// geometric conditions have no evaluator to reuse
		return newConstantPred(s)
	default:
		return newNLMSPred(s, false)
	}
}
