package xcsf

// mutRates carries the effective mutation parameters for one call; these are
// the global P_MUTATION/S_MUTATION unless the classifier's self-adaptive
// rates override them.
type mutRates struct {
	p    float64
	step float64
}

// Condition is the capability set every condition variant implements. The
// engine manipulates conditions only through this interface; the concrete
// representation is fixed when the classifier is born.
type Condition interface {
	// Rand re-initialises the condition at random.
	Rand(s *XCSF)
	// Cover re-initialises the condition so that it matches x.
	Cover(s *XCSF, x []float64)
	// Match reports whether the condition matches x and caches the outcome.
	Match(s *XCSF, x []float64) bool
	// MatchState returns the cached outcome of the last Match.
	MatchState() bool
	// Mutate perturbs the condition in place, reporting whether it changed.
	Mutate(s *XCSF, r mutRates) bool
	// Crossover mixes the condition with other in place, reporting whether
	// either changed. Implementations gate on P_CROSSOVER themselves.
	Crossover(s *XCSF, other Condition) bool
	// General reports whether the condition is more general than other:
	// every input other matches, the receiver matches too. Variants with no
	// meaningful generality relation return false, disabling subsumption.
	General(other Condition) bool
	// Copy returns a deep copy.
	Copy() Condition

	String() string
}

// newCondition builds a condition of the configured variant. Rule types
// (CondRuleDGP) also serve as the classifier's predictor; the caller wires
// that up.
func newCondition(s *XCSF) Condition {
	switch s.CondType {
	case CondDummy:
		return newDummyCond()
	case CondEllipsoid:
		return newEllipsoidCond(s)
	case CondNeural:
		return newNeuralCond(s)
	case CondGP:
		return newGPCond(s)
	case CondDGP:
		return newDGPCond(s)
	case CondRuleDGP:
		return newRuleDGP(s)
	default:
		return newRectCond(s)
	}
}
