package xcsf

import (
	"fmt"
	"strconv"
	"strings"

	ini "gopkg.in/ini.v1"
)

// CondType selects the classifier condition representation.
type CondType int

const (
	CondDummy CondType = iota
	CondRectangle
	CondEllipsoid
	CondNeural
	CondGP
	CondDGP
	CondRuleDGP
)

// PredType selects the computed prediction. The reference configuration only
// distinguished linear from quadratic; here the code enumerates the full
// algorithm surface, with the polynomial order folded in.
type PredType int

const (
	PredNLMSLinear PredType = iota
	PredNLMSQuadratic
	PredRLSLinear
	PredRLSQuadratic
	PredConstant
	PredCondOutput
)

// Params holds every global learning parameter. All fields are read-only
// during a trial; hosts may read and write them freely between calls.
type Params struct {
	PopInit       bool // seed the population with random classifiers
	PopSize       int
	MaxTrials     int
	PerfAvgTrials int
	ThetaMNA      int // minimum match-set size before covering stops

	Alpha       float64
	Beta        float64
	Delta       float64
	Eps0        float64
	Nu          float64
	ErrReduc    float64
	FitReduc    float64
	InitError   float64
	InitFitness float64
	ThetaDel    int

	CondType CondType
	PredType PredType

	PCrossover     float64
	PMutation      float64
	ThetaGA        float64
	ThetaOffspring int

	MuEps0 float64 // lower clamp for self-adaptive rates
	NumSam int     // number of self-adaptive rates per classifier

	MinCon    float64
	MaxCon    float64
	SMutation float64

	NumHiddenNeurons       int
	HiddenNeuronActivation int
	DGPNumNodes            int
	GPNumCons              int
	GPInitDepth            int

	Eta            float64 // XCSF_ETA
	X0             float64 // XCSF_X0
	RLSScaleFactor float64
	RLSLambda      float64

	ThetaSub       int
	GASubsumption  bool
	SetSubsumption bool

	Seed int64
}

// DefaultParams returns the reference defaults.
func DefaultParams() Params {
	return Params{
		PopInit:       false,
		PopSize:       2000,
		MaxTrials:     100000,
		PerfAvgTrials: 1000,
		ThetaMNA:      1,

		Alpha:       0.1,
		Beta:        0.1,
		Delta:       0.1,
		Eps0:        0.01,
		Nu:          5.0,
		ErrReduc:    1.0,
		FitReduc:    0.1,
		InitError:   0.0,
		InitFitness: 0.01,
		ThetaDel:    20,

		CondType: CondRectangle,
		PredType: PredNLMSLinear,

		PCrossover:     0.8,
		PMutation:      0.04,
		ThetaGA:        50.0,
		ThetaOffspring: 2,

		MuEps0: 0.0025,
		NumSam: 0,

		MinCon:    0.0,
		MaxCon:    1.0,
		SMutation: 0.1,

		NumHiddenNeurons:       10,
		HiddenNeuronActivation: 0,
		DGPNumNodes:            10,
		GPNumCons:              100,
		GPInitDepth:            5,

		Eta:            0.1,
		X0:             1.0,
		RLSScaleFactor: 1000.0,
		RLSLambda:      1.0,

		ThetaSub:       20,
		GASubsumption:  false,
		SetSubsumption: false,

		Seed: 1,
	}
}

// condNames and predNames are the symbolic spellings accepted in parameter
// files alongside the numeric codes.
var condNames = map[string]CondType{
	"dummy":     CondDummy,
	"rectangle": CondRectangle,
	"ellipsoid": CondEllipsoid,
	"neural":    CondNeural,
	"gp":        CondGP,
	"dgp":       CondDGP,
	"rule-dgp":  CondRuleDGP,
}

var predNames = map[string]PredType{
	"nlms":           PredNLMSLinear,
	"nlms-linear":    PredNLMSLinear,
	"nlms-quadratic": PredNLMSQuadratic,
	"rls":            PredRLSLinear,
	"rls-linear":     PredRLSLinear,
	"rls-quadratic":  PredRLSQuadratic,
	"constant":       PredConstant,
	"cond-output":    PredCondOutput,
}

// LoadConfig overlays parameters from an INI-style key = value file. Unknown
// keys are rejected so typos surface at startup rather than as silently
// default behaviour.
func (p *Params) LoadConfig(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	for _, key := range f.Section("").Keys() {
		if err := p.setKey(key.Name(), key.Value()); err != nil {
			return err
		}
	}
	return p.Validate()
}

func (p *Params) setKey(name, value string) error {
	bad := func(err error) error {
		return fmt.Errorf("%w: %s = %q: %v", ErrConfig, name, value, err)
	}
	f := func(dst *float64) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return bad(err)
		}
		*dst = v
		return nil
	}
	n := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return bad(err)
		}
		*dst = v
		return nil
	}
	b := func(dst *bool) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return bad(err)
		}
		*dst = v
		return nil
	}

	switch strings.ToUpper(name) {
	case "POP_INIT":
		return b(&p.PopInit)
	case "POP_SIZE":
		return n(&p.PopSize)
	case "MAX_TRIALS":
		return n(&p.MaxTrials)
	case "PERF_AVG_TRIALS":
		return n(&p.PerfAvgTrials)
	case "THETA_MNA":
		return n(&p.ThetaMNA)
	case "ALPHA":
		return f(&p.Alpha)
	case "BETA":
		return f(&p.Beta)
	case "DELTA":
		return f(&p.Delta)
	case "EPS_0":
		return f(&p.Eps0)
	case "NU":
		return f(&p.Nu)
	case "ERR_REDUC":
		return f(&p.ErrReduc)
	case "FIT_REDUC":
		return f(&p.FitReduc)
	case "INIT_ERROR":
		return f(&p.InitError)
	case "INIT_FITNESS":
		return f(&p.InitFitness)
	case "THETA_DEL":
		return n(&p.ThetaDel)
	case "COND_TYPE":
		if t, ok := condNames[strings.ToLower(value)]; ok {
			p.CondType = t
			return nil
		}
		v, err := strconv.Atoi(value)
		if err != nil || v < int(CondDummy) || v > int(CondRuleDGP) {
			return bad(fmt.Errorf("unknown condition type"))
		}
		p.CondType = CondType(v)
		return nil
	case "PRED_TYPE":
		if t, ok := predNames[strings.ToLower(value)]; ok {
			p.PredType = t
			return nil
		}
		v, err := strconv.Atoi(value)
		if err != nil || v < int(PredNLMSLinear) || v > int(PredCondOutput) {
			return bad(fmt.Errorf("unknown prediction type"))
		}
		p.PredType = PredType(v)
		return nil
	case "P_CROSSOVER":
		return f(&p.PCrossover)
	case "P_MUTATION":
		return f(&p.PMutation)
	case "THETA_GA":
		return f(&p.ThetaGA)
	case "THETA_OFFSPRING":
		return n(&p.ThetaOffspring)
	case "MUEPS_0":
		return f(&p.MuEps0)
	case "NUM_SAM":
		return n(&p.NumSam)
	case "MAX_CON":
		return f(&p.MaxCon)
	case "MIN_CON":
		return f(&p.MinCon)
	case "S_MUTATION":
		return f(&p.SMutation)
	case "NUM_HIDDEN_NEURONS":
		return n(&p.NumHiddenNeurons)
	case "HIDDEN_NEURON_ACTIVATION":
		return n(&p.HiddenNeuronActivation)
	case "DGP_NUM_NODES":
		return n(&p.DGPNumNodes)
	case "GP_NUM_CONS":
		return n(&p.GPNumCons)
	case "GP_INIT_DEPTH":
		return n(&p.GPInitDepth)
	case "XCSF_ETA":
		return f(&p.Eta)
	case "XCSF_X0":
		return f(&p.X0)
	case "RLS_SCALE_FACTOR":
		return f(&p.RLSScaleFactor)
	case "RLS_LAMBDA":
		return f(&p.RLSLambda)
	case "THETA_SUB":
		return n(&p.ThetaSub)
	case "GA_SUBSUMPTION":
		return b(&p.GASubsumption)
	case "SET_SUBSUMPTION":
		return b(&p.SetSubsumption)
	case "SEED":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return bad(err)
		}
		p.Seed = v
		return nil
	}
	return fmt.Errorf("%w: unknown parameter %q", ErrConfig, name)
}

// Validate rejects parameter combinations the engine cannot run with.
func (p *Params) Validate() error {
	switch {
	case p.PopSize < 1:
		return fmt.Errorf("%w: POP_SIZE must be at least 1", ErrConfig)
	case p.ThetaMNA < 1:
		return fmt.Errorf("%w: THETA_MNA must be at least 1", ErrConfig)
	case p.ThetaMNA > p.PopSize:
		return fmt.Errorf("%w: THETA_MNA cannot exceed POP_SIZE", ErrConfig)
	case p.Beta <= 0 || p.Beta > 1:
		return fmt.Errorf("%w: BETA must be in (0,1]", ErrConfig)
	case p.Eps0 <= 0:
		return fmt.Errorf("%w: EPS_0 must be positive", ErrConfig)
	case p.MaxCon <= p.MinCon:
		return fmt.Errorf("%w: MAX_CON must exceed MIN_CON", ErrConfig)
	case p.ThetaOffspring < 1:
		return fmt.Errorf("%w: THETA_OFFSPRING must be at least 1", ErrConfig)
	case p.X0 == 0:
		return fmt.Errorf("%w: XCSF_X0 must be non-zero", ErrConfig)
	case p.RLSLambda <= 0:
		return fmt.Errorf("%w: RLS_LAMBDA must be positive", ErrConfig)
	case p.PerfAvgTrials < 1:
		return fmt.Errorf("%w: PERF_AVG_TRIALS must be at least 1", ErrConfig)
	}
	return nil
}
