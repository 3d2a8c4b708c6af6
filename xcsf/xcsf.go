// Package xcsf implements an accuracy-based learning classifier system for
// real-valued function approximation, as described in
// Wilson, S.W. (2002) "Classifiers that approximate functions"
// Natural Computing 1, 211-234.
//
// A population of classifiers, each pairing a condition over the input space
// with a locally fitted computed prediction, self-organises under a
// steady-state genetic algorithm into a covering of the input space. The
// condition and prediction representations are pluggable; see CondType and
// PredType.
package xcsf

import (
	"bytes"
	"encoding/gob"
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/wlattner/xcsf/gp"
)

// XCSF is the learning system: global parameters, the population and the
// trial clock. It is owned by a single goroutine; trials run to completion
// with no suspension points.
type XCSF struct {
	Params

	NumX int // input variables per example
	NumY int // output variables per example

	Pop       []*Classifier
	PopNum    int // current numerosity sum, at most POP_SIZE
	PopNumSum int // numerosity ever added; bookkeeping only
	Time      int // trial counter stamped on GA visits

	GPConsts []float64 // ephemeral constant pool for GP trees

	rng *rand.Rand
	log *logrus.Logger
}

// New returns an initialised system for inputs of numX variables and targets
// of numY variables. The population starts empty unless POP_INIT is set.
func New(numX, numY int, p Params) (*XCSF, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if numX < 1 || numY < 1 {
		return nil, ErrShape
	}
	s := &XCSF{
		Params: p,
		NumX:   numX,
		NumY:   numY,
		rng:    rand.New(rand.NewSource(p.Seed)),
		log:    logrus.StandardLogger(),
	}
	s.GPConsts = gp.NewConstPool(s.rng, p.GPNumCons, p.MinCon, p.MaxCon)
	if p.PopInit {
		s.popInit()
	}
	return s, nil
}

// SetLogger replaces the logger used for performance reporting.
func (s *XCSF) SetLogger(l *logrus.Logger) { s.log = l }

func (s *XCSF) treeCfg() gp.TreeConfig {
	return gp.TreeConfig{NumVars: s.NumX, Consts: s.GPConsts, InitDepth: s.GPInitDepth}
}

func (s *XCSF) checkShape(X, Y [][]float64) error {
	if len(X) == 0 || len(X) != len(Y) {
		return ErrShape
	}
	for i := range X {
		if len(X[i]) != s.NumX || len(Y[i]) != s.NumY {
			return ErrShape
		}
	}
	return nil
}

// Fit runs MAX_TRIALS learning trials against the training set. With shuffle
// each trial draws a uniform random row; otherwise rows are visited in
// order, wrapping around. The moving-average training MSE is reported every
// PERF_AVG_TRIALS trials.
func (s *XCSF) Fit(X, Y [][]float64, shuffle bool) error {
	if err := s.checkShape(X, Y); err != nil {
		return err
	}
	perf := make([]float64, s.PerfAvgTrials)
	for cnt := 0; cnt < s.MaxTrials; cnt++ {
		row := s.nextRow(cnt, len(X), shuffle)
		perf[cnt%s.PerfAvgTrials] = s.learnTrial(X[row], Y[row])
		if cnt%s.PerfAvgTrials == 0 && cnt > 0 {
			s.report(cnt, perf, nil)
		}
	}
	return nil
}

// FitTest runs learning trials as Fit while interleaving one prediction-only
// trial per step against the test set, reporting both moving averages.
func (s *XCSF) FitTest(X, Y, testX, testY [][]float64, shuffle bool) error {
	if err := s.checkShape(X, Y); err != nil {
		return err
	}
	if err := s.checkShape(testX, testY); err != nil {
		return err
	}
	perf := make([]float64, s.PerfAvgTrials)
	tperf := make([]float64, s.PerfAvgTrials)
	for cnt := 0; cnt < s.MaxTrials; cnt++ {
		row := s.nextRow(cnt, len(X), shuffle)
		perf[cnt%s.PerfAvgTrials] = s.learnTrial(X[row], Y[row])
		// one draw per trial per dataset
		trow := s.nextRow(cnt, len(testX), shuffle)
		tperf[cnt%s.PerfAvgTrials] = s.testTrial(testX[trow], testY[trow])
		if cnt%s.PerfAvgTrials == 0 && cnt > 0 {
			s.report(cnt, perf, tperf)
		}
	}
	return nil
}

func (s *XCSF) nextRow(cnt, rows int, shuffle bool) int {
	if shuffle {
		return s.rng.Intn(rows)
	}
	return cnt % rows
}

func (s *XCSF) report(cnt int, perf, tperf []float64) {
	f := logrus.Fields{
		"trials":    cnt,
		"train_mse": floats.Sum(perf) / float64(len(perf)),
		"pop_num":   s.PopNum,
	}
	if tperf != nil {
		f["test_mse"] = floats.Sum(tperf) / float64(len(tperf))
	}
	s.log.WithFields(f).Info("performance")
}

// learnTrial executes one reinforcement step: match (covering as needed),
// system prediction, set update, GA. It returns the system MSE for the
// trial. Killed classifiers are retained on the trial's kill set until the
// trial completes, keeping match-set references valid.
func (s *XCSF) learnTrial(x, y []float64) float64 {
	var kset []*Classifier
	m := s.matchSet(x, &kset)
	pred := make([]float64, s.NumY)
	s.systemPred(m, x, pred)
	s.updateSet(&m, &kset, x, y)
	s.runGA(&m, &kset)
	s.Time++
	if s.PopNum > s.PopSize {
		panic("xcsf: population numerosity exceeds POP_SIZE")
	}
	return mse(pred, y)
}

// testTrial scores one input without reinforcement or GA. Covering still
// applies: the system prediction is undefined on an empty match set.
func (s *XCSF) testTrial(x, y []float64) float64 {
	var kset []*Classifier
	m := s.matchSet(x, &kset)
	pred := make([]float64, s.NumY)
	s.systemPred(m, x, pred)
	return mse(pred, y)
}

func mse(pred, y []float64) float64 {
	e := 0.0
	for i := range y {
		d := y[i] - pred[i]
		e += d * d
	}
	return e / float64(len(y))
}

// Predict returns the system prediction for each row of X.
func (s *XCSF) Predict(X [][]float64) ([][]float64, error) {
	for i := range X {
		if len(X[i]) != s.NumX {
			return nil, ErrShape
		}
	}
	out := make([][]float64, len(X))
	for i, x := range X {
		var kset []*Classifier
		m := s.matchSet(x, &kset)
		out[i] = make([]float64, s.NumY)
		s.systemPred(m, x, out[i])
	}
	return out, nil
}

// PrintPopulation writes every classifier to w, optionally including the
// condition and prediction forms.
func (s *XCSF) PrintPopulation(w io.Writer, printCond, printPred bool) {
	for _, c := range s.Pop {
		c.write(w, printCond, printPred)
	}
}

// PrintMatchSet assembles the match set for x and writes it to w. Covering
// applies as in a trial.
func (s *XCSF) PrintMatchSet(w io.Writer, x []float64, printCond, printPred bool) {
	var kset []*Classifier
	for _, c := range s.matchSet(x, &kset) {
		c.write(w, printCond, printPred)
	}
}

// Save serializes the system using encoding/gob to an io.Writer.
func (s *XCSF) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(s)
}

// Load deserializes the system using encoding/gob from an io.Reader.
func (s *XCSF) Load(r io.Reader) error {
	return gob.NewDecoder(r).Decode(s)
}

// xcsfWire strips the method set so the Gob hooks below can reuse the
// default struct encoding without recursing.
type xcsfWire XCSF

func (s *XCSF) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode((*xcsfWire)(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores the system state and re-establishes what gob cannot
// carry: the random source restarts from the configured seed, the logger
// reverts to the standard one, and condition-output predictions are rebound
// to their own conditions.
func (s *XCSF) GobDecode(data []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode((*xcsfWire)(s)); err != nil {
		return err
	}
	s.rng = rand.New(rand.NewSource(s.Seed))
	s.log = logrus.StandardLogger()
	for _, c := range s.Pop {
		c.rebindPred()
	}
	return nil
}
