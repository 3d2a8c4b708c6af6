package xcsf

import (
	"encoding/gob"
	"fmt"
	"io"
)

func init() {
	// concrete variants travel through the Condition/Predictor interfaces
	// when a model is serialized
	gob.Register(&DummyCond{})
	gob.Register(&RectCond{})
	gob.Register(&EllipsoidCond{})
	gob.Register(&NeuralCond{})
	gob.Register(&GPCond{})
	gob.Register(&DGPCond{})
	gob.Register(&RuleDGP{})
	gob.Register(&NLMSPred{})
	gob.Register(&RLSPred{})
	gob.Register(&ConstantPred{})
	gob.Register(&CondOutputPred{})
}

// Classifier binds one condition and one computed prediction with the
// bookkeeping the learning loop maintains. The variants are fixed at birth;
// only their parameters evolve.
type Classifier struct {
	Cond Condition
	Pred Predictor

	Err  float64 // smoothed prediction error
	Fit  float64 // fitness
	Num  int     // numerosity
	Exp  int     // experience: reinforcement updates received
	Size float64 // smoothed action-set size
	Time int     // trial of the last GA visit
	Mu   []float64

	faulty bool // last prediction update hit a numeric fault
}

// newClassifier births a classifier of the configured variants with initial
// bookkeeping. Geometric conditions start zeroed, program and network
// conditions start random; callers either Cover or Rand it.
func (s *XCSF) newClassifier() *Classifier {
	c := &Classifier{
		Err:  s.InitError,
		Fit:  s.InitFitness,
		Num:  1,
		Size: 1.0,
		Time: s.Time,
		Mu:   samInit(s),
	}
	c.Cond = newCondition(s)
	if src, ok := c.Cond.(condOutput); ok && s.CondType == CondRuleDGP {
		c.Pred = newCondOutputPred(s, src)
	} else {
		c.Pred = newPredictor(s, c.Cond)
	}
	return c
}

// offspring clones p as a GA child: structures deep-copied, bookkeeping
// inherited, numerosity and experience reset.
func (s *XCSF) offspring(p *Classifier) *Classifier {
	c := &Classifier{
		Cond: p.Cond.Copy(),
		Pred: p.Pred.Copy(),
		Err:  p.Err,
		Fit:  p.Fit,
		Num:  1,
		Size: p.Size,
		Time: s.Time,
		Mu:   append([]float64(nil), p.Mu...),
	}
	c.rebindPred()
	return c
}

// rebindPred repoints a condition-output prediction at this classifier's own
// condition; plain copies would keep reading the donor's.
func (c *Classifier) rebindPred() {
	if cp, ok := c.Pred.(*CondOutputPred); ok {
		cp.Bind(c.Cond)
	}
}

// MuRate returns self-adaptive rate i, or -1 when the classifier carries no
// rate i (always the case when SAM is disabled).
func (c *Classifier) MuRate(i int) float64 {
	if i >= len(c.Mu) {
		return -1.0
	}
	return c.Mu[i]
}

// mutate adapts the self-adaptive rates, then mutates the condition with the
// effective rates.
func (c *Classifier) mutate(s *XCSF) bool {
	r := mutRates{p: s.PMutation, step: s.SMutation}
	if len(c.Mu) > 0 {
		samAdapt(s, c.Mu)
		r.p = c.Mu[0]
		if len(c.Mu) > 1 {
			r.step = c.Mu[1]
		}
	}
	return c.Cond.Mutate(s, r)
}

// couldSubsume reports whether the classifier is experienced and accurate
// enough to absorb others.
func (c *Classifier) couldSubsume(s *XCSF) bool {
	return c.Exp > s.ThetaSub && c.Err < s.Eps0
}

// subsumes reports whether c can absorb o.
func (c *Classifier) subsumes(s *XCSF, o *Classifier) bool {
	return c.couldSubsume(s) && c.Cond.General(o.Cond)
}

// deleteVote weights the classifier for roulette deletion. Experienced
// classifiers whose per-copy fitness trails the population mean vote higher,
// as do classifiers whose last prediction update faulted.
func (c *Classifier) deleteVote(s *XCSF, meanFit float64) float64 {
	vote := c.Size * float64(c.Num)
	perNum := c.Fit / float64(c.Num)
	if c.Exp > s.ThetaDel && perNum < s.Delta*meanFit {
		vote *= meanFit / perNum
	}
	if c.faulty {
		vote *= 10.0
	}
	return vote
}

func (c *Classifier) write(w io.Writer, printCond, printPred bool) {
	fmt.Fprintf(w, "err=%f fit=%f num=%d exp=%d size=%f time=%d\n",
		c.Err, c.Fit, c.Num, c.Exp, c.Size, c.Time)
	if printCond {
		fmt.Fprintln(w, c.Cond.String())
	}
	if printPred {
		fmt.Fprintln(w, c.Pred.String())
	}
}
