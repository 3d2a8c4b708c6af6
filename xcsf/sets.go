package xcsf

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Population and set operations: covering, system prediction, reinforcement,
// subsumption and roulette deletion. The match and kill sets are plain
// slices of population members, built fresh each trial; killed classifiers
// stay on the kill set until the trial ends so match-set references never
// dangle.

// popInit seeds the population with POP_SIZE random classifiers when
// POP_INIT is set; otherwise the population starts empty and grows by
// covering.
func (s *XCSF) popInit() {
	for i := 0; i < s.PopSize; i++ {
		c := s.newClassifier()
		c.Cond.Rand(s)
		s.popAdd(c)
	}
}

func (s *XCSF) popAdd(c *Classifier) {
	s.Pop = append(s.Pop, c)
	s.PopNum += c.Num
	s.PopNumSum += c.Num
}

// popRemove unlinks c from the population without touching the numerosity
// count; callers account for that.
func (s *XCSF) popRemove(c *Classifier) {
	for i, p := range s.Pop {
		if p == c {
			s.Pop = append(s.Pop[:i], s.Pop[i+1:]...)
			return
		}
	}
}

func (s *XCSF) popMeanFit() float64 {
	sum := 0.0
	for _, c := range s.Pop {
		sum += c.Fit
	}
	return sum / float64(s.PopNum)
}

// popDelete roulette-selects one classifier by deletion vote and decrements
// its numerosity. A classifier reaching zero is unlinked and pushed onto the
// kill set.
func (s *XCSF) popDelete(kset *[]*Classifier) {
	meanFit := s.popMeanFit()
	total := 0.0
	for _, c := range s.Pop {
		total += c.deleteVote(s, meanFit)
	}

	p := s.rng.Float64() * total
	run := 0.0
	chosen := s.Pop[len(s.Pop)-1]
	for _, c := range s.Pop {
		run += c.deleteVote(s, meanFit)
		if run > p {
			chosen = c
			break
		}
	}

	chosen.Num--
	s.PopNum--
	if chosen.Num == 0 {
		s.popRemove(chosen)
		*kset = append(*kset, chosen)
	}
}

// popEnforceLimit deletes until the numerosity sum fits POP_SIZE again.
func (s *XCSF) popEnforceLimit(kset *[]*Classifier) {
	for s.PopNum > s.PopSize {
		s.popDelete(kset)
	}
}

// validSet drops members whose numerosity reached zero.
func validSet(m []*Classifier) []*Classifier {
	out := m[:0]
	for _, c := range m {
		if c.Num > 0 {
			out = append(out, c)
		}
	}
	return out
}

// setNum sums the numerosities of a set.
func setNum(m []*Classifier) int {
	n := 0
	for _, c := range m {
		n += c.Num
	}
	return n
}

// matchSet assembles the match set for x, covering until it holds at least
// THETA_MNA members. Covering inserts into the population, so it may
// trigger deletion; members killed that way are pruned before the next
// round.
func (s *XCSF) matchSet(x []float64, kset *[]*Classifier) []*Classifier {
	var m []*Classifier
	for _, c := range s.Pop {
		if c.Cond.Match(s, x) {
			m = append(m, c)
		}
	}

	for len(m) < s.ThetaMNA {
		c := s.newClassifier()
		c.Cond.Cover(s, x)
		if !c.Cond.Match(s, x) {
			panic("xcsf: covering produced a non-matching condition")
		}
		s.popAdd(c)
		m = append(m, c)
		s.popEnforceLimit(kset)
		m = validSet(m)
	}
	return m
}

// systemPred writes the fitness-weighted mean of the match-set predictions
// into out, refreshing each member's cached prediction on the way.
func (s *XCSF) systemPred(m []*Classifier, x []float64, out []float64) {
	for v := range out {
		out[v] = 0.0
	}
	fitSum := 0.0
	for _, c := range m {
		pre := c.Pred.Compute(s, x)
		floats.AddScaled(out, c.Fit, pre)
		fitSum += c.Fit
	}
	if fitSum > 0 {
		floats.Scale(1.0/fitSum, out)
	}
}

// updateSet runs the reinforcement pass: experience, prediction update,
// error and set-size tracking, then the accuracy-based fitness update across
// the set. Callers must have refreshed the cached predictions for x.
func (s *XCSF) updateSet(m *[]*Classifier, kset *[]*Classifier, x, y []float64) {
	set := *m
	mnum := float64(setNum(set))

	acc := make([]float64, len(set))
	accSum := 0.0
	for i, c := range set {
		c.Exp++

		if err := c.Pred.Update(s, y, x); err != nil {
			// numeric fault: skip this classifier's fit, raise its
			// deletion vote until it updates cleanly again
			c.faulty = true
		} else {
			c.faulty = false
		}

		// Widrow-Hoff error toward the mean absolute deviation, MAM-style
		// while inexperienced
		e := 0.0
		for v := range y {
			e += math.Abs(y[v] - c.Pred.Pre(v))
		}
		e /= float64(s.NumY)
		if float64(c.Exp) < 1.0/s.Beta {
			c.Err += (e - c.Err) / float64(c.Exp)
			c.Size += (mnum - c.Size) / float64(c.Exp)
		} else {
			c.Err += s.Beta * (e - c.Err)
			c.Size += s.Beta * (mnum - c.Size)
		}

		k := 1.0
		if c.Err >= s.Eps0 {
			k = s.Alpha * math.Pow(c.Err/s.Eps0, -s.Nu)
		}
		acc[i] = k
		accSum += k * float64(c.Num)
	}

	for i, c := range set {
		c.Fit += s.Beta * (acc[i]*float64(c.Num)/accSum - c.Fit)
	}

	if s.SetSubsumption {
		s.subsumeSet(m, kset)
	}
}

// subsumeSet finds the most general accurate, experienced member of the set
// and absorbs the numerosity of everyone it subsumes.
func (s *XCSF) subsumeSet(m *[]*Classifier, kset *[]*Classifier) {
	var sub *Classifier
	for _, c := range *m {
		if c.couldSubsume(s) && (sub == nil || c.Cond.General(sub.Cond)) {
			sub = c
		}
	}
	if sub == nil {
		return
	}
	for _, c := range *m {
		if c != sub && sub.Cond.General(c.Cond) {
			// numerosity moves, the population total is unchanged
			sub.Num += c.Num
			c.Num = 0
			s.popRemove(c)
			*kset = append(*kset, c)
		}
	}
	*m = validSet(*m)
}
