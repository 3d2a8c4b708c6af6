package xcsf

// Steady-state genetic algorithm, run on the match set once the mean time
// since its members' last GA visit exceeds THETA_GA.

func (s *XCSF) runGA(m *[]*Classifier, kset *[]*Classifier) {
	*m = validSet(*m)
	set := *m
	if len(set) == 0 {
		return
	}

	mnum := setNum(set)
	tsum := 0
	for _, c := range set {
		tsum += c.Time * c.Num
	}
	if float64(s.Time)-float64(tsum)/float64(mnum) <= s.ThetaGA {
		return
	}
	for _, c := range set {
		c.Time = s.Time
	}

	for off := 0; off < s.ThetaOffspring; off += 2 {
		p1 := s.rouletteFit(set)
		p2 := s.rouletteFit(set)
		c1 := s.offspring(p1)
		c2 := s.offspring(p2)

		if c1.Cond.Crossover(s, c2.Cond) {
			c1.Err = (p1.Err + p2.Err) / 2.0
			c1.Fit = (p1.Fit + p2.Fit) / 2.0
			c2.Err = c1.Err
			c2.Fit = c1.Fit
		}
		c1.Err *= s.ErrReduc
		c1.Fit *= s.FitReduc
		c2.Err *= s.ErrReduc
		c2.Fit *= s.FitReduc

		c1.mutate(s)
		c2.mutate(s)

		s.insertOffspring(c1, p1, p2, kset)
		if off+1 < s.ThetaOffspring {
			s.insertOffspring(c2, p2, p1, kset)
		}
	}
}

// insertOffspring adds a child to the population, unless GA subsumption lets
// one of its parents absorb it. Either way the population limit is enforced
// afterwards.
func (s *XCSF) insertOffspring(c, p1, p2 *Classifier, kset *[]*Classifier) {
	if s.GASubsumption {
		if p1.Num > 0 && p1.subsumes(s, c) {
			p1.Num++
			s.PopNum++
			s.PopNumSum++
		} else if p2.Num > 0 && p2.subsumes(s, c) {
			p2.Num++
			s.PopNum++
			s.PopNumSum++
		} else {
			s.popAdd(c)
		}
	} else {
		s.popAdd(c)
	}
	s.popEnforceLimit(kset)
}

// rouletteFit selects a parent with probability proportional to fitness.
func (s *XCSF) rouletteFit(set []*Classifier) *Classifier {
	total := 0.0
	for _, c := range set {
		total += c.Fit
	}
	p := s.rng.Float64() * total
	run := 0.0
	for _, c := range set {
		run += c.Fit
		if run > p {
			return c
		}
	}
	return set[len(set)-1]
}
