package xcsf

import (
	"fmt"
	"strings"
)

// RectCond is an axis-aligned hyperrectangle: a classifier matches when every
// input variable falls inside [Lower[i], Upper[i]].
type RectCond struct {
	Lower []float64
	Upper []float64

	m bool
}

func newRectCond(s *XCSF) *RectCond {
	return &RectCond{
		Lower: make([]float64, s.NumX),
		Upper: make([]float64, s.NumX),
	}
}

func (c *RectCond) Rand(s *XCSF) {
	span := s.MaxCon - s.MinCon
	for i := range c.Lower {
		c.Lower[i] = span*s.rng.Float64() + s.MinCon
		c.Upper[i] = span*s.rng.Float64() + s.MinCon
		rectBounds(s, &c.Lower[i], &c.Upper[i])
	}
}

// rectBounds clamps an interval into [MIN_CON, MAX_CON] and repairs an
// inverted pair by swapping.
func rectBounds(s *XCSF, l, u *float64) {
	if *l < s.MinCon {
		*l = s.MinCon
	} else if *l > s.MaxCon {
		*l = s.MaxCon
	}
	if *u < s.MinCon {
		*u = s.MinCon
	} else if *u > s.MaxCon {
		*u = s.MaxCon
	}
	if *l > *u {
		*l, *u = *u, *l
	}
}

func (c *RectCond) Cover(s *XCSF, x []float64) {
	span := s.MaxCon - s.MinCon
	for i := range c.Lower {
		c.Lower[i] = x[i] - span*s.rng.Float64()*0.5
		c.Upper[i] = x[i] + span*s.rng.Float64()*0.5
		rectBounds(s, &c.Lower[i], &c.Upper[i])
	}
}

func (c *RectCond) Match(s *XCSF, x []float64) bool {
	for i := range x {
		if c.Lower[i] > x[i] || c.Upper[i] < x[i] {
			c.m = false
			return false
		}
	}
	c.m = true
	return true
}

func (c *RectCond) MatchState() bool { return c.m }

func (c *RectCond) Mutate(s *XCSF, r mutRates) bool {
	changed := false
	for i := range c.Lower {
		if s.rng.Float64() < r.p {
			c.Lower[i] += (s.rng.Float64()*2.0 - 1.0) * r.step
			changed = true
		}
		if s.rng.Float64() < r.p {
			c.Upper[i] += (s.rng.Float64()*2.0 - 1.0) * r.step
			changed = true
		}
		rectBounds(s, &c.Lower[i], &c.Upper[i])
	}
	return changed
}

func (c *RectCond) Crossover(s *XCSF, other Condition) bool {
	o, ok := other.(*RectCond)
	if !ok {
		return false
	}
	changed := false
	// uniform crossover
	if s.rng.Float64() < s.PCrossover {
		for i := range c.Lower {
			if s.rng.Float64() < 0.5 {
				c.Lower[i], o.Lower[i] = o.Lower[i], c.Lower[i]
				changed = true
			}
			if s.rng.Float64() < 0.5 {
				c.Upper[i], o.Upper[i] = o.Upper[i], c.Upper[i]
				changed = true
			}
			rectBounds(s, &c.Lower[i], &c.Upper[i])
			rectBounds(s, &o.Lower[i], &o.Upper[i])
		}
	}
	return changed
}

// General reports whether c encloses other in every dimension.
func (c *RectCond) General(other Condition) bool {
	o, ok := other.(*RectCond)
	if !ok {
		return false
	}
	for i := range c.Lower {
		if c.Lower[i] > o.Lower[i] || c.Upper[i] < o.Upper[i] {
			return false
		}
	}
	return true
}

func (c *RectCond) Copy() Condition {
	return &RectCond{
		Lower: append([]float64(nil), c.Lower...),
		Upper: append([]float64(nil), c.Upper...),
	}
}

func (c *RectCond) String() string {
	var b strings.Builder
	b.WriteString("rectangle:")
	for i := range c.Lower {
		fmt.Fprintf(&b, " (%.5f, %.5f)", c.Lower[i], c.Upper[i])
	}
	return b.String()
}
