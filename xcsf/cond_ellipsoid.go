package xcsf

import (
	"fmt"
	"strings"
)

// minSpread keeps ellipsoid axes away from zero, where the membership sum
// degenerates.
const minSpread = 1e-6

// EllipsoidCond matches when x lies inside the axis-aligned hyperellipsoid
// with centre Center and semi-axis lengths Spread.
type EllipsoidCond struct {
	Center []float64
	Spread []float64

	m bool
}

func newEllipsoidCond(s *XCSF) *EllipsoidCond {
	return &EllipsoidCond{
		Center: make([]float64, s.NumX),
		Spread: make([]float64, s.NumX),
	}
}

func (c *EllipsoidCond) Rand(s *XCSF) {
	span := s.MaxCon - s.MinCon
	for i := range c.Center {
		c.Center[i] = span*s.rng.Float64() + s.MinCon
		c.Spread[i] = clampSpread(span * 0.5 * s.rng.Float64())
	}
}

func (c *EllipsoidCond) Cover(s *XCSF, x []float64) {
	span := s.MaxCon - s.MinCon
	for i := range c.Center {
		c.Center[i] = x[i]
		c.Spread[i] = clampSpread(span * 0.5 * s.rng.Float64())
	}
}

func clampSpread(v float64) float64 {
	if v < minSpread {
		return minSpread
	}
	return v
}

func (c *EllipsoidCond) Match(s *XCSF, x []float64) bool {
	sum := 0.0
	for i := range x {
		d := (x[i] - c.Center[i]) / c.Spread[i]
		sum += d * d
	}
	c.m = sum <= 1.0
	return c.m
}

func (c *EllipsoidCond) MatchState() bool { return c.m }

func (c *EllipsoidCond) Mutate(s *XCSF, r mutRates) bool {
	changed := false
	for i := range c.Center {
		if s.rng.Float64() < r.p {
			c.Center[i] += (s.rng.Float64()*2.0 - 1.0) * r.step
			if c.Center[i] < s.MinCon {
				c.Center[i] = s.MinCon
			} else if c.Center[i] > s.MaxCon {
				c.Center[i] = s.MaxCon
			}
			changed = true
		}
		if s.rng.Float64() < r.p {
			c.Spread[i] = clampSpread(c.Spread[i] + (s.rng.Float64()*2.0-1.0)*r.step)
			changed = true
		}
	}
	return changed
}

func (c *EllipsoidCond) Crossover(s *XCSF, other Condition) bool {
	o, ok := other.(*EllipsoidCond)
	if !ok {
		return false
	}
	changed := false
	if s.rng.Float64() < s.PCrossover {
		for i := range c.Center {
			if s.rng.Float64() < 0.5 {
				c.Center[i], o.Center[i] = o.Center[i], c.Center[i]
				changed = true
			}
			if s.rng.Float64() < 0.5 {
				c.Spread[i], o.Spread[i] = o.Spread[i], c.Spread[i]
				changed = true
			}
		}
	}
	return changed
}

// General compares the per-dimension intervals [center-spread, center+spread]
// exactly as the rectangle variant compares its bounds.
func (c *EllipsoidCond) General(other Condition) bool {
	o, ok := other.(*EllipsoidCond)
	if !ok {
		return false
	}
	for i := range c.Center {
		if c.Center[i]-c.Spread[i] > o.Center[i]-o.Spread[i] ||
			c.Center[i]+c.Spread[i] < o.Center[i]+o.Spread[i] {
			return false
		}
	}
	return true
}

func (c *EllipsoidCond) Copy() Condition {
	return &EllipsoidCond{
		Center: append([]float64(nil), c.Center...),
		Spread: append([]float64(nil), c.Spread...),
	}
}

func (c *EllipsoidCond) String() string {
	var b strings.Builder
	b.WriteString("ellipsoid:")
	for i := range c.Center {
		fmt.Fprintf(&b, " (%.5f, %.5f)", c.Center[i], c.Spread[i])
	}
	return b.String()
}
