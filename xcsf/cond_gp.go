package xcsf

import (
	"github.com/wlattner/xcsf/gp"
)

// GPCond matches when its expression tree evaluates above 0.5 for the input.
type GPCond struct {
	Tree *gp.Tree

	m   bool
	out float64
}

func newGPCond(s *XCSF) *GPCond {
	return &GPCond{Tree: gp.RandTree(s.rng, s.treeCfg())}
}

func (c *GPCond) Rand(s *XCSF) {
	c.Tree = gp.RandTree(s.rng, s.treeCfg())
}

// Cover regenerates random trees until one matches x.
func (c *GPCond) Cover(s *XCSF, x []float64) {
	for {
		c.Rand(s)
		if c.Match(s, x) {
			return
		}
	}
}

func (c *GPCond) Match(s *XCSF, x []float64) bool {
	c.out = c.Tree.Eval(x)
	c.m = c.out > 0.5
	return c.m
}

func (c *GPCond) MatchState() bool { return c.m }

func (c *GPCond) Mutate(s *XCSF, r mutRates) bool {
	if s.rng.Float64() < r.p {
		c.Tree.Mutate(s.rng, s.treeCfg())
		return true
	}
	return false
}

func (c *GPCond) Crossover(s *XCSF, other Condition) bool {
	o, ok := other.(*GPCond)
	if !ok {
		return false
	}
	if s.rng.Float64() < s.PCrossover {
		c.Tree.Crossover(s.rng, o.Tree)
		return true
	}
	return false
}

// General is undefined for program trees; subsumption is disabled.
func (c *GPCond) General(other Condition) bool { return false }

func (c *GPCond) Copy() Condition {
	return &GPCond{Tree: c.Tree.Copy()}
}

// CondOutput exposes the tree evaluation as a computed prediction.
func (c *GPCond) CondOutput(s *XCSF, x []float64, i int) float64 {
	return c.Tree.Eval(x)
}

func (c *GPCond) String() string {
	return "GP tree: " + c.Tree.String()
}
