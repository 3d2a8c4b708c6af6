package xcsf

import (
	"fmt"

	"github.com/wlattner/xcsf/gp"
)

// RuleDGP is a combined condition and computed prediction backed by a single
// dynamic graph: node 0 decides the match, nodes 1..num_y_vars supply the
// outputs (read through a CondOutputPred). The graph adapts through the GA
// alone.
type RuleDGP struct {
	Graph *gp.Graph

	m bool
}

func newRuleDGP(s *XCSF) *RuleDGP {
	n := s.DGPNumNodes
	if n < s.NumY+1 {
		n = s.NumY + 1
	}
	return &RuleDGP{Graph: gp.RandGraph(s.rng, s.NumX, n)}
}

func (c *RuleDGP) Rand(s *XCSF) {
	c.Graph.Rand(s.rng)
}

func (c *RuleDGP) Cover(s *XCSF, x []float64) {
	for {
		c.Rand(s)
		if c.Match(s, x) {
			return
		}
	}
}

func (c *RuleDGP) Match(s *XCSF, x []float64) bool {
	c.Graph.Eval(x)
	c.m = c.Graph.Output(0) > 0.5
	return c.m
}

func (c *RuleDGP) MatchState() bool { return c.m }

func (c *RuleDGP) Mutate(s *XCSF, r mutRates) bool {
	return c.Graph.Mutate(s.rng, r.p)
}

func (c *RuleDGP) Crossover(s *XCSF, other Condition) bool {
	o, ok := other.(*RuleDGP)
	if !ok {
		return false
	}
	if s.rng.Float64() < s.PCrossover {
		return c.Graph.Crossover(s.rng, o.Graph)
	}
	return false
}

func (c *RuleDGP) General(other Condition) bool { return false }

func (c *RuleDGP) Copy() Condition {
	return &RuleDGP{Graph: c.Graph.Copy()}
}

// CondOutput reads output node i+1 of the graph, re-evaluating for x.
func (c *RuleDGP) CondOutput(s *XCSF, x []float64, i int) float64 {
	c.Graph.Eval(x)
	return c.Graph.Output((i + 1) % len(c.Graph.Nodes))
}

func (c *RuleDGP) String() string {
	return fmt.Sprintf("rule-DGP: %s", c.Graph.String())
}
