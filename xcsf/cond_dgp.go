package xcsf

import (
	"github.com/wlattner/xcsf/gp"
)

// DGPCond matches when node 0 of its dynamic graph settles above 0.5 after
// the synchronous update cycles.
type DGPCond struct {
	Graph *gp.Graph

	m bool
}

func newDGPCond(s *XCSF) *DGPCond {
	return &DGPCond{Graph: gp.RandGraph(s.rng, s.NumX, s.DGPNumNodes)}
}

func (c *DGPCond) Rand(s *XCSF) {
	c.Graph.Rand(s.rng)
}

// Cover rewires the graph at random until it matches x.
func (c *DGPCond) Cover(s *XCSF, x []float64) {
	for {
		c.Rand(s)
		if c.Match(s, x) {
			return
		}
	}
}

func (c *DGPCond) Match(s *XCSF, x []float64) bool {
	c.Graph.Eval(x)
	c.m = c.Graph.Output(0) > 0.5
	return c.m
}

func (c *DGPCond) MatchState() bool { return c.m }

func (c *DGPCond) Mutate(s *XCSF, r mutRates) bool {
	return c.Graph.Mutate(s.rng, r.p)
}

func (c *DGPCond) Crossover(s *XCSF, other Condition) bool {
	o, ok := other.(*DGPCond)
	if !ok {
		return false
	}
	if s.rng.Float64() < s.PCrossover {
		return c.Graph.Crossover(s.rng, o.Graph)
	}
	return false
}

// General is undefined for graphs; subsumption is disabled.
func (c *DGPCond) General(other Condition) bool { return false }

func (c *DGPCond) Copy() Condition {
	return &DGPCond{Graph: c.Graph.Copy()}
}

// CondOutput reads node i+1 of the graph, re-evaluating for x.
func (c *DGPCond) CondOutput(s *XCSF, x []float64, i int) float64 {
	c.Graph.Eval(x)
	return c.Graph.Output((i + 1) % len(c.Graph.Nodes))
}

func (c *DGPCond) String() string {
	return "DGP graph: " + c.Graph.String()
}
