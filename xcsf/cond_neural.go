package xcsf

import (
	"github.com/wlattner/xcsf/neural"
)

// NeuralCond matches when the network's output neuron exceeds 0.5 for the
// input.
type NeuralCond struct {
	Net *neural.Network

	m bool
}

func newNeuralCond(s *XCSF) *NeuralCond {
	return &NeuralCond{
		Net: neural.New(s.rng, s.NumX, s.NumHiddenNeurons, 1, s.HiddenNeuronActivation),
	}
}

func (c *NeuralCond) Rand(s *XCSF) {
	c.Net.Rand(s.rng)
}

// Cover re-randomises the weights until the network matches x.
func (c *NeuralCond) Cover(s *XCSF, x []float64) {
	for {
		c.Rand(s)
		if c.Match(s, x) {
			return
		}
	}
}

func (c *NeuralCond) Match(s *XCSF, x []float64) bool {
	out := c.Net.Forward(x)
	c.m = out[0] > 0.5
	return c.m
}

func (c *NeuralCond) MatchState() bool { return c.m }

func (c *NeuralCond) Mutate(s *XCSF, r mutRates) bool {
	return c.Net.Mutate(s.rng, r.p, r.step)
}

// Crossover is not defined for network weights.
func (c *NeuralCond) Crossover(s *XCSF, other Condition) bool { return false }

// General is undefined for networks; subsumption is disabled.
func (c *NeuralCond) General(other Condition) bool { return false }

func (c *NeuralCond) Copy() Condition {
	return &NeuralCond{Net: c.Net.Copy()}
}

func (c *NeuralCond) String() string {
	return "neural: " + c.Net.String()
}
