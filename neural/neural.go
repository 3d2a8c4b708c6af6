// Package neural implements the small feed-forward network used by the
// neural classifier condition: one hidden layer with a selectable activation
// and a logistic output layer.
package neural

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Hidden activation codes.
const (
	Logistic = iota
	Tanh
	Relu
	Identity
)

type Network struct {
	NumInputs  int
	NumHidden  int
	NumOutputs int
	Activation int

	// weights include a trailing bias term per neuron
	HiddenWeights [][]float64
	OutputWeights [][]float64

	hidden  []float64
	outputs []float64
}

// New builds a network with weights drawn uniformly from [-1, 1).
func New(rng *rand.Rand, in, hidden, out, activation int) *Network {
	n := &Network{
		NumInputs:     in,
		NumHidden:     hidden,
		NumOutputs:    out,
		Activation:    activation,
		HiddenWeights: make([][]float64, hidden),
		OutputWeights: make([][]float64, out),
	}
	for i := range n.HiddenWeights {
		n.HiddenWeights[i] = make([]float64, in+1)
	}
	for i := range n.OutputWeights {
		n.OutputWeights[i] = make([]float64, hidden+1)
	}
	n.Rand(rng)
	return n
}

// Rand re-initialises every weight uniformly in [-1, 1).
func (n *Network) Rand(rng *rand.Rand) {
	for _, row := range n.HiddenWeights {
		for i := range row {
			row[i] = rng.Float64()*2.0 - 1.0
		}
	}
	for _, row := range n.OutputWeights {
		for i := range row {
			row[i] = rng.Float64()*2.0 - 1.0
		}
	}
}

// Forward runs the network on x and returns the output activations. The
// returned slice is reused between calls.
func (n *Network) Forward(x []float64) []float64 {
	if n.hidden == nil {
		n.hidden = make([]float64, n.NumHidden)
		n.outputs = make([]float64, n.NumOutputs)
	}
	for i, row := range n.HiddenWeights {
		sum := row[n.NumInputs] // bias
		for j := 0; j < n.NumInputs; j++ {
			sum += row[j] * x[j]
		}
		n.hidden[i] = activate(n.Activation, sum)
	}
	for i, row := range n.OutputWeights {
		sum := row[n.NumHidden] // bias
		for j := 0; j < n.NumHidden; j++ {
			sum += row[j] * n.hidden[j]
		}
		n.outputs[i] = logistic(sum)
	}
	return n.outputs
}

// Output returns output neuron i from the last Forward pass.
func (n *Network) Output(i int) float64 {
	if n.outputs == nil {
		return 0
	}
	return n.outputs[i]
}

func activate(code int, v float64) float64 {
	switch code {
	case Tanh:
		return math.Tanh(v)
	case Relu:
		if v < 0 {
			return 0
		}
		return v
	case Identity:
		return v
	default:
		return logistic(v)
	}
}

func logistic(v float64) float64 {
	return 1.0 / (1.0 + math.Exp(-v))
}

// Copy returns a deep copy of the network.
func (n *Network) Copy() *Network {
	c := &Network{
		NumInputs:     n.NumInputs,
		NumHidden:     n.NumHidden,
		NumOutputs:    n.NumOutputs,
		Activation:    n.Activation,
		HiddenWeights: make([][]float64, len(n.HiddenWeights)),
		OutputWeights: make([][]float64, len(n.OutputWeights)),
	}
	for i, row := range n.HiddenWeights {
		c.HiddenWeights[i] = append([]float64(nil), row...)
	}
	for i, row := range n.OutputWeights {
		c.OutputWeights[i] = append([]float64(nil), row...)
	}
	return c
}

// Mutate adds a Gaussian step of the given scale to each weight with
// probability rate. Reports whether any weight moved.
func (n *Network) Mutate(rng *rand.Rand, rate, scale float64) bool {
	changed := false
	for _, row := range n.HiddenWeights {
		for i := range row {
			if rng.Float64() < rate {
				row[i] += rng.NormFloat64() * scale
				changed = true
			}
		}
	}
	for _, row := range n.OutputWeights {
		for i := range row {
			if rng.Float64() < rate {
				row[i] += rng.NormFloat64() * scale
				changed = true
			}
		}
	}
	return changed
}

func (n *Network) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "net %d-%d-%d", n.NumInputs, n.NumHidden, n.NumOutputs)
	return b.String()
}
