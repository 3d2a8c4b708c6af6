package neural

import (
	"math/rand"
	"testing"
)

func TestForwardBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, act := range []int{Logistic, Tanh, Relu, Identity} {
		n := New(rng, 3, 5, 1, act)
		for i := 0; i < 20; i++ {
			out := n.Forward([]float64{rng.Float64(), rng.Float64(), rng.Float64()})
			// output layer is logistic regardless of the hidden activation
			if out[0] <= 0.0 || out[0] >= 1.0 {
				t.Fatal("expected logistic output in (0,1), got:", out[0])
			}
		}
	}
}

func TestForwardDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := New(rng, 2, 4, 1, Logistic)

	x := []float64{0.25, 0.75}
	first := n.Forward(x)[0]
	if n.Forward(x)[0] != first {
		t.Error("expected repeated forward passes to agree")
	}
}

func TestCopyIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := New(rng, 2, 4, 1, Tanh)
	cp := n.Copy()

	x := []float64{0.1, 0.9}
	if n.Forward(x)[0] != cp.Forward(x)[0] {
		t.Error("expected copy to compute the same output")
	}

	before := n.Forward(x)[0]
	for i := 0; i < 5; i++ {
		cp.Mutate(rng, 1.0, 0.5)
	}
	if n.Forward(x)[0] != before {
		t.Error("expected original to be unchanged after mutating the copy")
	}
}

func TestMutateChanges(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	n := New(rng, 2, 4, 1, Logistic)

	if n.Mutate(rng, 0.0, 0.1) {
		t.Error("expected zero rate mutation to report no change")
	}
	if !n.Mutate(rng, 1.0, 0.1) {
		t.Error("expected full rate mutation to report a change")
	}
}
