package gp

import (
	"math/rand"
	"testing"
)

func testCfg(rng *rand.Rand) TreeConfig {
	return TreeConfig{
		NumVars:   2,
		Consts:    NewConstPool(rng, 10, 0.0, 1.0),
		InitDepth: 5,
	}
}

func TestEval(t *testing.T) {
	// (x0 + 2) * x1
	tree := &Tree{
		Root: &Node{
			Op: Mul,
			Left: &Node{
				Op:    Add,
				Left:  &Node{Op: Var, Index: 0},
				Right: &Node{Op: Const, Value: 2.0},
			},
			Right: &Node{Op: Var, Index: 1},
		},
	}

	got := tree.Eval([]float64{1.0, 3.0})
	if got != 9.0 {
		t.Error("expected (1+2)*3 = 9, got:", got)
	}
}

func TestEvalProtectedDiv(t *testing.T) {
	tree := &Tree{
		Root: &Node{
			Op:    Div,
			Left:  &Node{Op: Var, Index: 0},
			Right: &Node{Op: Const, Value: 0.0},
		},
	}

	got := tree.Eval([]float64{5.0, 0.0})
	if got != 1.0 {
		t.Error("expected division by zero to yield 1, got:", got)
	}
}

func TestRandTreeTerminals(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := testCfg(rng)

	for i := 0; i < 100; i++ {
		tree := RandTree(rng, cfg)
		if tree.Size() < 1 {
			t.Fatal("expected tree to have at least one node")
		}
		// evaluation must terminate and every terminal must be valid
		_ = tree.Eval([]float64{0.5, 0.5})
	}
}

func TestCopyIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cfg := testCfg(rng)

	tree := RandTree(rng, cfg)
	cp := tree.Copy()

	if tree.String() != cp.String() {
		t.Error("expected copy to print identically")
	}

	// mutating the copy must not disturb the original
	before := tree.String()
	for i := 0; i < 10; i++ {
		cp.Mutate(rng, cfg)
	}
	if tree.String() != before {
		t.Error("expected original to be unchanged after mutating the copy")
	}
}

func TestCrossoverPreservesNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cfg := testCfg(rng)

	a := RandTree(rng, cfg)
	b := RandTree(rng, cfg)
	total := a.Size() + b.Size()

	a.Crossover(rng, b)

	if a.Size()+b.Size() != total {
		t.Error("expected crossover to preserve the combined node count, got:",
			a.Size()+b.Size(), "want:", total)
	}
}
