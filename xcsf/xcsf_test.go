package xcsf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// linearData samples y = 2x + 1 over [0,1).
func linearData(seed int64, rows int) (X, Y [][]float64) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < rows; i++ {
		x := rng.Float64()
		X = append(X, []float64{x})
		Y = append(Y, []float64{2.0*x + 1.0})
	}
	return X, Y
}

func testMSE(t *testing.T, s *XCSF, X, Y [][]float64) float64 {
	t.Helper()
	pred, err := s.Predict(X)
	require.NoError(t, err)
	total := 0.0
	for i := range Y {
		total += mse(pred[i], Y[i])
	}
	return total / float64(len(Y))
}

func TestFitLinearNLMS(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) {
		p.PopSize = 100
		p.MaxTrials = 5000
		p.Eta = 0.5
		p.Beta = 0.2
		p.ThetaGA = 25.0
		p.PMutation = 0.1
	})

	trainX, trainY := linearData(99, 1000)
	testX, testY := linearData(100, 200)

	require.NoError(t, s.Fit(trainX, trainY, true))
	require.Less(t, testMSE(t, s, testX, testY), 0.01)
}

func TestFitLinearRLS(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) {
		p.PopSize = 100
		p.MaxTrials = 3000
		p.PredType = PredRLSLinear
		p.Beta = 0.2
		p.ThetaGA = 25.0
		p.PMutation = 0.1
	})

	trainX, trainY := linearData(99, 1000)
	testX, testY := linearData(100, 200)

	require.NoError(t, s.Fit(trainX, trainY, true))
	require.Less(t, testMSE(t, s, testX, testY), 1e-3)
}

func TestFitProductNLMSQuadratic(t *testing.T) {
	rng := rand.New(rand.NewSource(101))
	var trainX, trainY, testX, testY [][]float64
	for i := 0; i < 2000; i++ {
		x := []float64{rng.Float64(), rng.Float64()}
		trainX = append(trainX, x)
		trainY = append(trainY, []float64{x[0] * x[1]})
	}
	for i := 0; i < 200; i++ {
		x := []float64{rng.Float64(), rng.Float64()}
		testX = append(testX, x)
		testY = append(testY, []float64{x[0] * x[1]})
	}

	s := testSys(t, 2, 1, func(p *Params) {
		p.PopSize = 200
		p.MaxTrials = 10000
		p.PredType = PredNLMSQuadratic
		p.Eta = 0.5
		p.Beta = 0.2
		p.ThetaGA = 25.0
		p.PMutation = 0.1
	})

	require.NoError(t, s.Fit(trainX, trainY, true))
	require.Less(t, testMSE(t, s, testX, testY), 0.02)
}

func TestReproducibleWithFixedSeed(t *testing.T) {
	trainX, trainY := linearData(99, 500)

	run := func() (int, int, float64) {
		s := testSys(t, 1, 1, func(p *Params) {
			p.MaxTrials = 500
			p.Seed = 42
		})
		require.NoError(t, s.Fit(trainX, trainY, true))
		fit := 0.0
		for _, c := range s.Pop {
			fit += c.Fit
		}
		return s.PopNum, len(s.Pop), fit
	}

	num1, macro1, fit1 := run()
	num2, macro2, fit2 := run()
	require.Equal(t, num1, num2)
	require.Equal(t, macro1, macro2)
	require.Equal(t, fit1, fit2)
}

func TestInvariantsOverTrainingTrace(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) {
		p.PopSize = 30
		p.ThetaMNA = 3
		p.PMutation = 0.2
	})

	rng := rand.New(rand.NewSource(5))
	exps := make(map[*Classifier]int)

	for trial := 0; trial < 800; trial++ {
		xv := rng.Float64()
		s.learnTrial([]float64{xv}, []float64{2.0*xv + 1.0})

		num := 0
		for _, c := range s.Pop {
			require.GreaterOrEqual(t, c.Num, 1)
			require.GreaterOrEqual(t, c.Fit, 0.0)
			require.GreaterOrEqual(t, c.Err, 0.0)
			require.GreaterOrEqual(t, c.Exp, exps[c], "experience must not decrease")
			exps[c] = c.Exp
			num += c.Num
		}
		require.Equal(t, num, s.PopNum)
		require.LessOrEqual(t, s.PopNum, s.PopSize)
	}
}

func TestMatchSetCoveringGuarantee(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) { p.ThetaMNA = 5 })

	var kset []*Classifier
	x := []float64{0.5}
	m := s.matchSet(x, &kset)

	require.GreaterOrEqual(t, len(m), s.ThetaMNA)
	for _, c := range m {
		require.True(t, c.Cond.MatchState())
	}
	require.Equal(t, setNum(m), s.PopNum)
}

func TestSystemPredictionIsFitnessWeightedMean(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) {
		p.CondType = CondDummy
		p.PredType = PredConstant
	})

	c1 := s.newClassifier()
	c1.Pred.(*ConstantPred).Weights[0] = 2.0
	c1.Fit = 1.0
	c2 := s.newClassifier()
	c2.Pred.(*ConstantPred).Weights[0] = 4.0
	c2.Fit = 3.0

	out := make([]float64, 1)
	s.systemPred([]*Classifier{c1, c2}, []float64{0.5}, out)
	require.InDelta(t, (1.0*2.0+3.0*4.0)/4.0, out[0], 1e-12)
}

func TestPopulationLimitEnforced(t *testing.T) {
	s := testSys(t, 1, 1, nil)

	for i := 0; i < s.PopSize+10; i++ {
		c := s.newClassifier()
		c.Cond.Rand(s)
		s.popAdd(c)
	}
	require.Greater(t, s.PopNum, s.PopSize)

	var kset []*Classifier
	s.popEnforceLimit(&kset)
	require.Equal(t, s.PopSize, s.PopNum)
	require.Len(t, kset, 10)
	for _, c := range kset {
		require.Equal(t, 0, c.Num)
	}
}

func TestGASubsumptionAbsorbsOffspring(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) {
		p.GASubsumption = true
		p.ThetaSub = 10
	})

	parent := s.newClassifier()
	rect := parent.Cond.(*RectCond)
	rect.Lower[0] = 0.0
	rect.Upper[0] = 1.0
	parent.Exp = 50
	parent.Err = 0.0
	s.popAdd(parent)

	child := s.offspring(parent)
	child.Cond.(*RectCond).Lower[0] = 0.4
	child.Cond.(*RectCond).Upper[0] = 0.6

	var kset []*Classifier
	s.insertOffspring(child, parent, parent, &kset)

	require.Equal(t, 2, parent.Num)
	require.Equal(t, 2, s.PopNum)
	require.Len(t, s.Pop, 1)
}

func TestSetSubsumptionAbsorbsNumerosity(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) {
		p.SetSubsumption = true
		p.ThetaSub = 10
	})

	sub := s.newClassifier()
	sub.Cond.(*RectCond).Lower[0] = 0.0
	sub.Cond.(*RectCond).Upper[0] = 1.0
	sub.Exp = 50
	sub.Err = 0.0
	s.popAdd(sub)

	narrow := s.newClassifier()
	narrow.Cond.(*RectCond).Lower[0] = 0.4
	narrow.Cond.(*RectCond).Upper[0] = 0.6
	s.popAdd(narrow)

	m := []*Classifier{sub, narrow}
	var kset []*Classifier
	s.subsumeSet(&m, &kset)

	require.Equal(t, 2, sub.Num)
	require.Len(t, m, 1)
	require.Len(t, kset, 1)
	require.Len(t, s.Pop, 1)
	require.Equal(t, 2, s.PopNum)
}

func TestShapeErrors(t *testing.T) {
	_, err := New(0, 1, DefaultParams())
	require.ErrorIs(t, err, ErrShape)

	s := testSys(t, 2, 1, nil)

	require.ErrorIs(t, s.Fit([][]float64{{0.1, 0.2}}, nil, true), ErrShape)
	require.ErrorIs(t, s.Fit([][]float64{{0.1}}, [][]float64{{1.0}}, true), ErrShape)
	require.ErrorIs(t, s.Fit([][]float64{{0.1, 0.2}}, [][]float64{{1.0, 2.0}}, true), ErrShape)

	_, err = s.Predict([][]float64{{0.1}})
	require.ErrorIs(t, err, ErrShape)

	// nothing mutated by the failed calls
	require.Equal(t, 0, s.PopNum)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) { p.MaxTrials = 300 })
	trainX, trainY := linearData(99, 200)
	require.NoError(t, s.Fit(trainX, trainY, true))

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))

	s2 := &XCSF{}
	require.NoError(t, s2.Load(&buf))

	require.Equal(t, s.PopNum, s2.PopNum)
	require.Equal(t, s.Time, s2.Time)
	require.Len(t, s2.Pop, len(s.Pop))
	for i := range s.Pop {
		require.Equal(t, s.Pop[i].Err, s2.Pop[i].Err)
		require.Equal(t, s.Pop[i].Fit, s2.Pop[i].Fit)
		require.Equal(t, s.Pop[i].Num, s2.Pop[i].Num)
		require.Equal(t, s.Pop[i].Cond.String(), s2.Pop[i].Cond.String())
		require.Equal(t, s.Pop[i].Pred.String(), s2.Pop[i].Pred.String())
	}
}

func TestPrintPopulation(t *testing.T) {
	s := testSys(t, 1, 1, func(p *Params) { p.MaxTrials = 50 })
	trainX, trainY := linearData(99, 50)
	require.NoError(t, s.Fit(trainX, trainY, true))

	var buf bytes.Buffer
	s.PrintPopulation(&buf, true, true)
	require.Contains(t, buf.String(), "rectangle:")
	require.Contains(t, buf.String(), "weights:")

	buf.Reset()
	s.PrintMatchSet(&buf, []float64{0.5}, true, false)
	require.Contains(t, buf.String(), "rectangle:")
}
