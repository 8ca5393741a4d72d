package optim_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
)

func orData(t *testing.T) nn.Dataset {
	t.Helper()
	data, err := nn.NewDataset(
		[][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		[][]float64{{0}, {1}, {1}, {1}},
	)
	require.NoError(t, err)
	return data
}

func twoOutputData(t *testing.T) nn.Dataset {
	t.Helper()
	data, err := nn.NewDataset(
		[][]float64{{0, 0}, {1, 0}, {1, 1}},
		[][]float64{{0, 1}, {1, 0}, {1, 1}},
	)
	require.NoError(t, err)
	return data
}

func newNet(t *testing.T, sizes ...int) *nn.Network {
	t.Helper()
	net, err := nn.NewNetwork(sizes, nn.Sequence(-0.3, 0.07))
	require.NoError(t, err)
	return net
}

func assertWeightsApprox(t *testing.T, want, got *nn.Network, tol float64) {
	t.Helper()
	for i := range want.Layers() {
		assert.True(t, want.Layer(i).Weights().EqualApprox(got.Layer(i).Weights(), tol),
			"layer %d:\nwant %v\ngot  %v", i, want.Layer(i).Weights(), got.Layer(i).Weights())
	}
}

func TestNewStrategy(t *testing.T) {
	tests := []struct {
		cfg  optim.StrategyConfig
		name string
	}{
		{optim.StrategyConfig{}, optim.BackpropName},
		{optim.StrategyConfig{Name: "backprop"}, optim.BackpropName},
		{optim.StrategyConfig{Name: "finite-difference", Epsilon: 1e-5}, optim.FiniteDifferenceName},
		{optim.StrategyConfig{Name: "parallel-backprop", Workers: 3}, optim.ParallelBackpropName},
		{optim.StrategyConfig{Name: "autodiff"}, optim.AutodiffName},
	}
	for _, tt := range tests {
		s, err := optim.NewStrategy(tt.cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.name, s.Name())
	}

	s, err := optim.NewStrategy(optim.StrategyConfig{Name: "parallel-backprop", Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, s.(*optim.ParallelBackprop).Workers())

	_, err = optim.NewStrategy(optim.StrategyConfig{Name: "newton"})
	assert.ErrorIs(t, err, optim.ErrUnknownStrategy)

	_, err = optim.NewStrategy(optim.StrategyConfig{Name: "finite-difference", Epsilon: -1})
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)
}

func TestBackprop_MatchesNetworkAccumulator(t *testing.T) {
	data := orData(t)
	net := newNet(t, 2, 3, 1)

	grads := net.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(net, data, grads))

	ref := newNet(t, 2, 3, 1)
	require.NoError(t, ref.Accumulate(data))
	for i, l := range ref.Layers() {
		want := l.Gradient().Clone()
		want.Scale(1 / float64(l.Examples()))
		assert.True(t, want.EqualApprox(grads[i], 1e-15))
	}

	// Accumulators are drained and weights untouched.
	for i, l := range net.Layers() {
		assert.Equal(t, 0, l.Examples())
		assert.True(t, l.Weights().Equal(ref.Layer(i).Weights()))
	}
}

func TestBackprop_EmptyDataset(t *testing.T) {
	net := newNet(t, 2, 1)
	err := optim.Backprop{}.Gradient(net, nil, net.NewGradientSet())
	assert.ErrorIs(t, err, nn.ErrEmptyDataset)
}

func TestFiniteDifference_MatchesBackpropSingleOutput(t *testing.T) {
	data := orData(t)
	net := newNet(t, 2, 3, 1)

	analytic := net.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(net, data, analytic))
	numeric := net.NewGradientSet()
	require.NoError(t, optim.FiniteDifference{Epsilon: 1e-6}.Gradient(net, data, numeric))

	for i := range analytic {
		assert.True(t, analytic[i].EqualApprox(numeric[i], 1e-6),
			"layer %d:\nanalytic %v\nnumeric  %v", i, analytic[i], numeric[i])
	}
}

func TestFiniteDifference_MatchesBackpropMultiOutput(t *testing.T) {
	data := twoOutputData(t)
	net := newNet(t, 2, 2, 2)

	analytic := net.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(net, data, analytic))
	numeric := net.NewGradientSet()
	require.NoError(t, optim.FiniteDifference{Epsilon: 1e-6}.Gradient(net, data, numeric))

	for i := range numeric {
		assert.True(t, analytic[i].EqualApprox(numeric[i], 1e-6),
			"layer %d:\nanalytic %v\nnumeric  %v", i, analytic[i], numeric[i])
	}
}

func TestFiniteDifference_RestoresWeights(t *testing.T) {
	data := orData(t)
	net := newNet(t, 2, 3, 1)
	before := net.Model()

	require.NoError(t, optim.FiniteDifference{}.Gradient(net, data, net.NewGradientSet()))

	for i, w := range before {
		assert.True(t, w.Equal(net.Layer(i).Weights()), "layer %d", i)
	}
}

func TestFiniteDifference_Errors(t *testing.T) {
	net := newNet(t, 2, 1)
	data := orData(t)

	err := optim.FiniteDifference{}.Gradient(net, nil, net.NewGradientSet())
	assert.ErrorIs(t, err, nn.ErrEmptyDataset)

	err = optim.FiniteDifference{Epsilon: -1}.Gradient(net, data, net.NewGradientSet())
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)

	err = optim.FiniteDifference{}.Gradient(net, data, nil)
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)

	wrong, err := matrix.Zeros(2, 2)
	require.NoError(t, err)
	err = optim.FiniteDifference{}.Gradient(net, data, []*matrix.Matrix{wrong})
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestAutodiff_MatchesFiniteDifferenceAndBackprop(t *testing.T) {
	data := twoOutputData(t)
	net := newNet(t, 2, 3, 2)

	graph := net.NewGradientSet()
	require.NoError(t, optim.Autodiff{}.Gradient(net, data, graph))
	numeric := net.NewGradientSet()
	require.NoError(t, optim.FiniteDifference{Epsilon: 1e-6}.Gradient(net, data, numeric))
	analytic := net.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(net, data, analytic))

	for i := range graph {
		assert.True(t, graph[i].EqualApprox(numeric[i], 1e-6), "layer %d", i)
		assert.True(t, graph[i].EqualApprox(analytic[i], 1e-12), "layer %d", i)
	}

	err := optim.Autodiff{}.Gradient(net, nil, graph)
	assert.ErrorIs(t, err, nn.ErrEmptyDataset)
	err = optim.Autodiff{}.Gradient(net, data, graph[:1])
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestParallelBackprop_MatchesBackprop(t *testing.T) {
	data := orData(t)
	net := newNet(t, 2, 3, 1)

	want := net.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(net, data, want))

	for _, workers := range []int{1, 2, 3, 8} {
		p := optim.NewParallelBackprop(workers)
		got := net.NewGradientSet()
		require.NoError(t, p.Gradient(net, data, got))
		for i := range want {
			assert.True(t, want[i].EqualApprox(got[i], 1e-12), "workers=%d layer %d", workers, i)
		}
	}
}

func TestParallelBackprop_FollowsWeightChanges(t *testing.T) {
	data := orData(t)
	p := optim.NewParallelBackprop(2)

	net := newNet(t, 2, 3, 1)
	grads := net.NewGradientSet()
	require.NoError(t, p.Gradient(net, data, grads))
	require.NoError(t, net.ApplyGradients(grads, 1))

	got := net.NewGradientSet()
	require.NoError(t, p.Gradient(net, data, got))
	want := net.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(net, data, want))
	for i := range want {
		assert.True(t, want[i].EqualApprox(got[i], 1e-12), "layer %d", i)
	}

	// A different topology rebuilds the replicas.
	other := newNet(t, 2, 2, 1)
	got = other.NewGradientSet()
	require.NoError(t, p.Gradient(other, data, got))
	want = other.NewGradientSet()
	require.NoError(t, optim.Backprop{}.Gradient(other, data, want))
	for i := range want {
		assert.True(t, want[i].EqualApprox(got[i], 1e-12), "layer %d", i)
	}
}

func TestTrainer_Defaults(t *testing.T) {
	cfg := optim.NewTrainer(optim.Config{}).Config()
	assert.Equal(t, 0.01, cfg.LearningRate)
	assert.Equal(t, 1, cfg.Iterations)
	assert.Equal(t, optim.BackpropName, cfg.Strategy.Name())
}

func TestTrainer_SingleStepGolden(t *testing.T) {
	net, err := nn.NewNetwork([]int{2, 1}, nn.Constant(0.5))
	require.NoError(t, err)
	data := nn.Dataset{{Input: []float64{1, 0}, Expected: []float64{1}}}

	result, err := optim.NewTrainer(optim.Config{LearningRate: 1, Iterations: 1}).Train(net, data)
	require.NoError(t, err)
	require.Len(t, result.Costs, 1)

	w := net.Layer(0).Weights()
	assert.InDelta(t, 0.6057541855685334, w.At(0, 0), 1e-12)
	assert.Equal(t, 0.5, w.At(1, 0))
	assert.InDelta(t, 0.6057541855685334, w.At(2, 0), 1e-12)
	assert.Less(t, result.FinalCost(), 0.07232948812851325)

	// The result model is a snapshot of the trained weights.
	require.Len(t, result.Model, 1)
	assert.True(t, result.Model[0].Equal(w))
}

func TestTrainer_MatchesNetworkTrain(t *testing.T) {
	data := orData(t)

	ref := newNet(t, 2, 3, 1)
	refCosts, err := ref.Train(data, 50, 0.5)
	require.NoError(t, err)

	net := newNet(t, 2, 3, 1)
	result, err := optim.NewTrainer(optim.Config{LearningRate: 0.5, Iterations: 50}).Train(net, data)
	require.NoError(t, err)

	assert.InDeltaSlice(t, refCosts, result.Costs, 1e-12)
	assertWeightsApprox(t, ref, net, 1e-12)
}

func TestTrainer_ParallelSameTrajectory(t *testing.T) {
	data := orData(t)

	seq := newNet(t, 2, 3, 1)
	seqResult, err := optim.NewTrainer(optim.Config{LearningRate: 0.5, Iterations: 20}).Train(seq, data)
	require.NoError(t, err)

	par := newNet(t, 2, 3, 1)
	parResult, err := optim.NewTrainer(optim.Config{
		LearningRate: 0.5,
		Iterations:   20,
		Strategy:     optim.NewParallelBackprop(2),
	}).Train(par, data)
	require.NoError(t, err)

	assert.InDeltaSlice(t, seqResult.Costs, parResult.Costs, 1e-12)
	assertWeightsApprox(t, seq, par, 1e-12)
}

func TestTrainer_StrategiesShareTrajectoryMultiOutput(t *testing.T) {
	data := twoOutputData(t)
	train := func(s optim.Strategy) (*nn.Network, *optim.Result) {
		net := newNet(t, 2, 3, 2)
		result, err := optim.NewTrainer(optim.Config{
			LearningRate: 0.5,
			Iterations:   10,
			Strategy:     s,
		}).Train(net, data)
		require.NoError(t, err, s.Name())
		return net, result
	}

	ref, refResult := train(optim.Backprop{})

	// Backprop is also what Network.Train descends.
	direct := newNet(t, 2, 3, 2)
	directCosts, err := direct.Train(data, 10, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, refResult.Costs, directCosts, 1e-12)

	tests := []struct {
		strategy optim.Strategy
		tol      float64
	}{
		{optim.NewParallelBackprop(2), 1e-12},
		{optim.Autodiff{}, 1e-10},
		{optim.FiniteDifference{Epsilon: 1e-6}, 1e-5},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.Name(), func(t *testing.T) {
			net, result := train(tt.strategy)
			assert.InDeltaSlice(t, refResult.Costs, result.Costs, tt.tol)
			assertWeightsApprox(t, ref, net, tt.tol)
		})
	}
}

func TestTrainer_FiniteDifferenceReducesCost(t *testing.T) {
	data := orData(t)
	net := newNet(t, 2, 1)

	initial, err := net.Cost(data)
	require.NoError(t, err)

	result, err := optim.NewTrainer(optim.Config{
		LearningRate: 1,
		Iterations:   20,
		Strategy:     optim.FiniteDifference{Epsilon: 1e-6},
	}).Train(net, data)
	require.NoError(t, err)

	require.Len(t, result.Costs, 20)
	assert.Less(t, result.Costs[0], initial)
	assert.Less(t, result.FinalCost(), result.Costs[0])
}

func TestTrainer_ProgressAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seen []optim.Progress
	trainer := optim.NewTrainer(optim.Config{
		LearningRate: 0.5,
		Iterations:   5,
		Logger:       logger,
		OnIteration: func(p optim.Progress) {
			seen = append(seen, p)
		},
	})

	result, err := trainer.Train(newNet(t, 2, 2, 1), orData(t))
	require.NoError(t, err)

	require.Len(t, seen, 5)
	for i, p := range seen {
		assert.Equal(t, i, p.Iteration)
		assert.Equal(t, result.Costs[i], p.Cost)
		assert.Equal(t, optim.BackpropName, p.Strategy)
	}
	assert.Equal(t, 5, strings.Count(buf.String(), "msg=iteration"))
	assert.Contains(t, buf.String(), "training finished")
}

func TestTrainer_Errors(t *testing.T) {
	net := newNet(t, 2, 1)

	_, err := optim.NewTrainer(optim.Config{}).Train(net, nil)
	assert.ErrorIs(t, err, nn.ErrEmptyDataset)

	_, err = optim.NewTrainer(optim.Config{Iterations: -1}).Train(net, orData(t))
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)

	bad := nn.Dataset{{Input: []float64{1, 2, 3}, Expected: []float64{1}}}
	_, err = optim.NewTrainer(optim.Config{}).Train(net, bad)
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestFit(t *testing.T) {
	net, result, err := optim.Fit([]int{2, 3, 1}, nn.Sequence(-0.3, 0.07), orData(t), optim.Config{
		LearningRate: 0.5,
		Iterations:   500,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, net.Sizes())
	assert.Len(t, result.Costs, 500)
	assert.Less(t, result.FinalCost(), 0.1)

	_, _, err = optim.Fit([]int{2}, nn.Constant(0), orData(t), optim.Config{})
	assert.ErrorIs(t, err, nn.ErrInvalidLayerSpec)
}

func TestCheckGradients(t *testing.T) {
	report, err := optim.CheckGradients(newNet(t, 2, 3, 1), orData(t), 1e-6, 1e-6)
	require.NoError(t, err)
	assert.Less(t, report.MaxAbsError, 1e-6)

	report, err = optim.CheckGradients(newNet(t, 2, 2, 2), twoOutputData(t), 1e-6, 1e-6)
	require.NoError(t, err)
	assert.Less(t, report.MaxAbsError, 1e-6)
	assert.Greater(t, report.MaxAbsError, 0.0)
}

func TestCheckGradients_Mismatch(t *testing.T) {
	report, err := optim.CheckGradients(newNet(t, 2, 3, 1), orData(t), 1e-1, 1e-9)
	assert.ErrorIs(t, err, optim.ErrGradientMismatch)
	assert.Greater(t, report.MaxAbsError, 1e-9)

	_, err = optim.CheckGradients(newNet(t, 2, 1), orData(t), 1e-6, -1)
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)
}
