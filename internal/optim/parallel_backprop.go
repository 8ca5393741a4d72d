package optim

import (
	"slices"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/parallel"
)

// ParallelBackprop is Backprop split across worker replicas.
//
// Each worker owns a clone of the network with its own buffers and
// accumulators and processes a contiguous shard of the dataset. The worker
// accumulators are then summed into the master network, which yields the
// batch average once. Weights are only read during the parallel phase.
//
// Replicas are kept between calls and refreshed from the master's weights.
// A ParallelBackprop must not be used by two trainers at once.
type ParallelBackprop struct {
	cfg      parallel.Config
	replicas []*nn.Network
}

// NewParallelBackprop returns a strategy using up to workers goroutines.
// workers <= 0 means one per CPU.
func NewParallelBackprop(workers int) *ParallelBackprop {
	cfg := parallel.DefaultConfig()
	cfg.Enabled = true
	cfg.MinChunkSize = 1
	if workers > 0 {
		cfg.NumWorkers = workers
	}
	return &ParallelBackprop{cfg: cfg}
}

// Name returns "parallel-backprop".
func (*ParallelBackprop) Name() string { return ParallelBackpropName }

// Workers returns the maximum number of workers.
func (p *ParallelBackprop) Workers() int { return p.cfg.NumWorkers }

// Gradient implements Strategy.
func (p *ParallelBackprop) Gradient(net *nn.Network, data nn.Dataset, grads []*matrix.Matrix) error {
	if err := data.Validate(net.InputSize(), net.OutputSize()); err != nil {
		return err
	}

	workers := p.cfg.Workers(len(data))
	if err := p.prepare(net, workers); err != nil {
		return err
	}

	err := parallel.Shard(len(data), func(w, start, end int) error {
		return p.replicas[w].Accumulate(data[start:end])
	}, p.cfg)
	if err != nil {
		for _, r := range p.replicas {
			r.ResetGradients()
		}
		return err
	}

	net.ResetGradients()
	for _, r := range p.replicas[:workers] {
		if err := net.MergeGradients(r); err != nil {
			return err
		}
	}
	return net.TakeGradients(grads)
}

// prepare makes sure there are at least n replicas carrying net's weights.
func (p *ParallelBackprop) prepare(net *nn.Network, n int) error {
	if len(p.replicas) > 0 && !slices.Equal(p.replicas[0].Sizes(), net.Sizes()) {
		p.replicas = nil
	}
	for i, r := range p.replicas {
		if i >= n {
			break
		}
		if err := r.CopyWeightsFrom(net); err != nil {
			return err
		}
		r.ResetGradients()
	}
	for len(p.replicas) < n {
		p.replicas = append(p.replicas, net.Clone())
	}
	return nil
}
