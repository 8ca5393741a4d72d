package optim

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/perceptron/internal/nn"
)

// Config holds configuration for the trainer.
type Config struct {
	LearningRate float64  // Step size (default: 0.01)
	Iterations   int      // Number of full-batch updates (default: 1)
	Strategy     Strategy // Gradient strategy (default: Backprop)

	// Logger receives one debug record per iteration. Nil disables logging.
	Logger *slog.Logger

	// OnIteration, when set, is called after every update with the cost
	// measured on the updated weights.
	OnIteration func(Progress)
}

// Progress describes one completed iteration.
type Progress struct {
	Iteration int     // Zero-based iteration index
	Cost      float64 // Dataset cost after the update
	Strategy  string  // Strategy name
}

// Result is the outcome of a training run.
type Result struct {
	Costs []float64 // Cost after each iteration
	Model nn.Model  // Snapshot of the trained weights
}

// FinalCost returns the cost after the last iteration, or 0 when no
// iteration ran.
func (r *Result) FinalCost() float64 {
	if len(r.Costs) == 0 {
		return 0
	}
	return r.Costs[len(r.Costs)-1]
}

// Trainer runs full-batch gradient descent
//
//	weight = weight - learningRate * gradient
//
// with gradients supplied by a Strategy.
type Trainer struct {
	cfg Config
	log *slog.Logger
}

// NewTrainer creates a trainer, filling defaults for zero fields.
func NewTrainer(cfg Config) *Trainer {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.01
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = 1
	}
	if cfg.Strategy == nil {
		cfg.Strategy = Backprop{}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Trainer{cfg: cfg, log: log}
}

// Config returns the effective configuration.
func (t *Trainer) Config() Config { return t.cfg }

// Train updates net in place for the configured number of iterations.
//
// On error the costs recorded so far are returned in the partial result;
// the weights keep the last completed update.
func (t *Trainer) Train(net *nn.Network, data nn.Dataset) (*Result, error) {
	if t.cfg.Iterations < 0 {
		return nil, fmt.Errorf("%w: %d iterations", ErrInvalidConfig, t.cfg.Iterations)
	}
	if err := data.Validate(net.InputSize(), net.OutputSize()); err != nil {
		return nil, err
	}

	strategy := t.cfg.Strategy
	grads := net.NewGradientSet()
	result := &Result{Costs: make([]float64, 0, t.cfg.Iterations)}

	t.log.Info("training started",
		"sizes", net.Sizes(),
		"examples", len(data),
		"iterations", t.cfg.Iterations,
		"learning_rate", t.cfg.LearningRate,
		"strategy", strategy.Name())

	for it := 0; it < t.cfg.Iterations; it++ {
		if err := strategy.Gradient(net, data, grads); err != nil {
			return result, fmt.Errorf("iteration %d: %s: %w", it, strategy.Name(), err)
		}
		if err := net.ApplyGradients(grads, t.cfg.LearningRate); err != nil {
			return result, fmt.Errorf("iteration %d: %w", it, err)
		}
		cost, err := net.Cost(data)
		if err != nil {
			return result, fmt.Errorf("iteration %d: %w", it, err)
		}
		result.Costs = append(result.Costs, cost)

		t.log.Debug("iteration", "iteration", it, "cost", cost, "strategy", strategy.Name())
		if t.cfg.OnIteration != nil {
			t.cfg.OnIteration(Progress{Iteration: it, Cost: cost, Strategy: strategy.Name()})
		}
	}

	result.Model = net.Model()
	t.log.Info("training finished", "cost", result.FinalCost())
	return result, nil
}

// Fit builds a network for sizes with weights from gen and trains it on data.
func Fit(sizes []int, gen nn.Generator, data nn.Dataset, cfg Config) (*nn.Network, *Result, error) {
	net, err := nn.NewNetwork(sizes, gen)
	if err != nil {
		return nil, nil, err
	}
	result, err := NewTrainer(cfg).Train(net, data)
	return net, result, err
}
