package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
)

const xorYAML = `
layers: "2 3 1"
learning_rate: 0.5
iterations: 100
strategy: parallel-backprop
workers: 2
init:
  kind: uniform
  min: -1
  max: 1
dataset:
  - {input: [0, 0], expected: [0]}
  - {input: [0, 1], expected: [1]}
  - {input: [1, 0], expected: [1]}
  - {input: [1, 1], expected: [0]}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(xorYAML))
	require.NoError(t, err)

	sizes, err := cfg.LayerSizes()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, sizes)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, 100, cfg.Iterations)

	data := cfg.Dataset()
	require.Len(t, data, 4)
	assert.Equal(t, []float64{1, 0}, data[2].Input)
	assert.Equal(t, []float64{1}, data[2].Expected)

	tc, err := cfg.TrainerConfig()
	require.NoError(t, err)
	assert.Equal(t, optim.ParallelBackpropName, tc.Strategy.Name())
	assert.Equal(t, 2, tc.Strategy.(*optim.ParallelBackprop).Workers())
	assert.Equal(t, 0.5, tc.LearningRate)

	gen := cfg.Generator()
	for i := 0; i < 100; i++ {
		v := gen()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestParse_TrainsEndToEnd(t *testing.T) {
	cfg, err := Parse([]byte(`
layers: "2 1"
learning_rate: 1
iterations: 1
init: {kind: constant, value: 0.5}
dataset:
  - {input: [1, 0], expected: [1]}
`))
	require.NoError(t, err)

	sizes, err := cfg.LayerSizes()
	require.NoError(t, err)
	tc, err := cfg.TrainerConfig()
	require.NoError(t, err)
	assert.Equal(t, optim.BackpropName, tc.Strategy.Name())

	net, result, err := optim.Fit(sizes, cfg.Generator(), cfg.Dataset(), tc)
	require.NoError(t, err)
	require.Len(t, result.Costs, 1)
	assert.InDelta(t, 0.6057541855685334, net.Layer(0).Weights().At(0, 0), 1e-12)
}

func TestGenerator_Kinds(t *testing.T) {
	tests := []struct {
		init Init
		want []float64
	}{
		{Init{Kind: InitConstant, Value: 0.25}, []float64{0.25, 0.25}},
		{Init{Kind: InitSequence, Value: 0, Step: 0.5}, []float64{0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.init.Kind, func(t *testing.T) {
			gen := (&Config{Init: tt.init}).Generator()
			for _, want := range tt.want {
				assert.InDelta(t, want, gen(), 1e-15)
			}
		})
	}

	gen := (&Config{}).Generator()
	v := gen()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestParseLayerSizes(t *testing.T) {
	sizes, err := ParseLayerSizes("  784 128\t10 ")
	require.NoError(t, err)
	assert.Equal(t, []int{784, 128, 10}, sizes)

	_, err = ParseLayerSizes("2 three 1")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParse_Invalid(t *testing.T) {
	dataset := "dataset:\n  - {input: [0, 0], expected: [0]}\n"
	tests := []struct {
		name string
		yaml string
	}{
		{"single layer", "layers: \"2\"\n" + dataset},
		{"zero layer", "layers: \"2 0 1\"\n" + dataset},
		{"bad layer", "layers: \"2 x 1\"\n" + dataset},
		{"negative rate", "layers: \"2 1\"\nlearning_rate: -1\n" + dataset},
		{"negative iterations", "layers: \"2 1\"\niterations: -5\n" + dataset},
		{"unknown strategy", "layers: \"2 1\"\nstrategy: newton\n" + dataset},
		{"negative epsilon", "layers: \"2 1\"\nstrategy: finite-difference\nepsilon: -0.1\n" + dataset},
		{"negative workers", "layers: \"2 1\"\nworkers: -2\n" + dataset},
		{"unknown init", "layers: \"2 1\"\ninit: {kind: xavier}\n" + dataset},
		{"empty uniform range", "layers: \"2 1\"\ninit: {kind: uniform, min: 1, max: 1}\n" + dataset},
		{"no dataset", "layers: \"2 1\"\n"},
		{"dataset width", "layers: \"3 1\"\n" + dataset},
		{"unknown key", "layers: \"2 1\"\nbatch_size: 4\n" + dataset},
		{"not yaml", "layers: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_EmptyDatasetCause(t *testing.T) {
	_, err := Parse([]byte("layers: \"2 1\"\n"))
	assert.ErrorIs(t, err, nn.ErrEmptyDataset)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(xorYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2 3 1", cfg.Layers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
