package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	data, err := NewDataset([][]float64{{0, 1}, {1, 1}}, [][]float64{{1}, {0}})
	require.NoError(t, err)
	assert.Len(t, data, 2)
	assert.Equal(t, 2, data.InputSize())
	assert.Equal(t, 1, data.OutputSize())
	assert.Equal(t, []float64{1, 1}, data[1].Input)
}

func TestNewDataset_Errors(t *testing.T) {
	_, err := NewDataset(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = NewDataset([][]float64{{0}}, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewDataset([][]float64{{0, 1}, {1}}, [][]float64{{1}, {0}})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewDataset([][]float64{{0}, {1}}, [][]float64{{1}, {0, 1}})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDatasetValidate(t *testing.T) {
	var empty Dataset
	assert.ErrorIs(t, empty.Validate(1, 1), ErrEmptyDataset)
	assert.Equal(t, 0, empty.InputSize())
	assert.Equal(t, 0, empty.OutputSize())

	data := Dataset{{Input: []float64{1, 2}, Expected: []float64{3}}}
	assert.NoError(t, data.Validate(2, 1))
	assert.ErrorIs(t, data.Validate(3, 1), ErrShapeMismatch)
	assert.ErrorIs(t, data.Validate(2, 2), ErrShapeMismatch)
}

func TestGenerators(t *testing.T) {
	c := Constant(0.5)
	assert.Equal(t, 0.5, c())
	assert.Equal(t, 0.5, c())

	s := Sequence(0, 0.01)
	assert.InDelta(t, 0.01, s(), 1e-15)
	assert.InDelta(t, 0.02, s(), 1e-15)

	u := Uniform(-1, 1)
	r := Random()
	for i := 0; i < 1000; i++ {
		v := u()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)

		w := r()
		assert.GreaterOrEqual(t, w, 0.0)
		assert.Less(t, w, 1.0)
	}
}
