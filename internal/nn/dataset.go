package nn

import "fmt"

// Example is one training pair.
type Example struct {
	Input    []float64
	Expected []float64
}

// Dataset is an ordered sequence of examples with fixed input and output widths.
type Dataset []Example

// NewDataset pairs inputs[i] with outputs[i].
//
// Returns ErrEmptyDataset for no examples and ErrShapeMismatch when the
// slices differ in length or a vector width differs from the first example.
func NewDataset(inputs, outputs [][]float64) (Dataset, error) {
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrShapeMismatch, len(inputs), len(outputs))
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyDataset
	}

	data := make(Dataset, len(inputs))
	for i := range inputs {
		data[i] = Example{Input: inputs[i], Expected: outputs[i]}
	}
	if err := data.Validate(len(inputs[0]), len(outputs[0])); err != nil {
		return nil, err
	}
	return data, nil
}

// InputSize returns the input width of the first example, or 0 if empty.
func (d Dataset) InputSize() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0].Input)
}

// OutputSize returns the expected-output width of the first example, or 0 if empty.
func (d Dataset) OutputSize() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0].Expected)
}

// Validate checks that d is non-empty and every example has the given widths.
func (d Dataset) Validate(inputSize, outputSize int) error {
	if len(d) == 0 {
		return ErrEmptyDataset
	}
	for i, ex := range d {
		if len(ex.Input) != inputSize {
			return fmt.Errorf("%w: example %d input has %d values, want %d",
				ErrShapeMismatch, i, len(ex.Input), inputSize)
		}
		if len(ex.Expected) != outputSize {
			return fmt.Errorf("%w: example %d expected output has %d values, want %d",
				ErrShapeMismatch, i, len(ex.Expected), outputSize)
		}
	}
	return nil
}
