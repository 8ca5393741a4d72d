package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOps_ForwardBackward(t *testing.T) {
	tests := []struct {
		op       Operation
		inputs   []float64
		want     float64
		wantGrad []float64
	}{
		{AddOp{}, []float64{2, 3}, 5, []float64{0.5, 0.5}},
		{SubOp{}, []float64{2, 3}, -1, []float64{0.5, -0.5}},
		{MulOp{}, []float64{2, 3}, 6, []float64{1.5, 1}},
		{SigmoidOp{}, []float64{0}, 0.5, []float64{0.125}},
	}
	for _, tt := range tests {
		t.Run(tt.op.Name(), func(t *testing.T) {
			assert.Equal(t, len(tt.inputs), tt.op.Arity())

			out := tt.op.Forward(tt.inputs)
			assert.InDelta(t, tt.want, out, 1e-15)

			grads := make([]float64, tt.op.Arity())
			tt.op.Backward(tt.inputs, out, 0.5, grads)
			assert.InDeltaSlice(t, tt.wantGrad, grads, 1e-15)
		})
	}
}

func TestSigmoidOp_Saturates(t *testing.T) {
	op := SigmoidOp{}
	for _, x := range []float64{-30, -5, 0, 5, 30} {
		out := op.Forward([]float64{x})
		assert.Greater(t, out, 0.0)
		assert.Less(t, out, 1.0)
	}
}
