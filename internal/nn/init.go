package nn

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces initial weight values. It is called once per weight,
// row by row, layer by layer.
type Generator func() float64

// Constant returns a generator that always yields v.
func Constant(v float64) Generator {
	return func() float64 { return v }
}

// Uniform returns a generator drawing from U[min, max).
func Uniform(min, max float64) Generator {
	dist := distuv.Uniform{Min: min, Max: max}
	return dist.Rand
}

// Random returns a generator drawing from U[0, 1).
func Random() Generator {
	return Uniform(0, 1)
}

// Sequence returns a deterministic generator yielding start+step,
// start+2*step, ... Useful for reproducible benchmarks.
func Sequence(start, step float64) Generator {
	v := start
	return func() float64 {
		v += step
		return v
	}
}
