package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/perceptron/internal/nn"
)

// GradientReport summarizes the disagreement between analytic and numeric
// gradients.
type GradientReport struct {
	MaxAbsError float64 // Largest |analytic - numeric|
	MaxRelError float64 // Largest |analytic - numeric| / max(|analytic|, |numeric|)

	// Location of MaxAbsError.
	Layer, Row, Col int
}

// CheckGradients compares Backprop against FiniteDifference with step
// epsilon on data. Returns ErrGradientMismatch, with the report, when
// MaxAbsError exceeds tol.
func CheckGradients(net *nn.Network, data nn.Dataset, epsilon, tol float64) (GradientReport, error) {
	var report GradientReport
	if tol < 0 {
		return report, fmt.Errorf("%w: tolerance %g", ErrInvalidConfig, tol)
	}

	analytic := net.NewGradientSet()
	if err := (Backprop{}).Gradient(net, data, analytic); err != nil {
		return report, fmt.Errorf("backprop: %w", err)
	}
	numeric := net.NewGradientSet()
	if err := (FiniteDifference{Epsilon: epsilon}).Gradient(net, data, numeric); err != nil {
		return report, fmt.Errorf("finite difference: %w", err)
	}

	for li := range analytic {
		a, n := analytic[li], numeric[li]
		for r := 0; r < a.Rows(); r++ {
			ar, nr := a.RawRow(r), n.RawRow(r)
			for c := range ar {
				num := nr[c]
				abs := math.Abs(ar[c] - num)
				if denom := math.Max(math.Abs(ar[c]), math.Abs(num)); denom > 0 {
					report.MaxRelError = math.Max(report.MaxRelError, abs/denom)
				}
				if abs > report.MaxAbsError {
					report.MaxAbsError = abs
					report.Layer, report.Row, report.Col = li, r, c
				}
			}
		}
	}

	if report.MaxAbsError > tol {
		return report, fmt.Errorf("%w: layer %d weight (%d, %d) differs by %g (tolerance %g)",
			ErrGradientMismatch, report.Layer, report.Row, report.Col, report.MaxAbsError, tol)
	}
	return report, nil
}
