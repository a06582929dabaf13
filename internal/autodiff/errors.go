package autodiff

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/born-ml/nero/internal/nn"
)

// ErrNonFinite reports a NaN or infinite cost, parameter or gradient,
// usually caused by a learning rate that is too large.
var ErrNonFinite = errors.New("non-finite value")

// NonFiniteError locates the first non-finite value found.
type NonFiniteError struct {
	Where string // "cost", "weights" or "biases"
	Layer int    // Layer index; -1 for the cost
}

// Error implements the error interface.
func (e *NonFiniteError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("%s: %v", e.Where, ErrNonFinite)
	}
	return fmt.Sprintf("%s of layer %d: %v", e.Where, e.Layer, ErrNonFinite)
}

// Unwrap lets errors.Is match ErrNonFinite.
func (e *NonFiniteError) Unwrap() error {
	return ErrNonFinite
}

// CheckFinite returns a *NonFiniteError for the first weight or bias
// matrix of n holding NaN or ±Inf, or nil.
func CheckFinite(n *nn.Network) error {
	for l := 0; l < n.Depth(); l++ {
		if !n.Weights(l).IsFinite() {
			return &NonFiniteError{Where: "weights", Layer: l}
		}
		if !n.Biases(l).IsFinite() {
			return &NonFiniteError{Where: "biases", Layer: l}
		}
	}
	return nil
}

// CheckCost returns a *NonFiniteError if c is NaN or ±Inf.
func CheckCost(c float32) error {
	if math32.IsNaN(c) || math32.IsInf(c, 0) {
		return &NonFiniteError{Where: "cost", Layer: -1}
	}
	return nil
}
