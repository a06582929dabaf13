package nn

import (
	"fmt"

	"github.com/born-ml/nero/internal/matrix"
)

// Affine is one fully connected layer: y = x·W + b.
//
//   - Weights has shape [in, out]
//   - Biases has shape [1, out]
type Affine struct {
	Weights *matrix.Matrix
	Biases  *matrix.Matrix
}

// NewAffine allocates a zeroed in→out layer.
func NewAffine(in, out int) Affine {
	return Affine{
		Weights: matrix.New(in, out),
		Biases:  matrix.New(1, out),
	}
}

// In returns the input width.
func (a Affine) In() int { return a.Weights.Rows() }

// Out returns the output width.
func (a Affine) Out() int { return a.Weights.Cols() }

// Forward writes x·W + b into dst. x and dst are single rows; the bias row
// is added as is.
func (a Affine) Forward(dst, x *matrix.Matrix) {
	if x.Rows() != 1 || dst.Rows() != 1 {
		panic(fmt.Sprintf("Affine.Forward: expected single rows, got %d and %d", x.Rows(), dst.Rows()))
	}
	matrix.MatMul(dst, x, a.Weights)
	matrix.Add(dst, a.Biases)
}
