package autodiff

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// Flatten returns every weight and bias of n as one vector: layer by layer,
// the weights in row-major order followed by the biases.
func Flatten(n *nn.Network) []float64 {
	out := make([]float64, 0, n.NumParams())
	for l := 0; l < n.Depth(); l++ {
		out = append(out, n.Weights(l).Values()...)
		out = append(out, n.Biases(l).Values()...)
	}
	return out
}

// Unflatten loads x, laid out as by Flatten, into n's weights and biases.
func Unflatten(n *nn.Network, x []float64) {
	if len(x) != n.NumParams() {
		panic("autodiff.Unflatten: vector length does not match parameter count")
	}
	k := 0
	load := func(m *matrix.Matrix) {
		for i := 0; i < m.Rows(); i++ {
			for j := 0; j < m.Cols(); j++ {
				m.Set(i, j, float32(x[k]))
				k++
			}
		}
	}
	for l := 0; l < n.Depth(); l++ {
		load(n.Weights(l))
		load(n.Biases(l))
	}
}

// CentralGradient estimates the gradient of Cost(n, tIn, tOut) with the
// central difference formula, returned in Flatten order. n's parameters are
// restored before returning.
func CentralGradient(n *nn.Network, tIn, tOut *matrix.Matrix, step float64) []float64 {
	checkData("CentralGradient", n, tIn, tOut)

	x := Flatten(n)
	defer Unflatten(n, x)

	f := func(p []float64) float64 {
		Unflatten(n, p)
		return float64(Cost(n, tIn, tOut))
	}
	return fd.Gradient(nil, f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
}

// MaxAbsDiff returns the largest element-wise distance between the
// gradients held by a and b.
func MaxAbsDiff(a, b *nn.Network) float64 {
	checkTwin("MaxAbsDiff", a, b)
	return floats.Distance(Flatten(a), Flatten(b), math.Inf(1))
}
