package autodiff

import (
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// Backprop writes the mean gradient of Cost(n, tIn, tOut) into grad.
//
// For every sample the output error a - y is seeded into
// grad.Activation(depth) and pushed back layer by layer. At layer l, unit i
// with output a and accumulated error d_a contributes the local delta
//
//	d = k·d_a·act'(a)
//
// to its bias, d·a_{l-1}[j] to weight (j, i) and d·W[j][i] to the error of
// unit j one layer down. k is 2 at the output layer (the derivative of the
// squared error) and 1 below it, since the factor is already carried by the
// propagated error. act' is evaluated from the stored post-activation
// value.
//
// The network's activations are left holding the last sample's forward
// pass; its parameters are not modified.
func Backprop(n, grad *nn.Network, tIn, tOut *matrix.Matrix) {
	checkTwin("Backprop", n, grad)
	checkData("Backprop", n, tIn, tOut)

	grad.Zero()

	depth := n.Depth()
	act := n.Act()
	rows := tIn.Rows()

	for s := 0; s < rows; s++ {
		n.Predict(tIn.Row(s))

		for l := 0; l <= depth; l++ {
			grad.Activation(l).Fill(0)
		}

		out, gout := n.Output(), grad.Output()
		for j := 0; j < out.Cols(); j++ {
			gout.Set(0, j, out.At(0, j)-tOut.At(s, j))
		}

		for l := depth; l > 0; l-- {
			k := float32(1)
			if l == depth {
				k = 2
			}

			a, ga := n.Activation(l), grad.Activation(l)
			prev, gprev := n.Activation(l-1), grad.Activation(l-1)
			w := n.Weights(l - 1)
			gw, gb := grad.Weights(l-1), grad.Biases(l-1)

			for i := 0; i < a.Cols(); i++ {
				d := k * ga.At(0, i) * act.DerivFromOutput(a.At(0, i))

				gb.Set(0, i, gb.At(0, i)+d)
				for j := 0; j < prev.Cols(); j++ {
					gw.Set(j, i, gw.At(j, i)+d*prev.At(0, j))
					gprev.Set(0, j, gprev.At(0, j)+d*w.At(j, i))
				}
			}
		}
	}

	scale := 1 / float32(rows)
	for l := 0; l < depth; l++ {
		grad.Weights(l).Scale(scale)
		grad.Biases(l).Scale(scale)
	}
}
