// Package autodiff computes the squared-error cost of a network and its
// gradient with respect to every weight and bias.
//
// Backprop is the production path: a hand-derived reverse walk over the
// network's fixed layer stack. FiniteDiff and CentralGradient perturb
// parameters one at a time and exist to check Backprop.
//
// Gradients are written into a twin network of identical layout. Its
// activation slots are used as per-sample error scratch space.
package autodiff

import (
	"fmt"

	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// Cost returns the mean over rows of the summed squared error between the
// network's output and tOut. Each row of tIn is forwarded in turn; the
// dataset is not modified.
func Cost(n *nn.Network, tIn, tOut *matrix.Matrix) float32 {
	checkData("Cost", n, tIn, tOut)

	var cost float32
	for i := 0; i < tIn.Rows(); i++ {
		out := n.Predict(tIn.Row(i))
		for j := 0; j < tOut.Cols(); j++ {
			d := out.At(0, j) - tOut.At(i, j)
			cost += d * d
		}
	}
	return cost / float32(tIn.Rows())
}

func checkData(op string, n *nn.Network, tIn, tOut *matrix.Matrix) {
	if tIn.Rows() != tOut.Rows() {
		panic(fmt.Sprintf("autodiff.%s: %d input rows but %d output rows", op, tIn.Rows(), tOut.Rows()))
	}
	if tIn.Cols() != n.Input().Cols() {
		panic(fmt.Sprintf("autodiff.%s: input width %d, network expects %d", op, tIn.Cols(), n.Input().Cols()))
	}
	if tOut.Cols() != n.Output().Cols() {
		panic(fmt.Sprintf("autodiff.%s: output width %d, network produces %d", op, tOut.Cols(), n.Output().Cols()))
	}
}

func checkTwin(op string, n, grad *nn.Network) {
	if !n.SameShape(grad) {
		panic(fmt.Sprintf("autodiff.%s: gradient layout %v does not match network %v", op, grad.Layout(), n.Layout()))
	}
}
