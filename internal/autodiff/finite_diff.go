package autodiff

import (
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// FiniteDiff writes a forward-difference estimate of the gradient of
// Cost(n, tIn, tOut) into grad: every weight and bias p is bumped by eps,
// the full cost is recomputed, (cost(p+eps) - cost(p))/eps is stored and p
// is restored.
//
// It costs one full Cost evaluation per parameter and is only meant as a
// reference for Backprop over the same rows.
func FiniteDiff(n, grad *nn.Network, eps float32, tIn, tOut *matrix.Matrix) {
	checkTwin("FiniteDiff", n, grad)
	checkData("FiniteDiff", n, tIn, tOut)

	base := Cost(n, tIn, tOut)

	perturb := func(p, g *matrix.Matrix) {
		for i := 0; i < p.Rows(); i++ {
			for j := 0; j < p.Cols(); j++ {
				saved := p.At(i, j)
				p.Set(i, j, saved+eps)
				g.Set(i, j, (Cost(n, tIn, tOut)-base)/eps)
				p.Set(i, j, saved)
			}
		}
	}

	for l := 0; l < n.Depth(); l++ {
		perturb(n.Weights(l), grad.Weights(l))
		perturb(n.Biases(l), grad.Biases(l))
	}
}
