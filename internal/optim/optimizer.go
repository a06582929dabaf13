// Package optim applies gradients to network parameters.
//
// This package provides:
//   - Learn: one plain gradient-descent step
//   - SGD: Learn plus the learning-rate controls used by the trainer
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1, MinLR: 0.01, Mul: 2})
//	for epoch := range epochs {
//	    autodiff.Backprop(net, grad, tIn, tOut)
//	    sgd.Step(net, grad)
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// Learn performs param -= rate * grad for every weight and bias of n.
//
// grad is scaled in place and should be treated as consumed: recompute it
// before the next step.
func Learn(n, grad *nn.Network, rate float32) {
	if !n.SameShape(grad) {
		panic(fmt.Sprintf("optim.Learn: gradient layout %v does not match network %v", grad.Layout(), n.Layout()))
	}
	for l := 0; l < n.Depth(); l++ {
		gw, gb := grad.Weights(l), grad.Biases(l)
		gw.Scale(rate)
		gb.Scale(rate)

		matrix.Sub(n.Weights(l), gw)
		matrix.Sub(n.Biases(l), gb)
	}
}
