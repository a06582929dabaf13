// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/nero/internal/autodiff"
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// Network is a feed-forward stack of affine layers.
type Network = nn.Network

// Activation is the pointwise nonlinearity applied after every layer.
type Activation = nn.Activation

// Activations

// Sigmoid is the logistic function.
type Sigmoid = nn.Sigmoid

// Tanh is the hyperbolic tangent.
type Tanh = nn.Tanh

// ReLU is max(0, x).
type ReLU = nn.ReLU

// ActivationByName returns the activation called name.
func ActivationByName(name string) (Activation, bool) {
	return nn.ActivationByName(name)
}

// New allocates a sigmoid network with the given layer widths.
//
// Example:
//
//	net := nn.New(4, 8, 3) // 2-bit adder
func New(layout ...int) *Network {
	return nn.New(layout...)
}

// NewWithActivation allocates a network using act after every layer.
func NewWithActivation(act Activation, layout ...int) *Network {
	return nn.NewWithActivation(act, layout...)
}

// NewLike allocates a zeroed network shaped like n.
func NewLike(n *Network) *Network {
	return nn.NewLike(n)
}

// Gradients

// ErrNonFinite marks a cost or parameter that became NaN or Inf.
var ErrNonFinite = autodiff.ErrNonFinite

// Cost returns the mean squared error of n over the dataset.
func Cost(n *Network, tIn, tOut *matrix.Matrix) float32 {
	return autodiff.Cost(n, tIn, tOut)
}

// Backprop fills grad with the gradient of Cost.
func Backprop(n, grad *Network, tIn, tOut *matrix.Matrix) {
	autodiff.Backprop(n, grad, tIn, tOut)
}

// FiniteDiff fills grad with a forward-difference estimate of the
// gradient of Cost.
func FiniteDiff(n, grad *Network, eps float32, tIn, tOut *matrix.Matrix) {
	autodiff.FiniteDiff(n, grad, eps, tIn, tOut)
}

// CheckFinite returns an error wrapping ErrNonFinite if any parameter of n
// is NaN or Inf.
func CheckFinite(n *Network) error {
	return autodiff.CheckFinite(n)
}
