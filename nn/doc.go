// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fixed-topology feed-forward networks.
//
// # Overview
//
// A Network is a stack of affine layers, each followed by the same
// activation (sigmoid by default). Weights, biases and activation slots
// are matrix.Matrix values owned by the network.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nero/matrix"
//	    "github.com/born-ml/nero/nn"
//	)
//
//	func main() {
//	    net := nn.New(2, 2, 1)
//	    net.Randomize(rand.New(rand.NewSource(1)), 0, 1)
//
//	    x, _ := matrix.FromSlice(1, 2, []float32{1, 0})
//	    fmt.Println(net.Predict(x).At(0, 0))
//	}
//
// # Training
//
// Gradients live in a twin network of the same layout (see NewLike) and
// are filled by Backprop or FiniteDiff:
//
//	grad := nn.NewLike(net)
//	for range epochs {
//	    nn.Backprop(net, grad, tIn, tOut)
//	    optim.Learn(net, grad, 0.1)
//	}
package nn
