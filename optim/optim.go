// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"math/rand"

	"github.com/born-ml/nero/internal/batch"
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
	"github.com/born-ml/nero/internal/optim"
)

// Learn performs param -= rate * grad on every weight and bias of n.
func Learn(n, grad *nn.Network, rate float32) {
	optim.Learn(n, grad, rate)
}

// SGD (Stochastic Gradient Descent)

// SGD is gradient descent with an adjustable learning rate.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1, MinLR: 0.01, Mul: 2})
//	sgd.Step(net, grad)
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Minibatches

// Batches holds a shuffled working copy of a dataset.
type Batches = batch.Config

// NewBatches copies (tIn, tOut) and splits every epoch into batchCount
// gradient steps.
func NewBatches(batchCount int, tIn, tOut *matrix.Matrix, rng *rand.Rand) *Batches {
	return batch.New(batchCount, tIn, tOut, rng)
}

// Shuffle permutes the rows of tIn and tOut together.
func Shuffle(rng *rand.Rand, tIn, tOut *matrix.Matrix) {
	batch.Shuffle(rng, tIn, tOut)
}
