// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nero/matrix"
	"github.com/born-ml/nero/nn"
	"github.com/born-ml/nero/optim"
)

func TestBatchesTrainGate(t *testing.T) {
	// OR gate: linearly separable, a single layer learns it quickly.
	tIn, err := matrix.FromSlice(4, 2, []float32{0, 0, 1, 0, 0, 1, 1, 1})
	require.NoError(t, err)
	tOut, err := matrix.FromSlice(4, 1, []float32{0, 1, 1, 1})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	net := nn.New(2, 1)
	net.Randomize(rng, 0, 1)
	grad := nn.NewLike(net)

	batches := optim.NewBatches(2, tIn, tOut, rng)
	assert.Equal(t, 2, batches.BatchSize())

	start := nn.Cost(net, tIn, tOut)
	for range 2000 {
		_, err := batches.Run(net, grad, 1)
		require.NoError(t, err)
	}
	assert.Less(t, nn.Cost(net, tIn, tOut), start)
	assert.Less(t, nn.Cost(net, tIn, tOut), float32(0.05))
}

func TestSGDFacade(t *testing.T) {
	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.5})
	assert.Equal(t, float32(0.5), sgd.LR())

	net := nn.New(1, 1)
	grad := nn.NewLike(net)
	grad.Biases(0).Set(0, 0, 2)
	sgd.Step(net, grad)
	assert.InDelta(t, -1, net.Biases(0).At(0, 0), 1e-7)
}

func TestShuffleFacade(t *testing.T) {
	tIn := matrix.Random(rand.New(rand.NewSource(2)), 30, 2, 0, 1)
	tOut := tIn.Clone()

	optim.Shuffle(rand.New(rand.NewSource(3)), tIn, tOut)
	assert.True(t, matrix.Equal(tIn, tOut), "rows move together")
}
