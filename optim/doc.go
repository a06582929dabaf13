// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient descent for nero networks.
//
// # Overview
//
// This package contains:
//   - Learn: one plain gradient-descent step
//   - SGD: Learn with learning-rate controls
//   - Batches: shuffled minibatch epochs over a dataset
//
// # Basic Usage
//
//	net := nn.New(2, 2, 1)
//	net.Randomize(rng, 0, 1)
//	grad := nn.NewLike(net)
//
//	batches := optim.NewBatches(1, tIn, tOut, rng)
//	for range 10000 {
//	    cost, err := batches.Run(net, grad, 0.1)
//	    if err != nil {
//	        return err
//	    }
//	    _ = cost
//	}
package optim
