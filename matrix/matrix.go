// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"math/rand"

	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/parallel"
)

// Matrix is a dense row-major float32 matrix or a view into one.
type Matrix = matrix.Matrix

// New allocates a zeroed rows x cols matrix.
func New(rows, cols int) *Matrix {
	return matrix.New(rows, cols)
}

// FromSlice copies data into a new rows x cols matrix.
func FromSlice(rows, cols int, data []float32) (*Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// Wrap adopts data as the storage of a rows x cols matrix with the given
// row stride. Nothing is copied.
//
// Example:
//
//	packed := []float32{0, 0, 0, 1, 0, 1}
//	m := matrix.Wrap(2, 3, 3, packed)
func Wrap(rows, cols, stride int, data []float32) *Matrix {
	return matrix.Wrap(rows, cols, stride, data)
}

// Copy copies src into dst.
func Copy(dst, src *Matrix) { matrix.Copy(dst, src) }

// Add computes dst += src.
func Add(dst, src *Matrix) { matrix.Add(dst, src) }

// Sub computes dst -= src.
func Sub(dst, src *Matrix) { matrix.Sub(dst, src) }

// MatMul computes dst = a·b.
func MatMul(dst, a, b *Matrix) { matrix.MatMul(dst, a, b) }

// SwapRows exchanges the elements of two equal-shaped matrices.
func SwapRows(a, b *Matrix) { matrix.SwapRows(a, b) }

// Equal reports whether a and b have the same shape and elements.
func Equal(a, b *Matrix) bool { return matrix.Equal(a, b) }

// EqualApprox is Equal with an absolute tolerance.
func EqualApprox(a, b *Matrix, tol float64) bool { return matrix.EqualApprox(a, b, tol) }

// Random returns a rows x cols matrix filled uniformly from [lo, hi).
func Random(rng *rand.Rand, rows, cols int, lo, hi float32) *Matrix {
	m := matrix.New(rows, cols)
	m.Rand(rng, lo, hi)
	return m
}

// SetWorkers sets how many goroutines MatMul may split large destinations
// across. n < 2 keeps every product on the calling goroutine.
func SetWorkers(n int) {
	cfg := parallel.DefaultConfig()
	cfg.NumWorkers = n
	cfg.Enabled = n > 1
	matrix.SetParallel(cfg)
}
