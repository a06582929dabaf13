// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float32 matrices used by nero.
//
// # Overview
//
// A Matrix is a row-major window onto a flat buffer:
//   - Owned matrices (New, FromSlice, Clone) hold their own storage
//   - Wrap adopts caller storage without copying
//   - Row and View return aliasing views: writes through a view are
//     visible in the parent and the other way round
//
// # Basic Usage
//
//	import "github.com/born-ml/nero/matrix"
//
//	func main() {
//	    table := matrix.Wrap(4, 3, 3, []float32{
//	        0, 0, 0,
//	        1, 0, 1,
//	        0, 1, 1,
//	        1, 1, 0,
//	    })
//
//	    // Two column views over the same storage
//	    in := table.View(0, 0, 4, 2)
//	    out := table.View(0, 2, 4, 1)
//
//	    fmt.Print(in.Format("in", 0), out.Format("out", 0))
//	}
//
// # Arithmetic
//
// Copy, Add, Sub and MatMul take the destination first. Shapes must match
// exactly; strides may differ. Shape violations panic.
package matrix
