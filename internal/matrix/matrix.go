// Package matrix implements dense float32 matrices over flat buffers.
//
// A Matrix either owns its buffer or is a view aliasing a rectangular region
// of another matrix's buffer. Views address elements through the parent's
// stride, so writes through a view are visible in the parent and the other
// way round. The backing array stays reachable for as long as any view holds
// it, so a view can never dangle.
//
// Shape violations are programmer errors and panic.
package matrix

import (
	"fmt"

	"github.com/pkg/errors"
)

// Matrix is a rows×cols window over a flat buffer.
//
// Element (i, j) lives at data[offset + i*stride + j].
type Matrix struct {
	rows   int
	cols   int
	stride int
	offset int
	data   []float32
	view   bool
}

// New allocates a zeroed rows×cols matrix that owns its buffer.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix.New: invalid shape %dx%d", rows, cols))
	}
	return &Matrix{
		rows:   rows,
		cols:   cols,
		stride: cols,
		data:   make([]float32, rows*cols),
	}
}

// FromSlice creates an owned rows×cols matrix holding a copy of data in
// row-major order.
func FromSlice(rows, cols int, data []float32) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Errorf("invalid shape %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, errors.Errorf("shape %dx%d requires %d elements, got %d", rows, cols, rows*cols, len(data))
	}
	m := New(rows, cols)
	copy(m.data, data)
	return m, nil
}

// Wrap builds a matrix directly over data without copying.
// The caller keeps ownership of data; the matrix aliases it.
func Wrap(rows, cols, stride int, data []float32) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix.Wrap: invalid shape %dx%d", rows, cols))
	}
	if stride < cols {
		panic(fmt.Sprintf("matrix.Wrap: stride %d smaller than cols %d", stride, cols))
	}
	if need := (rows-1)*stride + cols; len(data) < need {
		panic(fmt.Sprintf("matrix.Wrap: %dx%d with stride %d needs %d elements, got %d", rows, cols, stride, need, len(data)))
	}
	return &Matrix{
		rows:   rows,
		cols:   cols,
		stride: stride,
		data:   data,
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Stride returns the distance in elements between consecutive rows.
func (m *Matrix) Stride() int { return m.stride }

// IsView reports whether m aliases another matrix's buffer.
func (m *Matrix) IsView() bool { return m.view }

// Row returns a 1×cols view of row i.
func (m *Matrix) Row(i int) *Matrix {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("matrix.Row: row %d out of range [0, %d)", i, m.rows))
	}
	return &Matrix{
		rows:   1,
		cols:   m.cols,
		stride: m.stride,
		offset: m.index(i, 0),
		data:   m.data,
		view:   true,
	}
}

// View returns a rows×cols view whose top-left corner is (r0, c0).
func (m *Matrix) View(r0, c0, rows, cols int) *Matrix {
	if r0 < 0 || r0 >= m.rows || c0 < 0 || c0 >= m.cols {
		panic(fmt.Sprintf("matrix.View: origin (%d, %d) outside %dx%d", r0, c0, m.rows, m.cols))
	}
	if rows <= 0 || cols <= 0 || m.rows-r0 < rows || m.cols-c0 < cols {
		panic(fmt.Sprintf("matrix.View: %dx%d at (%d, %d) does not fit in %dx%d", rows, cols, r0, c0, m.rows, m.cols))
	}
	return &Matrix{
		rows:   rows,
		cols:   cols,
		stride: m.stride,
		offset: m.index(r0, c0),
		data:   m.data,
		view:   true,
	}
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) float32 {
	m.checkIndex("At", i, j)
	return m.data[m.index(i, j)]
}

// Set stores v at (i, j).
func (m *Matrix) Set(i, j int, v float32) {
	m.checkIndex("Set", i, j)
	m.data[m.index(i, j)] = v
}

// Clone returns an owned, compact copy of m.
func (m *Matrix) Clone() *Matrix {
	c := New(m.rows, m.cols)
	Copy(c, m)
	return c
}

func (m *Matrix) index(i, j int) int {
	return m.offset + i*m.stride + j
}

// rowSlice returns the cols elements of row i.
func (m *Matrix) rowSlice(i int) []float32 {
	start := m.index(i, 0)
	return m.data[start : start+m.cols]
}

func (m *Matrix) checkIndex(op string, i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix.%s: index (%d, %d) out of range for %dx%d", op, i, j, m.rows, m.cols))
	}
}

func sameShape(op string, a, b *Matrix) {
	if a.rows != b.rows || a.cols != b.cols {
		panic(fmt.Sprintf("matrix.%s: shape mismatch %dx%d vs %dx%d", op, a.rows, a.cols, b.rows, b.cols))
	}
}
