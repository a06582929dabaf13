package matrix

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/born-ml/nero/internal/parallel"
)

// matmulConfig splits MatMul destinations by row. Single-row products,
// which is what the network forwards, always run inline.
var matmulConfig = parallel.DefaultConfig()

// SetParallel replaces the row-splitting policy used by MatMul and returns
// the previous one.
func SetParallel(cfg parallel.Config) parallel.Config {
	prev := matmulConfig
	matmulConfig = cfg
	return prev
}

// Fill sets every element of m to v.
func (m *Matrix) Fill(v float32) {
	for i := 0; i < m.rows; i++ {
		row := m.rowSlice(i)
		for j := range row {
			row[j] = v
		}
	}
}

// Scale multiplies every element of m by k.
func (m *Matrix) Scale(k float32) {
	for i := 0; i < m.rows; i++ {
		row := m.rowSlice(i)
		for j := range row {
			row[j] *= k
		}
	}
}

// Apply replaces every element x of m with f(x).
func (m *Matrix) Apply(f func(float32) float32) {
	for i := 0; i < m.rows; i++ {
		row := m.rowSlice(i)
		for j := range row {
			row[j] = f(row[j])
		}
	}
}

// Rand fills m with values drawn uniformly from [lo, hi).
func (m *Matrix) Rand(rng *rand.Rand, lo, hi float32) {
	for i := 0; i < m.rows; i++ {
		row := m.rowSlice(i)
		for j := range row {
			row[j] = lo + rng.Float32()*(hi-lo)
		}
	}
}

// IsFinite reports whether every element is neither NaN nor ±Inf.
func (m *Matrix) IsFinite() bool {
	for i := 0; i < m.rows; i++ {
		for _, v := range m.rowSlice(i) {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Copy copies src into dst. Shapes must match; strides may differ.
func Copy(dst, src *Matrix) {
	sameShape("Copy", dst, src)
	for i := 0; i < dst.rows; i++ {
		copy(dst.rowSlice(i), src.rowSlice(i))
	}
}

// Add computes dst += src element-wise.
func Add(dst, src *Matrix) {
	sameShape("Add", dst, src)
	for i := 0; i < dst.rows; i++ {
		d, s := dst.rowSlice(i), src.rowSlice(i)
		for j := range d {
			d[j] += s[j]
		}
	}
}

// Sub computes dst -= src element-wise.
func Sub(dst, src *Matrix) {
	sameShape("Sub", dst, src)
	for i := 0; i < dst.rows; i++ {
		d, s := dst.rowSlice(i), src.rowSlice(i)
		for j := range d {
			d[j] -= s[j]
		}
	}
}

// MatMul computes dst = a·b with the plain triple loop.
// dst must not share storage with a or b.
func MatMul(dst, a, b *Matrix) {
	if a.cols != b.rows {
		panic(fmt.Sprintf("matrix.MatMul: inner dimensions differ [%d,%d] @ [%d,%d]", a.rows, a.cols, b.rows, b.cols))
	}
	if dst.rows != a.rows || dst.cols != b.cols {
		panic(fmt.Sprintf("matrix.MatMul: destination %dx%d, want %dx%d", dst.rows, dst.cols, a.rows, b.cols))
	}
	if shares(dst, a) || shares(dst, b) {
		panic("matrix.MatMul: destination aliases an operand")
	}

	inner := a.cols
	parallel.Rows(dst.rows, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out := dst.rowSlice(i)
			ar := a.rowSlice(i)
			for j := range out {
				var sum float32
				for k := 0; k < inner; k++ {
					sum += ar[k] * b.data[b.index(k, j)]
				}
				out[j] = sum
			}
		}
	}, matmulConfig)
}

// SwapRows exchanges the elements of two equal-shaped matrices. Passing
// two row views swaps those rows in their parents.
func SwapRows(a, b *Matrix) {
	sameShape("SwapRows", a, b)
	for i := 0; i < a.rows; i++ {
		ar, br := a.rowSlice(i), b.rowSlice(i)
		for j := range ar {
			ar[j], br[j] = br[j], ar[j]
		}
	}
}

// Equal reports whether a and b have the same shape and identical
// elements. Strides are ignored.
func Equal(a, b *Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := 0; i < a.rows; i++ {
		ar, br := a.rowSlice(i), b.rowSlice(i)
		for j := range ar {
			if ar[j] != br[j] {
				return false
			}
		}
	}
	return true
}

// EqualApprox is Equal with an absolute tolerance per element.
func EqualApprox(a, b *Matrix, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := 0; i < a.rows; i++ {
		ar, br := a.rowSlice(i), b.rowSlice(i)
		for j := range ar {
			if !scalar.EqualWithinAbs(float64(ar[j]), float64(br[j]), tol) {
				return false
			}
		}
	}
	return true
}

// Values returns the elements of m in row-major order as float64.
func (m *Matrix) Values() []float64 {
	out := make([]float64, 0, m.rows*m.cols)
	for i := 0; i < m.rows; i++ {
		for _, v := range m.rowSlice(i) {
			out = append(out, float64(v))
		}
	}
	return out
}

// shares reports whether a and b have at least one element in common.
func shares(a, b *Matrix) bool {
	if !sameArray(a.data, b.data) {
		return false
	}
	aLo, aHi := a.pos(0, 0), a.pos(a.rows-1, a.cols-1)
	bLo, bHi := b.pos(0, 0), b.pos(b.rows-1, b.cols-1)
	if aHi < bLo || bHi < aLo {
		return false
	}

	// The spans overlap; strided views may still interleave without
	// touching, so compare element positions.
	seen := make(map[int]struct{}, a.rows*a.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			seen[a.pos(i, j)] = struct{}{}
		}
	}
	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			if _, ok := seen[b.pos(i, j)]; ok {
				return true
			}
		}
	}
	return false
}

// sameArray reports whether x and y are slices of one backing array.
// Slices of the same array end at the same last element of their capacity.
func sameArray(x, y []float32) bool {
	if cap(x) == 0 || cap(y) == 0 {
		return false
	}
	return &x[:cap(x)][cap(x)-1] == &y[:cap(y)][cap(y)-1]
}

// pos returns the position of element (i, j) in the backing array,
// counted from the array's end so that slices of one array agree.
func (m *Matrix) pos(i, j int) int {
	return m.index(i, j) - cap(m.data)
}
