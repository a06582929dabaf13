// Package dataset builds the small labelled problems used to exercise the
// network: logic gates, an n-bit adder and a doubling regression.
//
// Every Set holds row-aligned input and output matrices plus a layout that
// is known to be able to learn it.
package dataset

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/nero/internal/matrix"
)

// MaxBits bounds Adder. 8 bits is already 65536 rows.
const MaxBits = 8

// ErrUnknown is returned by Lookup for names it does not know.
var ErrUnknown = errors.New("unknown dataset")

// Set is a labelled dataset.
type Set struct {
	Name   string
	In     *matrix.Matrix
	Out    *matrix.Matrix
	Layout []int
}

// Rows returns the number of samples.
func (s Set) Rows() int { return s.In.Rows() }

// Gate selects a two-input boolean function.
type Gate int

// Supported gates.
const (
	AND Gate = iota
	OR
	NAND
	NOR
	XOR
)

var gateNames = map[Gate]string{
	AND:  "and",
	OR:   "or",
	NAND: "nand",
	NOR:  "nor",
	XOR:  "xor",
}

func (g Gate) String() string {
	if name, ok := gateNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Gate(%d)", int(g))
}

func (g Gate) eval(x, y bool) bool {
	switch g {
	case AND:
		return x && y
	case OR:
		return x || y
	case NAND:
		return !(x && y)
	case NOR:
		return !(x || y)
	case XOR:
		return x != y
	default:
		panic(fmt.Sprintf("dataset.Gate: unknown gate %d", int(g)))
	}
}

// XORTable returns the XOR truth table as a single packed 4x3 matrix whose
// last column is the label.
func XORTable() *matrix.Matrix {
	return matrix.Wrap(4, 3, 3, []float32{
		0, 0, 0,
		1, 0, 1,
		0, 1, 1,
		1, 1, 0,
	})
}

// XORSet returns the XOR problem. In and Out are column views into one
// packed table, so both alias the same storage.
func XORSet() Set {
	table := XORTable()
	return Set{
		Name:   "xor",
		In:     table.View(0, 0, 4, 2),
		Out:    table.View(0, 2, 4, 1),
		Layout: []int{2, 2, 1},
	}
}

// GateSet returns the truth table of g over the inputs (0,0), (1,0), (0,1)
// and (1,1).
func GateSet(g Gate) Set {
	in := matrix.New(4, 2)
	out := matrix.New(4, 1)
	for i := 0; i < 4; i++ {
		x, y := i&1, (i>>1)&1
		in.Set(i, 0, float32(x))
		in.Set(i, 1, float32(y))
		if g.eval(x == 1, y == 1) {
			out.Set(i, 0, 1)
		}
	}
	layout := []int{2, 1}
	if g == XOR {
		layout = []int{2, 2, 1}
	}
	return Set{Name: g.String(), In: in, Out: out, Layout: layout}
}

// Adder returns every pair of bits-wide operands with their sum. Inputs
// are x bits then y bits, least significant first; outputs are the low
// bits of x+y followed by an overflow bit.
func Adder(bits int) (Set, error) {
	if bits < 1 || bits > MaxBits {
		return Set{}, errors.Errorf("dataset: adder bits %d outside [1, %d]", bits, MaxBits)
	}
	n := 1 << bits
	rows := n * n
	in := matrix.New(rows, 2*bits)
	out := matrix.New(rows, bits+1)
	for i := 0; i < rows; i++ {
		x, y := i/n, i%n
		z := x + y
		for j := 0; j < bits; j++ {
			in.Set(i, j, float32((x>>j)&1))
			in.Set(i, j+bits, float32((y>>j)&1))
			out.Set(i, j, float32((z>>j)&1))
		}
		if z >= n {
			out.Set(i, bits, 1)
		}
	}
	return Set{
		Name:   fmt.Sprintf("adder%d", bits),
		In:     in,
		Out:    out,
		Layout: []int{2 * bits, 4 * bits, bits + 1},
	}, nil
}

// Double returns the pairs x -> 2x for x in [0, n), both sides divided by
// 2(n-1) so they fit the sigmoid's range.
func Double(n int) (Set, error) {
	if n < 2 {
		return Set{}, errors.Errorf("dataset: double needs at least 2 samples, got %d", n)
	}
	scale := float32(2 * (n - 1))
	in := matrix.New(n, 1)
	out := matrix.New(n, 1)
	for x := 0; x < n; x++ {
		in.Set(x, 0, float32(x)/scale)
		out.Set(x, 0, float32(2*x)/scale)
	}
	return Set{Name: "double", In: in, Out: out, Layout: []int{1, 2, 1}}, nil
}

// Names lists the names Lookup accepts.
func Names() []string {
	return []string{"xor", "and", "or", "nand", "nor", "adder", "double"}
}

// Lookup builds a dataset by name. bits sizes the adder operands and sets
// 1<<bits samples for double; other sets ignore it.
func Lookup(name string, bits int) (Set, error) {
	switch strings.ToLower(name) {
	case "xor":
		return XORSet(), nil
	case "and":
		return GateSet(AND), nil
	case "or":
		return GateSet(OR), nil
	case "nand":
		return GateSet(NAND), nil
	case "nor":
		return GateSet(NOR), nil
	case "adder":
		return Adder(bits)
	case "double":
		if bits < 1 || bits > MaxBits {
			return Set{}, errors.Errorf("dataset: double bits %d outside [1, %d]", bits, MaxBits)
		}
		return Double(1 << bits)
	default:
		return Set{}, errors.Wrapf(ErrUnknown, "dataset %q (known: %s)", name, strings.Join(Names(), ", "))
	}
}
