package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/nero/internal/matrix"
)

// Network is a fixed stack of affine layers, each followed by the same
// pointwise activation.
//
// For a layout [n0, n1, ..., nd] the network has depth d and:
//   - layers[l].Weights is [n_l, n_{l+1}]
//   - layers[l].Biases is [1, n_{l+1}]
//   - activations[l] is [1, n_l]; activations[0] is the input slot and
//     activations[d] the output slot
//
// Forward overwrites the activation slots; learning overwrites weights and
// biases. A Network must not be used from more than one goroutine.
type Network struct {
	layers      []Affine
	activations []*matrix.Matrix
	act         Activation
}

// New allocates a sigmoid network for the given layer widths.
//
// Example:
//
//	net := nn.New(2, 2, 1) // XOR: 2 inputs, 2 hidden units, 1 output
func New(layout ...int) *Network {
	return NewWithActivation(Sigmoid{}, layout...)
}

// NewWithActivation allocates a network using act after every layer.
// All parameters start at zero.
func NewWithActivation(act Activation, layout ...int) *Network {
	if len(layout) < 2 {
		panic(fmt.Sprintf("nn.New: layout needs at least an input and an output width, got %v", layout))
	}
	for i, w := range layout {
		if w <= 0 {
			panic(fmt.Sprintf("nn.New: layer %d has width %d", i, w))
		}
	}
	if act == nil {
		act = Sigmoid{}
	}

	n := &Network{
		layers:      make([]Affine, len(layout)-1),
		activations: make([]*matrix.Matrix, len(layout)),
		act:         act,
	}
	for i, w := range layout {
		n.activations[i] = matrix.New(1, w)
		if i > 0 {
			n.layers[i-1] = NewAffine(layout[i-1], w)
		}
	}
	return n
}

// NewLike allocates a zeroed network with the same layout and activation as
// n. It is the usual way to get a gradient twin.
func NewLike(n *Network) *Network {
	return NewWithActivation(n.act, n.Layout()...)
}

// Depth returns the number of affine layers.
func (n *Network) Depth() int { return len(n.layers) }

// Layout returns the layer widths, input first.
func (n *Network) Layout() []int {
	layout := make([]int, len(n.activations))
	for i, a := range n.activations {
		layout[i] = a.Cols()
	}
	return layout
}

// Weights returns the weight matrix of layer l.
func (n *Network) Weights(l int) *matrix.Matrix { return n.layers[l].Weights }

// Biases returns the bias row of layer l.
func (n *Network) Biases(l int) *matrix.Matrix { return n.layers[l].Biases }

// Activation returns activation slot l, 0 <= l <= Depth().
func (n *Network) Activation(l int) *matrix.Matrix { return n.activations[l] }

// Input returns the input slot.
func (n *Network) Input() *matrix.Matrix { return n.activations[0] }

// Output returns the output slot.
func (n *Network) Output() *matrix.Matrix { return n.activations[len(n.layers)] }

// Act returns the network's nonlinearity.
func (n *Network) Act() Activation { return n.act }

// SameShape reports whether o has the same layout as n.
func (n *Network) SameShape(o *Network) bool {
	if len(n.activations) != len(o.activations) {
		return false
	}
	for i := range n.activations {
		if n.activations[i].Cols() != o.activations[i].Cols() {
			return false
		}
	}
	return true
}

// NumParams returns the number of scalar weights and biases.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		total += l.In()*l.Out() + l.Out()
	}
	return total
}

// Forward evaluates the network on the row currently in the input slot:
// activations[l+1] = act(activations[l]·W[l] + b[l]).
func (n *Network) Forward() {
	for l, layer := range n.layers {
		out := n.activations[l+1]
		layer.Forward(out, n.activations[l])
		out.Apply(n.act.Apply)
	}
}

// Predict copies row into the input slot, runs Forward and returns the
// output slot. The result is overwritten by the next forward pass.
func (n *Network) Predict(row *matrix.Matrix) *matrix.Matrix {
	matrix.Copy(n.Input(), row)
	n.Forward()
	return n.Output()
}

// Randomize fills every weight and bias uniformly from [lo, hi).
func (n *Network) Randomize(rng *rand.Rand, lo, hi float32) {
	for _, l := range n.layers {
		l.Weights.Rand(rng, lo, hi)
		l.Biases.Rand(rng, lo, hi)
	}
}

// Zero clears every weight, bias and activation.
func (n *Network) Zero() {
	for _, l := range n.layers {
		l.Weights.Fill(0)
		l.Biases.Fill(0)
	}
	for _, a := range n.activations {
		a.Fill(0)
	}
}

// CopyParams overwrites n's weights and biases with src's.
func (n *Network) CopyParams(src *Network) {
	if !n.SameShape(src) {
		panic(fmt.Sprintf("nn.CopyParams: layout %v vs %v", n.Layout(), src.Layout()))
	}
	for l := range n.layers {
		matrix.Copy(n.layers[l].Weights, src.layers[l].Weights)
		matrix.Copy(n.layers[l].Biases, src.layers[l].Biases)
	}
}

// String dumps every weight and bias matrix.
func (n *Network) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nn%v %s = {\n", n.Layout(), n.act.Name())
	for l, layer := range n.layers {
		b.WriteString(layer.Weights.Format(fmt.Sprintf("weights%d", l), 4))
		b.WriteString(layer.Biases.Format(fmt.Sprintf("biases%d", l), 4))
	}
	b.WriteString("}\n")
	return b.String()
}
