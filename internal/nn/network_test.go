package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nero/internal/matrix"
)

// sigmoid computes sigmoid for testing.
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func TestSigmoid(t *testing.T) {
	s := Sigmoid{}

	assert.InDelta(t, 0.5, s.Apply(0), 1e-7)
	assert.InDelta(t, 0.7311, s.Apply(1), 1e-4)
	assert.InDelta(t, 0.1192, s.Apply(-2), 1e-4)

	// σ'(x) = σ(x)(1-σ(x)), evaluated from the output.
	for _, x := range []float32{-3, -0.5, 0, 0.5, 3} {
		y := s.Apply(x)
		want := sigmoid(float64(x)) * (1 - sigmoid(float64(x)))
		assert.InDelta(t, want, s.DerivFromOutput(y), 1e-6, "x=%v", x)
	}
}

func TestTanhReLU(t *testing.T) {
	th := Tanh{}
	y := th.Apply(0.5)
	assert.InDelta(t, math.Tanh(0.5), y, 1e-6)
	assert.InDelta(t, 1-math.Tanh(0.5)*math.Tanh(0.5), th.DerivFromOutput(y), 1e-6)

	r := ReLU{}
	assert.Equal(t, float32(0), r.Apply(-1))
	assert.Equal(t, float32(2), r.Apply(2))
	assert.Equal(t, float32(0), r.DerivFromOutput(0))
	assert.Equal(t, float32(1), r.DerivFromOutput(2))
}

func TestActivationByName(t *testing.T) {
	for _, name := range []string{"sigmoid", "tanh", "relu"} {
		act, ok := ActivationByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, act.Name())
	}

	act, ok := ActivationByName("")
	require.True(t, ok)
	assert.Equal(t, "sigmoid", act.Name())

	_, ok = ActivationByName("softplus")
	assert.False(t, ok)
}

func TestNewShapes(t *testing.T) {
	n := New(3, 4, 2)

	require.Equal(t, 2, n.Depth())
	assert.Equal(t, []int{3, 4, 2}, n.Layout())
	assert.Equal(t, 3*4+4+4*2+2, n.NumParams())

	for l := 0; l < n.Depth(); l++ {
		assert.Equal(t, n.Activation(l).Cols(), n.Weights(l).Rows(), "layer %d", l)
		assert.Equal(t, n.Activation(l+1).Cols(), n.Weights(l).Cols(), "layer %d", l)
		assert.Equal(t, n.Activation(l+1).Cols(), n.Biases(l).Cols(), "layer %d", l)
		assert.Equal(t, 1, n.Biases(l).Rows())
	}
	assert.Same(t, n.Activation(0), n.Input())
	assert.Same(t, n.Activation(2), n.Output())
}

func TestNewInvalidLayout(t *testing.T) {
	assert.Panics(t, func() { New() })
	assert.Panics(t, func() { New(3) })
	assert.Panics(t, func() { New(2, 0, 1) })
}

func TestNewLike(t *testing.T) {
	n := NewWithActivation(Tanh{}, 2, 3, 1)
	n.Randomize(rand.New(rand.NewSource(1)), -1, 1)

	g := NewLike(n)
	assert.True(t, g.SameShape(n))
	assert.Equal(t, "tanh", g.Act().Name())
	assert.True(t, matrix.Equal(g.Weights(0), matrix.New(2, 3)), "twin starts zeroed")

	assert.False(t, n.SameShape(New(2, 3, 2)))
	assert.False(t, n.SameShape(New(2, 1)))
}

func TestForwardKnownValues(t *testing.T) {
	n := New(2, 1)
	n.Weights(0).Set(0, 0, 0.5)
	n.Weights(0).Set(1, 0, -1)
	n.Biases(0).Set(0, 0, 0.25)

	n.Input().Set(0, 0, 1)
	n.Input().Set(0, 1, 2)
	n.Forward()

	want := sigmoid(1*0.5 + 2*-1 + 0.25)
	assert.InDelta(t, want, n.Output().At(0, 0), 1e-6)
}

func TestForwardTwoLayers(t *testing.T) {
	n := New(1, 2, 1)
	n.Weights(0).Set(0, 0, 1)
	n.Weights(0).Set(0, 1, -1)
	n.Biases(0).Set(0, 1, 0.5)
	n.Weights(1).Set(0, 0, 2)
	n.Weights(1).Set(1, 0, 3)
	n.Biases(1).Set(0, 0, -1)

	in, err := matrix.FromSlice(1, 1, []float32{0.3})
	require.NoError(t, err)
	out := n.Predict(in)

	h0 := sigmoid(0.3)
	h1 := sigmoid(-0.3 + 0.5)
	want := sigmoid(2*h0 + 3*h1 - 1)
	assert.InDelta(t, want, out.At(0, 0), 1e-6)
	assert.InDelta(t, h1, n.Activation(1).At(0, 1), 1e-6)
}

func TestForwardDeterministic(t *testing.T) {
	n := New(3, 5, 2)
	n.Randomize(rand.New(rand.NewSource(42)), -1, 1)
	n.Input().Rand(rand.New(rand.NewSource(7)), 0, 1)

	n.Forward()
	first := n.Output().Clone()

	for i := 0; i < 3; i++ {
		n.Forward()
		assert.True(t, matrix.Equal(first, n.Output()), "forward pass %d changed the output", i)
	}
}

func TestRandomizeDeterministic(t *testing.T) {
	a := New(2, 3, 1)
	b := New(2, 3, 1)
	a.Randomize(rand.New(rand.NewSource(9)), 0, 1)
	b.Randomize(rand.New(rand.NewSource(9)), 0, 1)

	for l := 0; l < a.Depth(); l++ {
		assert.True(t, matrix.Equal(a.Weights(l), b.Weights(l)))
		assert.True(t, matrix.Equal(a.Biases(l), b.Biases(l)))
		for _, v := range a.Weights(l).Values() {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestZero(t *testing.T) {
	n := New(2, 2, 1)
	n.Randomize(rand.New(rand.NewSource(1)), 0, 1)
	n.Input().Fill(1)
	n.Forward()

	n.Zero()
	for l := 0; l < n.Depth(); l++ {
		assert.True(t, matrix.Equal(n.Weights(l), matrix.New(n.Weights(l).Rows(), n.Weights(l).Cols())))
		assert.True(t, matrix.Equal(n.Biases(l), matrix.New(1, n.Biases(l).Cols())))
	}
	for l := 0; l <= n.Depth(); l++ {
		assert.True(t, matrix.Equal(n.Activation(l), matrix.New(1, n.Activation(l).Cols())))
	}
}

func TestCopyParams(t *testing.T) {
	src := New(2, 2, 1)
	src.Randomize(rand.New(rand.NewSource(5)), -1, 1)

	dst := NewLike(src)
	dst.CopyParams(src)
	for l := 0; l < src.Depth(); l++ {
		assert.True(t, matrix.Equal(src.Weights(l), dst.Weights(l)))
		assert.True(t, matrix.Equal(src.Biases(l), dst.Biases(l)))
	}

	assert.Panics(t, func() { dst.CopyParams(New(2, 3, 1)) })
}

func TestString(t *testing.T) {
	n := New(2, 1)
	s := n.String()

	assert.Contains(t, s, "nn[2 1] sigmoid = {")
	assert.Contains(t, s, "    weights0[2x1] = [")
	assert.Contains(t, s, "    biases0[1x1] = [")
}
