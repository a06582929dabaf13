package batch

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nero/internal/autodiff"
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
	"github.com/born-ml/nero/internal/optim"
)

func xor() (tIn, tOut *matrix.Matrix) {
	table := matrix.Wrap(4, 3, 3, []float32{
		0, 0, 0,
		1, 0, 1,
		0, 1, 1,
		1, 1, 0,
	})
	return table.View(0, 0, 4, 2), table.View(0, 2, 4, 1)
}

// tagged returns rows whose input is (id, -id) and whose output is 10*id.
func tagged(rows int) (tIn, tOut *matrix.Matrix) {
	tIn = matrix.New(rows, 2)
	tOut = matrix.New(rows, 1)
	for i := 0; i < rows; i++ {
		tIn.Set(i, 0, float32(i))
		tIn.Set(i, 1, float32(-i))
		tOut.Set(i, 0, float32(10*i))
	}
	return tIn, tOut
}

func TestShuffleKeepsPairs(t *testing.T) {
	tIn, tOut := tagged(50)
	Shuffle(rand.New(rand.NewSource(1)), tIn, tOut)

	ids := make([]int, 0, 50)
	moved := false
	for i := 0; i < 50; i++ {
		id := tIn.At(i, 0)
		assert.Equal(t, -id, tIn.At(i, 1), "row %d input torn apart", i)
		assert.Equal(t, 10*id, tOut.At(i, 0), "row %d lost its label", i)
		ids = append(ids, int(id))
		if int(id) != i {
			moved = true
		}
	}
	assert.True(t, moved, "50 rows should not come back in order")

	sort.Ints(ids)
	for i, id := range ids {
		assert.Equal(t, i, id, "shuffle must be a permutation")
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a, aOut := tagged(20)
	b, bOut := tagged(20)
	Shuffle(rand.New(rand.NewSource(5)), a, aOut)
	Shuffle(rand.New(rand.NewSource(5)), b, bOut)

	assert.True(t, matrix.Equal(a, b))
	assert.True(t, matrix.Equal(aOut, bOut))
}

func TestShuffleThroughViews(t *testing.T) {
	tIn, tOut := xor()
	Shuffle(rand.New(rand.NewSource(3)), tIn, tOut)

	for i := 0; i < 4; i++ {
		x, y := tIn.At(i, 0), tIn.At(i, 1)
		want := float32(0)
		if x != y {
			want = 1
		}
		assert.Equal(t, want, tOut.At(i, 0), "row %d", i)
	}
	assert.Panics(t, func() { Shuffle(rand.New(rand.NewSource(1)), tIn, matrix.New(3, 1)) })
}

func TestNew(t *testing.T) {
	tIn, tOut := tagged(10)
	c := New(3, tIn, tOut, rand.New(rand.NewSource(1)))

	assert.Equal(t, 3, c.BatchCount())
	assert.Equal(t, 4, c.BatchSize())
	assert.Zero(t, c.Cost())
	assert.False(t, c.Inputs().IsView())
	assert.True(t, matrix.Equal(tIn, c.Inputs()))
	assert.True(t, matrix.Equal(tOut, c.Outputs()))

	// Working copies are independent of the caller's data.
	c.Inputs().Set(0, 0, 99)
	assert.Equal(t, float32(0), tIn.At(0, 0))

	assert.Equal(t, 1, New(10, tIn, tOut, rand.New(rand.NewSource(1))).BatchSize())
	assert.Equal(t, 1, New(25, tIn, tOut, rand.New(rand.NewSource(1))).BatchSize())
	assert.Equal(t, 10, New(1, tIn, tOut, rand.New(rand.NewSource(1))).BatchSize())
}

func TestNewPreconditions(t *testing.T) {
	tIn, tOut := tagged(4)
	rng := rand.New(rand.NewSource(1))

	assert.Panics(t, func() { New(0, tIn, tOut, rng) })
	assert.Panics(t, func() { New(1, tIn, matrix.New(3, 1), rng) })
	assert.Panics(t, func() { New(1, tIn, tOut, nil) })
}

func TestRunSingleBatchMatchesDirectStep(t *testing.T) {
	tIn, tOut := xor()
	n := nn.New(2, 2, 1)
	n.Randomize(rand.New(rand.NewSource(7)), 0, 1)
	ref := nn.NewLike(n)
	ref.CopyParams(n)

	c := New(1, tIn, tOut, rand.New(rand.NewSource(11)))
	got, err := c.Run(n, nn.NewLike(n), 0.5)
	require.NoError(t, err)

	// Same shuffle, then one backprop and learn on the whole dataset.
	in, out := tIn.Clone(), tOut.Clone()
	Shuffle(rand.New(rand.NewSource(11)), in, out)
	grad := nn.NewLike(ref)
	autodiff.Backprop(ref, grad, in, out)
	optim.Learn(ref, grad, 0.5)

	assert.True(t, matrix.Equal(in, c.Inputs()))
	assert.Less(t, autodiff.MaxAbsDiff(n, ref), 1e-6)
	assert.InDelta(t, autodiff.Cost(ref, in, out), got, 1e-6)
	assert.Equal(t, got, c.Cost())
}

func TestRunShortLastChunk(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	tIn := matrix.New(5, 3)
	tOut := matrix.New(5, 2)
	tIn.Rand(rng, 0, 1)
	tOut.Rand(rng, 0, 1)

	n := nn.New(3, 4, 2)
	n.Randomize(rand.New(rand.NewSource(3)), -1, 1)
	ref := nn.NewLike(n)
	ref.CopyParams(n)

	c := New(2, tIn, tOut, rand.New(rand.NewSource(4)))
	require.Equal(t, 3, c.BatchSize())
	got, err := c.Run(n, nn.NewLike(n), 0.3)
	require.NoError(t, err)

	in, out := tIn.Clone(), tOut.Clone()
	Shuffle(rand.New(rand.NewSource(4)), in, out)
	grad := nn.NewLike(ref)
	var total float32
	for _, chunk := range [][2]int{{0, 3}, {3, 2}} {
		ci := in.View(chunk[0], 0, chunk[1], 3)
		co := out.View(chunk[0], 0, chunk[1], 2)
		autodiff.Backprop(ref, grad, ci, co)
		optim.Learn(ref, grad, 0.3)
		total += autodiff.Cost(ref, ci, co)
	}

	assert.Less(t, autodiff.MaxAbsDiff(n, ref), 1e-6)
	assert.InDelta(t, total/2, got, 1e-6)
}

func TestRunMoreBatchesThanRows(t *testing.T) {
	tIn, tOut := xor()
	n := nn.New(2, 2, 1)
	n.Randomize(rand.New(rand.NewSource(1)), 0, 1)

	c := New(9, tIn, tOut, rand.New(rand.NewSource(1)))
	cost, err := c.Run(n, nn.NewLike(n), 0.1)
	require.NoError(t, err)
	assert.Greater(t, cost, float32(0))
}

func TestRunNonFinite(t *testing.T) {
	tIn, tOut := xor()
	n := nn.New(2, 2, 1)
	n.Randomize(rand.New(rand.NewSource(1)), 0, 1)
	grad := nn.NewLike(n)
	c := New(2, tIn, tOut, rand.New(rand.NewSource(1)))

	first, err := c.Run(n, grad, 0.1)
	require.NoError(t, err)

	cost, err := c.Run(n, grad, float32(math.Inf(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, autodiff.ErrNonFinite))
	assert.Equal(t, first, cost)
	assert.Equal(t, first, c.Cost(), "failed epoch must not overwrite the cost")
}

func TestRunTrainsXOR(t *testing.T) {
	if testing.Short() {
		t.Skip("long training run")
	}
	tIn, tOut := xor()

	// Some initialisations settle in the flat region around cost 0.125;
	// try a fixed list of seeds and keep the first that converges.
	for seed := int64(1); seed <= 12; seed++ {
		rng := rand.New(rand.NewSource(seed))
		n := nn.New(2, 2, 1)
		n.Randomize(rng, 0, 1)
		grad := nn.NewLike(n)
		c := New(1, tIn, tOut, rng)

		for epoch := 0; epoch < 50000; epoch++ {
			_, err := c.Run(n, grad, 0.1)
			require.NoError(t, err)
		}
		if autodiff.Cost(n, tIn, tOut) >= 0.05 {
			continue
		}

		for i := 0; i < tIn.Rows(); i++ {
			y := n.Predict(tIn.Row(i)).At(0, 0)
			want := tOut.At(i, 0)
			assert.Equal(t, want, float32(math.Round(float64(y))), "seed %d row %d predicted %.3f", seed, i, y)
		}
		return
	}
	t.Fatal("no seed trained XOR below cost 0.05")
}
