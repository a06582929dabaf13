// Package batch drives minibatch gradient descent over a shuffled working
// copy of a dataset.
//
// Each call to Config.Run is one epoch: the rows are reshuffled, cut into
// BatchCount contiguous chunks, and every chunk gets one backprop step
// followed by one learn step.
package batch

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/nero/internal/autodiff"
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
	"github.com/born-ml/nero/internal/optim"
)

// Config holds the working copy of a dataset and the cost of the last
// completed epoch.
type Config struct {
	batchCount int
	in, out    *matrix.Matrix
	rng        *rand.Rand
	cost       float32
}

// New copies tIn and tOut into owned working matrices. The caller's data is
// never reordered. rng drives the per-epoch shuffle.
func New(batchCount int, tIn, tOut *matrix.Matrix, rng *rand.Rand) *Config {
	if batchCount < 1 {
		panic(fmt.Sprintf("batch.New: batch count %d", batchCount))
	}
	if tIn.Rows() != tOut.Rows() {
		panic(fmt.Sprintf("batch.New: %d input rows vs %d output rows", tIn.Rows(), tOut.Rows()))
	}
	if rng == nil {
		panic("batch.New: nil random source")
	}
	return &Config{
		batchCount: batchCount,
		in:         tIn.Clone(),
		out:        tOut.Clone(),
		rng:        rng,
	}
}

// Inputs returns the working input matrix in its current order.
func (c *Config) Inputs() *matrix.Matrix { return c.in }

// Outputs returns the working output matrix in its current order.
func (c *Config) Outputs() *matrix.Matrix { return c.out }

// Cost returns the mean chunk cost of the last successful epoch.
func (c *Config) Cost() float32 { return c.cost }

// BatchCount returns the requested number of chunks per epoch.
func (c *Config) BatchCount() int { return c.batchCount }

// BatchSize returns the number of rows per chunk. The last chunk of an
// epoch may be shorter. When BatchCount exceeds the row count every chunk
// is a single row and fewer than BatchCount steps are taken.
func (c *Config) BatchSize() int {
	rows := c.in.Rows()
	return (rows + c.batchCount - 1) / c.batchCount
}

// Run performs one epoch and returns the mean of the per-chunk costs, each
// measured right after that chunk's learn step.
//
// If the cost or any parameter of n becomes NaN or Inf, Run returns an
// error wrapping autodiff.ErrNonFinite together with the previous cost.
// The network is left as it is.
func (c *Config) Run(n, grad *nn.Network, rate float32) (float32, error) {
	Shuffle(c.rng, c.in, c.out)

	rows := c.in.Rows()
	size := c.BatchSize()

	var total float32
	chunks := 0
	for start := 0; start < rows; start += size {
		cnt := min(size, rows-start)
		in := c.in.View(start, 0, cnt, c.in.Cols())
		out := c.out.View(start, 0, cnt, c.out.Cols())

		autodiff.Backprop(n, grad, in, out)
		optim.Learn(n, grad, rate)
		total += autodiff.Cost(n, in, out)
		chunks++
	}

	mean := total / float32(chunks)
	if err := autodiff.CheckCost(mean); err != nil {
		return c.cost, errors.Wrapf(err, "batch: epoch of %d chunks", chunks)
	}
	if err := autodiff.CheckFinite(n); err != nil {
		return c.cost, errors.Wrapf(err, "batch: epoch of %d chunks", chunks)
	}
	c.cost = mean
	return c.cost, nil
}
