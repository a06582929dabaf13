package batch

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/nero/internal/matrix"
)

// Shuffle permutes the rows of tIn and tOut with one Fisher-Yates pass,
// applying the same permutation to both so that sample pairs stay aligned.
func Shuffle(rng *rand.Rand, tIn, tOut *matrix.Matrix) {
	if tIn.Rows() != tOut.Rows() {
		panic(fmt.Sprintf("batch.Shuffle: %d input rows vs %d output rows", tIn.Rows(), tOut.Rows()))
	}
	for i := tIn.Rows() - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		if j == i {
			continue
		}
		matrix.SwapRows(tIn.Row(i), tIn.Row(j))
		matrix.SwapRows(tOut.Row(i), tOut.Row(j))
	}
}
