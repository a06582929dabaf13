package trainer

import (
	"fmt"

	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
)

// Accuracy returns the fraction of rows for which every output, cut at
// threshold, agrees with the label cut the same way.
func Accuracy(net *nn.Network, tIn, tOut *matrix.Matrix, threshold float32) float64 {
	if tIn.Rows() != tOut.Rows() {
		panic(fmt.Sprintf("trainer.Accuracy: %d input rows vs %d output rows", tIn.Rows(), tOut.Rows()))
	}
	hits := 0
	for i := 0; i < tIn.Rows(); i++ {
		out := net.Predict(tIn.Row(i))
		ok := true
		for j := 0; j < out.Cols(); j++ {
			if (out.At(0, j) >= threshold) != (tOut.At(i, j) >= threshold) {
				ok = false
				break
			}
		}
		if ok {
			hits++
		}
	}
	return float64(hits) / float64(tIn.Rows())
}
