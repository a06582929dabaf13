package optim

import "github.com/born-ml/nero/internal/nn"

// SGD is plain gradient descent with an adjustable learning rate.
//
// Increase multiplies the rate by Mul; Decrease divides it by Mul but never
// goes below MinLR; Reset restores the initial rate.
type SGD struct {
	lr      float32
	initial float32
	minLR   float32
	mul     float32
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR    float32 // Learning rate (default: 0.1)
	MinLR float32 // Floor for Decrease (default: 0.01)
	Mul   float32 // Factor used by Increase/Decrease (default: 2)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.1
	}
	if config.MinLR == 0 {
		config.MinLR = 0.01
	}
	if config.Mul == 0 {
		config.Mul = 2
	}
	return &SGD{
		lr:      config.LR,
		initial: config.LR,
		minLR:   config.MinLR,
		mul:     config.Mul,
	}
}

// Step applies one update with the current learning rate.
func (s *SGD) Step(n, grad *nn.Network) {
	Learn(n, grad, s.lr)
}

// LR returns the current learning rate.
func (s *SGD) LR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

// Increase multiplies the learning rate by Mul.
func (s *SGD) Increase() {
	s.lr *= s.mul
}

// Decrease divides the learning rate by Mul, clamped to MinLR.
func (s *SGD) Decrease() {
	s.lr = max(s.minLR, s.lr/s.mul)
}

// Reset restores the initial learning rate.
func (s *SGD) Reset() {
	s.lr = s.initial
}
