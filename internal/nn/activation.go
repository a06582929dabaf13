package nn

import "github.com/chewxy/math32"

// Activation is a pointwise nonlinearity whose derivative can be computed
// from its output alone. Backprop only has post-activation values at hand,
// so this is the only form it needs.
type Activation interface {
	// Name identifies the activation in dumps and configs.
	Name() string

	// Apply maps a pre-activation x to the activation output y.
	Apply(x float32) float32

	// DerivFromOutput returns dy/dx given y = Apply(x).
	DerivFromOutput(y float32) float32
}

// Sigmoid is the logistic function σ(x) = 1/(1+e^-x), σ' = y(1-y).
type Sigmoid struct{}

// Name implements Activation.
func (Sigmoid) Name() string { return "sigmoid" }

// Apply implements Activation.
func (Sigmoid) Apply(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// DerivFromOutput implements Activation.
func (Sigmoid) DerivFromOutput(y float32) float32 {
	return y * (1 - y)
}

// Tanh is the hyperbolic tangent, tanh' = 1 - y².
type Tanh struct{}

// Name implements Activation.
func (Tanh) Name() string { return "tanh" }

// Apply implements Activation.
func (Tanh) Apply(x float32) float32 {
	return math32.Tanh(x)
}

// DerivFromOutput implements Activation.
func (Tanh) DerivFromOutput(y float32) float32 {
	return 1 - y*y
}

// ReLU is max(0, x). Its derivative at 0 is taken as 0.
type ReLU struct{}

// Name implements Activation.
func (ReLU) Name() string { return "relu" }

// Apply implements Activation.
func (ReLU) Apply(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

// DerivFromOutput implements Activation.
func (ReLU) DerivFromOutput(y float32) float32 {
	if y > 0 {
		return 1
	}
	return 0
}

// ActivationByName returns the activation registered under name.
func ActivationByName(name string) (Activation, bool) {
	switch name {
	case "", "sigmoid":
		return Sigmoid{}, true
	case "tanh":
		return Tanh{}, true
	case "relu":
		return ReLU{}, true
	default:
		return nil, false
	}
}
