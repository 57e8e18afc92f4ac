package nn

import (
	"gonum.org/v1/gonum/mat"
)

// ActivationType defines the activation function applied by a layer
type ActivationType int

const (
	ActivationScaledReLU ActivationType = 0 // v * 1.1, then ReLU
	ActivationSigmoid    ActivationType = 1 // 1 / (1 + exp(-v))
	ActivationTanh       ActivationType = 2 // tanh(v)
	ActivationSoftplus   ActivationType = 3 // log(1 + exp(v))
	ActivationLeakyReLU  ActivationType = 4 // v if v >= 0, else v * 0.1
	ActivationLinear     ActivationType = 5 // v
	ActivationSoftmax    ActivationType = 6 // grouped softmax, readout only
)

// FeedbackMode selects the input presented to the transition at each step
type FeedbackMode int

const (
	FeedbackNone       FeedbackMode = 0 // zero input vector
	FeedbackClosedLoop FeedbackMode = 1 // previous readout fed back as input
)

// DefaultInitRange is the range random initial states are drawn from when
// a model file does not declare one.
var DefaultInitRange = [2]float64{-1, 1}

// Parameters holds the coefficients and topology of a trained network. It
// must come from NewParameters or LoadModel and must not be modified
// afterwards; it may then be shared by any number of Runners.
type Parameters struct {
	ID string

	InputSize  int
	HiddenSize int
	OutputSize int

	Transition       Transition
	HiddenActivation ActivationType
	OutputActivation ActivationType
	SoftmaxGroups    []int // group sizes for softmax readout, summing to OutputSize
	Feedback         FeedbackMode
	InitRange        [2]float64 // [lo, hi) for random initial states

	WeightIH *mat.Dense    // [hiddenSize x inputSize]
	WeightHH *mat.Dense    // [hiddenSize x hiddenSize]
	BiasH    *mat.VecDense // [hiddenSize]
	Tau      *mat.VecDense // [hiddenSize], time constants (ctrnn only)
	WeightOH *mat.Dense    // [outputSize x hiddenSize]
	BiasO    *mat.VecDense // [outputSize]

	// Per-training-example hidden states, each of length HiddenSize
	initialStates [][]float64

	valid bool // set once NewParameters has checked every dimension
}

// NumInitialStates returns the number of stored initial states
func (p *Parameters) NumInitialStates() int {
	return len(p.initialStates)
}

// InitialState returns a copy of the stored initial state at index
func (p *Parameters) InitialState(index int) ([]float64, bool) {
	if index < 0 || index >= len(p.initialStates) {
		return nil, false
	}
	state := make([]float64, len(p.initialStates[index]))
	copy(state, p.initialStates[index])
	return state, true
}
