package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ModelConfig is the architecture section of a model file
type ModelConfig struct {
	Transition       string    `json:"transition,omitempty"` // default "elman"
	InputSize        int       `json:"input_size"`
	HiddenSize       int       `json:"hidden_size"`
	OutputSize       int       `json:"output_size"`
	HiddenActivation string    `json:"hidden_activation,omitempty"` // default "tanh"
	OutputActivation string    `json:"output_activation,omitempty"` // default "linear"
	SoftmaxGroups    []int     `json:"softmax_groups,omitempty"`
	Feedback         string    `json:"feedback,omitempty"`   // "none" or "closed_loop"
	InitRange        []float64 `json:"init_range,omitempty"` // [lo, hi], default [-1, 1]
}

// Coefficients holds the raw coefficient arrays of a model, row-major
type Coefficients struct {
	WeightIH []float64 // [hiddenSize x inputSize]
	WeightHH []float64 // [hiddenSize x hiddenSize]
	BiasH    []float64 // [hiddenSize]
	Tau      []float64 // [hiddenSize], ctrnn only
	WeightOH []float64 // [outputSize x hiddenSize]
	BiasO    []float64 // [outputSize]

	InitialStates [][]float64 // each [hiddenSize]
}

// NewParameters validates cfg and coeffs against each other and builds an
// immutable Parameters. Every inconsistency is reported as ErrMalformedModel.
// The coefficient slices are copied.
func NewParameters(id string, cfg ModelConfig, coeffs Coefficients) (*Parameters, error) {
	if cfg.InputSize <= 0 || cfg.HiddenSize <= 0 || cfg.OutputSize <= 0 {
		return nil, fmt.Errorf("%w: sizes must be positive (input=%d hidden=%d output=%d)",
			ErrMalformedModel, cfg.InputSize, cfg.HiddenSize, cfg.OutputSize)
	}
	in, hid, out := cfg.InputSize, cfg.HiddenSize, cfg.OutputSize
	// Every matrix is hid rows by in, hid or out columns
	if in > math.MaxInt/hid || hid > math.MaxInt/hid || out > math.MaxInt/hid {
		return nil, fmt.Errorf("%w: sizes too large (input=%d hidden=%d output=%d)",
			ErrMalformedModel, in, hid, out)
	}

	p := &Parameters{
		ID:         id,
		InputSize:  in,
		HiddenSize: hid,
		OutputSize: out,
		InitRange:  DefaultInitRange,
	}

	var err error
	transition := cfg.Transition
	if transition == "" {
		transition = "elman"
	}
	if p.Transition, err = LookupTransition(transition); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}

	hiddenActivation := cfg.HiddenActivation
	if hiddenActivation == "" {
		hiddenActivation = "tanh"
	}
	if p.HiddenActivation, err = stringToActivation(hiddenActivation); err != nil {
		return nil, fmt.Errorf("%w: hidden activation: %w", ErrMalformedModel, err)
	}
	if p.HiddenActivation == ActivationSoftmax {
		return nil, fmt.Errorf("%w: softmax is only valid as an output activation", ErrMalformedModel)
	}

	outputActivation := cfg.OutputActivation
	if outputActivation == "" {
		outputActivation = "linear"
	}
	if p.OutputActivation, err = stringToActivation(outputActivation); err != nil {
		return nil, fmt.Errorf("%w: output activation: %w", ErrMalformedModel, err)
	}

	if len(cfg.SoftmaxGroups) > 0 {
		if p.OutputActivation != ActivationSoftmax {
			return nil, fmt.Errorf("%w: softmax_groups given for %s output", ErrMalformedModel, outputActivation)
		}
		total := 0
		for i, size := range cfg.SoftmaxGroups {
			if size <= 0 {
				return nil, fmt.Errorf("%w: softmax group %d has size %d", ErrMalformedModel, i, size)
			}
			total += size
		}
		if total != out {
			return nil, fmt.Errorf("%w: softmax groups cover %d outputs, want %d", ErrMalformedModel, total, out)
		}
		p.SoftmaxGroups = append([]int(nil), cfg.SoftmaxGroups...)
	}

	if p.Feedback, err = stringToFeedback(cfg.Feedback); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedModel, err)
	}
	if p.Feedback == FeedbackClosedLoop && in != out {
		return nil, fmt.Errorf("%w: closed_loop feedback needs input_size == output_size (%d != %d)",
			ErrMalformedModel, in, out)
	}

	switch len(cfg.InitRange) {
	case 0:
	case 2:
		lo, hi := cfg.InitRange[0], cfg.InitRange[1]
		if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) || !(lo < hi) {
			return nil, fmt.Errorf("%w: init_range [%g, %g] is not a finite interval", ErrMalformedModel, lo, hi)
		}
		p.InitRange = [2]float64{lo, hi}
	default:
		return nil, fmt.Errorf("%w: init_range has %d values, want 2", ErrMalformedModel, len(cfg.InitRange))
	}

	if p.WeightIH, err = denseFrom("weight_ih", coeffs.WeightIH, hid, in); err != nil {
		return nil, err
	}
	if p.WeightHH, err = denseFrom("weight_hh", coeffs.WeightHH, hid, hid); err != nil {
		return nil, err
	}
	if p.BiasH, err = vecFrom("bias_h", coeffs.BiasH, hid); err != nil {
		return nil, err
	}
	if p.WeightOH, err = denseFrom("weight_oh", coeffs.WeightOH, out, hid); err != nil {
		return nil, err
	}
	if p.BiasO, err = vecFrom("bias_o", coeffs.BiasO, out); err != nil {
		return nil, err
	}
	if len(coeffs.Tau) > 0 {
		if p.Tau, err = vecFrom("tau", coeffs.Tau, hid); err != nil {
			return nil, err
		}
	}

	if err := p.Transition.Validate(p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedModel, p.Transition.Name(), err)
	}

	p.initialStates = make([][]float64, len(coeffs.InitialStates))
	for i, state := range coeffs.InitialStates {
		if len(state) != hid {
			return nil, fmt.Errorf("%w: initial state %d has %d values, want %d",
				ErrMalformedModel, i, len(state), hid)
		}
		p.initialStates[i] = append([]float64(nil), state...)
	}

	p.valid = true
	return p, nil
}

// Config returns the architecture section describing p
func (p *Parameters) Config() ModelConfig {
	cfg := ModelConfig{
		Transition:       p.Transition.Name(),
		InputSize:        p.InputSize,
		HiddenSize:       p.HiddenSize,
		OutputSize:       p.OutputSize,
		HiddenActivation: activationToString(p.HiddenActivation),
		OutputActivation: activationToString(p.OutputActivation),
		Feedback:         feedbackToString(p.Feedback),
		InitRange:        []float64{p.InitRange[0], p.InitRange[1]},
	}
	if len(p.SoftmaxGroups) > 0 {
		cfg.SoftmaxGroups = append([]int(nil), p.SoftmaxGroups...)
	}
	return cfg
}

// Coefficients returns copies of the raw coefficient arrays of p
func (p *Parameters) Coefficients() Coefficients {
	c := Coefficients{
		WeightIH: denseData(p.WeightIH),
		WeightHH: denseData(p.WeightHH),
		BiasH:    vecData(p.BiasH),
		WeightOH: denseData(p.WeightOH),
		BiasO:    vecData(p.BiasO),
	}
	if p.Tau != nil {
		c.Tau = vecData(p.Tau)
	}
	c.InitialStates = make([][]float64, len(p.initialStates))
	for i, state := range p.initialStates {
		c.InitialStates[i] = append([]float64(nil), state...)
	}
	return c
}

func denseFrom(name string, data []float64, rows, cols int) (*mat.Dense, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %s has %d values, want %d (%dx%d)",
			ErrMalformedModel, name, len(data), rows*cols, rows, cols)
	}
	return mat.NewDense(rows, cols, append([]float64(nil), data...)), nil
}

func vecFrom(name string, data []float64, n int) (*mat.VecDense, error) {
	if len(data) != n {
		return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrMalformedModel, name, len(data), n)
	}
	return mat.NewVecDense(n, append([]float64(nil), data...)), nil
}

func denseData(m *mat.Dense) []float64 {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, m.RawRowView(i)...)
	}
	return data
}

func vecData(v *mat.VecDense) []float64 {
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return data
}
