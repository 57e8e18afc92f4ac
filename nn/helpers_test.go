package nn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// identityPlusBias builds a 1-2-1 elman model whose hidden state advances by
// h' = h + [1, 0.5] and whose output is the sum of the hidden components.
func identityPlusBias(t *testing.T) *Parameters {
	t.Helper()

	params, err := NewParameters("identity-plus-bias", ModelConfig{
		Transition:       "elman",
		InputSize:        1,
		HiddenSize:       2,
		OutputSize:       1,
		HiddenActivation: "linear",
		OutputActivation: "linear",
	}, Coefficients{
		WeightIH: []float64{0, 0},
		WeightHH: []float64{1, 0, 0, 1},
		BiasH:    []float64{1, 0.5},
		WeightOH: []float64{1, 1},
		BiasO:    []float64{0},
		InitialStates: [][]float64{
			{0, 0},
			{10, -10},
		},
	})
	require.NoError(t, err)
	return params
}

// tanhModel builds a small nonlinear elman model with two stored states
func tanhModel(t *testing.T) *Parameters {
	t.Helper()

	params, err := NewParameters("tanh", ModelConfig{
		InputSize:        2,
		HiddenSize:       3,
		OutputSize:       2,
		OutputActivation: "tanh",
		Feedback:         "closed_loop",
		InitRange:        []float64{-0.5, 0.5},
	}, Coefficients{
		WeightIH: []float64{0.3, -0.2, 0.1, 0.4, -0.5, 0.2},
		WeightHH: []float64{0.9, -0.3, 0.2, 0.1, 0.8, -0.4, -0.2, 0.3, 0.7},
		BiasH:    []float64{0.05, -0.1, 0.02},
		WeightOH: []float64{0.6, -0.4, 0.3, -0.2, 0.5, 0.7},
		BiasO:    []float64{0.01, -0.02},
		InitialStates: [][]float64{
			{0.1, 0.2, 0.3},
			{-0.4, 0.0, 0.25},
		},
	})
	require.NoError(t, err)
	return params
}

// countingSource is a deterministic RandomSource that counts draws
type countingSource struct {
	next  float64
	draws int
}

func (s *countingSource) Float64() float64 {
	s.draws++
	s.next += 0.125
	if s.next >= 1 {
		s.next = 0
	}
	return s.next
}
