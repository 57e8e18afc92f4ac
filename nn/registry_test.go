package nn

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// holdTransition keeps the hidden state unchanged
type holdTransition struct{}

func (holdTransition) Name() string { return "test_hold" }

func (holdTransition) Validate(p *Parameters) error { return nil }

func (holdTransition) Advance(p *Parameters, next, hidden, input, scratch *mat.VecDense) {
	next.CopyVec(hidden)
}

func (holdTransition) Emit(p *Parameters, dst, hidden *mat.VecDense) {
	dst.CopyVec(hidden)
}

func TestBuiltinTransitions(t *testing.T) {
	names := ListTransitions()
	require.Contains(t, names, "elman")
	require.Contains(t, names, "ctrnn")

	_, err := LookupTransition("lstm")
	require.ErrorIs(t, err, ErrUnknownTransition)
}

func TestRegisterTransition(t *testing.T) {
	RegisterTransition(holdTransition{})
	t.Cleanup(func() { unregisterTransition("test_hold") })

	params, err := NewParameters("hold", ModelConfig{
		Transition: "test_hold",
		InputSize:  1,
		HiddenSize: 2,
		OutputSize: 1,
	}, Coefficients{
		WeightIH:      []float64{0, 0},
		WeightHH:      []float64{0, 0, 0, 0},
		BiasH:         []float64{0, 0},
		WeightOH:      []float64{1, 2},
		BiasO:         []float64{0},
		InitialStates: [][]float64{{1, 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "test_hold", params.Config().Transition)

	runner := NewRunner(params, nil)
	require.NoError(t, runner.Initialize(UseStoredIndex(0)))
	for i := 0; i < 3; i++ {
		require.NoError(t, runner.Step())
		require.Equal(t, []float64{3}, runner.Output())
	}
}

// shiftTransition is holdTransition under a per-instance name
type shiftTransition struct {
	holdTransition
	name string
}

func (s shiftTransition) Name() string { return s.name }

func TestRegisterTransitionConcurrentWithLoading(t *testing.T) {
	base := identityPlusBias(t)
	cfg, coeffs := base.Config(), base.Coefficients()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("test_shift_%d", i)
		t.Cleanup(func() { unregisterTransition(name) })

		wg.Add(2)
		go func() {
			defer wg.Done()
			RegisterTransition(shiftTransition{name: name})
		}()
		go func() {
			defer wg.Done()
			_, err := NewParameters("concurrent", cfg, coeffs)
			assert.NoError(t, err)
			assert.Contains(t, ListTransitions(), "elman")
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		_, err := LookupTransition(fmt.Sprintf("test_shift_%d", i))
		require.NoError(t, err)
	}
}
