package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RunnerState is a snapshot of the mutable state of a Runner
type RunnerState struct {
	Hidden    []float64
	Output    []float64
	StepCount uint64
}

// Runner replays a trained network one step at a time. It is not safe for
// concurrent use; independent Runners may share one Parameters.
type Runner struct {
	params *Parameters
	rng    RandomSource

	hidden *mat.VecDense // current hidden state
	output *mat.VecDense // readout of hidden after the last step

	// Work vectors reused across steps
	next    *mat.VecDense
	input   *mat.VecDense
	emitted *mat.VecDense
	scratch *mat.VecDense

	stepCount uint64
	ready     bool
}

// NewRunner creates an uninitialized runner over params. rng is consumed only
// by random initialization and may be nil when only stored states are used.
// It panics if params was not built by NewParameters or LoadModel.
func NewRunner(params *Parameters, rng RandomSource) *Runner {
	if params == nil || !params.valid {
		panic(errInvalidParameters)
	}
	return &Runner{
		params:  params,
		rng:     rng,
		hidden:  mat.NewVecDense(params.HiddenSize, nil),
		output:  mat.NewVecDense(params.OutputSize, nil),
		next:    mat.NewVecDense(params.HiddenSize, nil),
		input:   mat.NewVecDense(params.InputSize, nil),
		emitted: mat.NewVecDense(params.HiddenSize, nil),
		scratch: mat.NewVecDense(params.HiddenSize, nil),
	}
}

// Initialize sets the hidden state used by the first step. It may be called
// again at any time to restart the trajectory. On error the runner is left
// unchanged.
func (r *Runner) Initialize(init InitialState) error {
	hidden := r.hidden.RawVector().Data

	if init.Random() {
		if r.rng == nil {
			return ErrNoRandomSource
		}
		sampleUniform(hidden, r.rng, r.params.InitRange[0], r.params.InitRange[1])
	} else {
		index := init.Index()
		if index < 0 || index >= r.params.NumInitialStates() {
			return fmt.Errorf("%w: %d (model has %d stored states)",
				ErrInvalidIndex, index, r.params.NumInitialStates())
		}
		copy(hidden, r.params.initialStates[index])
	}

	r.output.Zero()
	r.stepCount = 0
	r.ready = true
	return nil
}

// Step advances the hidden state once and recomputes the output from it.
// It never consumes randomness.
func (r *Runner) Step() error {
	if !r.ready {
		return ErrNotInitialized
	}

	p := r.params
	if p.Feedback == FeedbackClosedLoop {
		p.Transition.Emit(p, r.emitted, r.hidden)
		p.readout(r.input, r.emitted)
	} else {
		r.input.Zero()
	}

	p.Transition.Advance(p, r.next, r.hidden, r.input, r.scratch)
	r.hidden, r.next = r.next, r.hidden

	p.Transition.Emit(p, r.emitted, r.hidden)
	p.readout(r.output, r.emitted)

	r.stepCount++
	return nil
}

// Output returns a copy of the output of the last step, in output-layer order
func (r *Runner) Output() []float64 {
	out := make([]float64, r.params.OutputSize)
	r.OutputInto(out)
	return out
}

// OutputInto copies the output of the last step into dst and returns the
// number of values copied
func (r *Runner) OutputInto(dst []float64) int {
	return copy(dst, r.output.RawVector().Data)
}

// Hidden returns a copy of the current hidden state
func (r *Runner) Hidden() []float64 {
	return append([]float64(nil), r.hidden.RawVector().Data...)
}

// State returns a deep copy of the runner's mutable state
func (r *Runner) State() RunnerState {
	return RunnerState{
		Hidden:    r.Hidden(),
		Output:    r.Output(),
		StepCount: r.stepCount,
	}
}

// Restore installs a previously captured state and marks the runner ready
func (r *Runner) Restore(state RunnerState) error {
	if len(state.Hidden) != r.params.HiddenSize || len(state.Output) != r.params.OutputSize {
		return fmt.Errorf("%w: hidden %d/%d, output %d/%d", ErrStateMismatch,
			len(state.Hidden), r.params.HiddenSize, len(state.Output), r.params.OutputSize)
	}
	copy(r.hidden.RawVector().Data, state.Hidden)
	copy(r.output.RawVector().Data, state.Output)
	r.stepCount = state.StepCount
	r.ready = true
	return nil
}

// Parameters returns the model the runner replays
func (r *Runner) Parameters() *Parameters { return r.params }

// Ready reports whether Initialize or Restore has been called
func (r *Runner) Ready() bool { return r.ready }

// StepCount returns the number of steps since the last initialization
func (r *Runner) StepCount() uint64 { return r.stepCount }

// InputSize returns the length of the transition input vector
func (r *Runner) InputSize() int { return r.params.InputSize }

// HiddenSize returns the length of the hidden state
func (r *Runner) HiddenSize() int { return r.params.HiddenSize }

// OutputSize returns the length of the output vector
func (r *Runner) OutputSize() int { return r.params.OutputSize }
