package nn

import (
	"gonum.org/v1/gonum/mat"
)

// elmanTransition is the simple recurrent network update
// h_t = f(W_ih x_t + W_hh h_{t-1} + b_h)
type elmanTransition struct{}

func (elmanTransition) Name() string { return "elman" }

func (elmanTransition) Validate(p *Parameters) error { return nil }

func (elmanTransition) Advance(p *Parameters, next, hidden, input, scratch *mat.VecDense) {
	// W_hh @ h_{t-1}
	next.MulVec(p.WeightHH, hidden)

	// W_ih @ x_t
	scratch.MulVec(p.WeightIH, input)

	next.AddVec(next, scratch)
	next.AddVec(next, p.BiasH)

	activateInPlace(next.RawVector().Data, p.HiddenActivation)
}

func (elmanTransition) Emit(p *Parameters, dst, hidden *mat.VecDense) {
	dst.CopyVec(hidden)
}
