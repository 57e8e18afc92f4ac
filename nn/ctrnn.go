package nn

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ctrnnTransition is a continuous-time recurrent network discretized with
// unit step. The hidden state holds the internal potentials u; the neurons
// fire f(u).
//
//	u_t = (1 - 1/tau) u_{t-1} + (1/tau) (W_ih x_t + W_hh f(u_{t-1}) + b_h)
type ctrnnTransition struct{}

func (ctrnnTransition) Name() string { return "ctrnn" }

func (ctrnnTransition) Validate(p *Parameters) error {
	if p.Tau == nil {
		return errors.New("ctrnn requires tau")
	}
	if p.Tau.Len() != p.HiddenSize {
		return fmt.Errorf("tau has %d values, want %d", p.Tau.Len(), p.HiddenSize)
	}
	for i, tau := range p.Tau.RawVector().Data {
		// tau < 1 overshoots the target potential every step
		if !(tau >= 1) {
			return fmt.Errorf("tau[%d] = %g, want >= 1", i, tau)
		}
	}
	return nil
}

func (t ctrnnTransition) Advance(p *Parameters, next, hidden, input, scratch *mat.VecDense) {
	// W_hh @ f(u_{t-1})
	t.Emit(p, scratch, hidden)
	next.MulVec(p.WeightHH, scratch)

	// W_ih @ x_t
	scratch.MulVec(p.WeightIH, input)

	next.AddVec(next, scratch)
	next.AddVec(next, p.BiasH)

	u := hidden.RawVector().Data
	target := next.RawVector().Data
	tau := p.Tau.RawVector().Data
	for i := range target {
		target[i] = (1-1/tau[i])*u[i] + target[i]/tau[i]
	}
}

func (ctrnnTransition) Emit(p *Parameters, dst, hidden *mat.VecDense) {
	dst.CopyVec(hidden)
	activateInPlace(dst.RawVector().Data, p.HiddenActivation)
}
