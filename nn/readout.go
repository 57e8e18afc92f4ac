package nn

import (
	"gonum.org/v1/gonum/mat"
)

// readout computes y = g(W_oh e + b_o) into dst, where e is the emitted
// hidden activation
func (p *Parameters) readout(dst, emitted *mat.VecDense) {
	dst.MulVec(p.WeightOH, emitted)
	dst.AddVec(dst, p.BiasO)

	data := dst.RawVector().Data
	if p.OutputActivation == ActivationSoftmax {
		softmaxGroups(data, p.SoftmaxGroups)
		return
	}
	activateInPlace(data, p.OutputActivation)
}
