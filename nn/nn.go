// Package nn replays trained recurrent networks one step at a time.
//
// A model file carries the network dimensions, the coefficients of a
// format-declared transition function and zero or more stored initial
// states (one per training example). Loading produces an immutable
// Parameters value that any number of Runners may share:
//   - elman: h' = f(W_ih x + W_hh h + b_h)
//   - ctrnn: u' = (1 - 1/tau) u + (1/tau) (W_ih x + W_hh f(u) + b_h)
//
// The readout is y = g(W_oh e(h) + b_o), where e(h) is the emitted hidden
// activation (h for elman, f(u) for ctrnn) and g is the output activation.
//
// Example usage:
//
//	params, err := nn.LoadModel("rnn.dat")
//	if err != nil {
//		return err
//	}
//	runner := nn.NewRunner(params, rand.New(rand.NewSource(seed)))
//	if err := runner.Initialize(nn.UseStoredIndex(0)); err != nil {
//		return err
//	}
//	for i := 0; i < steps; i++ {
//		if err := runner.Step(); err != nil {
//			return err
//		}
//		fmt.Println(runner.Output())
//	}
package nn
