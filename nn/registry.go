package nn

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Transition is the format-declared update rule of a recurrent network.
// Implementations are stateless; everything they read comes from Parameters
// and the vectors passed in.
type Transition interface {
	// Name is the identifier used for this transition in model files
	Name() string

	// Validate checks the coefficients this transition needs beyond the
	// shared input/recurrent/readout weights.
	Validate(p *Parameters) error

	// Advance writes the successor of hidden under input into next.
	// scratch is a hidden-sized work vector; next, hidden and scratch never alias.
	Advance(p *Parameters, next, hidden, input, scratch *mat.VecDense)

	// Emit writes the hidden activations consumed by the readout into dst.
	Emit(p *Parameters, dst, hidden *mat.VecDense)
}

// transitionRegistry is the global registry of transition functions
var (
	transitionMu       sync.RWMutex
	transitionRegistry = map[string]Transition{
		"elman": elmanTransition{},
		"ctrnn": ctrnnTransition{},
	}
)

// RegisterTransition adds a transition under its name, replacing any previous
// entry. It is safe to call concurrently with model loading; models already
// loaded keep the transition they were built with.
func RegisterTransition(t Transition) {
	transitionMu.Lock()
	defer transitionMu.Unlock()
	transitionRegistry[t.Name()] = t
}

// unregisterTransition removes name from the registry
func unregisterTransition(name string) {
	transitionMu.Lock()
	defer transitionMu.Unlock()
	delete(transitionRegistry, name)
}

// LookupTransition returns the transition registered under name
func LookupTransition(name string) (Transition, error) {
	transitionMu.RLock()
	t, ok := transitionRegistry[name]
	transitionMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, name)
	}
	return t, nil
}

// ListTransitions returns the names of all registered transitions, sorted
func ListTransitions() []string {
	transitionMu.RLock()
	defer transitionMu.RUnlock()

	names := make([]string, 0, len(transitionRegistry))
	for name := range transitionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
