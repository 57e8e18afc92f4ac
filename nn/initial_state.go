package nn

import "fmt"

// RandomIndex is the index value that selects a random initial state when an
// index comes from a plain integer, as on the rnn-generate command line.
const RandomIndex = -1

// RandomSource yields uniform draws in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// InitialState selects how a Runner sets its hidden state before the first step
type InitialState struct {
	random bool
	index  int
}

// UseRandom draws every hidden component independently and uniformly from
// the model's init range, component 0 first.
func UseRandom() InitialState {
	return InitialState{random: true}
}

// UseStoredIndex copies the stored initial state of training example index
func UseStoredIndex(index int) InitialState {
	return InitialState{index: index}
}

// InitialStateFromIndex maps RandomIndex to UseRandom and any other value to
// UseStoredIndex. Negative values other than RandomIndex stay invalid.
func InitialStateFromIndex(index int) InitialState {
	if index == RandomIndex {
		return UseRandom()
	}
	return UseStoredIndex(index)
}

// Random reports whether the state is drawn from the random source
func (s InitialState) Random() bool { return s.random }

// Index returns the stored-state index; meaningless when Random is true
func (s InitialState) Index() int { return s.index }

func (s InitialState) String() string {
	if s.random {
		return "random"
	}
	return fmt.Sprintf("stored[%d]", s.index)
}

// sampleUniform fills dst with draws from [lo, hi), in index order
func sampleUniform(dst []float64, rng RandomSource, lo, hi float64) {
	for i := range dst {
		dst[i] = lo + (hi-lo)*rng.Float64()
	}
}
