package nn

import (
	"math"
)

// softmaxStandard normalizes logits into one distribution in place
func softmaxStandard(logits []float64) {
	if len(logits) == 0 {
		return
	}

	// Numerical stability: subtract max
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	sum := 0.0
	for i, v := range logits {
		logits[i] = math.Exp(v - maxLogit)
		sum += logits[i]
	}

	for i := range logits {
		logits[i] /= sum
	}
}

// softmaxGroups applies an independent softmax to each consecutive group.
// groups must sum to len(logits); an empty groups treats logits as one group.
func softmaxGroups(logits []float64, groups []int) {
	if len(groups) == 0 {
		softmaxStandard(logits)
		return
	}

	start := 0
	for _, size := range groups {
		softmaxStandard(logits[start : start+size])
		start += size
	}
}
