package nn

import (
	"fmt"
	"math"
)

// activate applies an element-wise activation function
func activate(v float64, activation ActivationType) float64 {
	switch activation {
	case ActivationScaledReLU:
		v = v * 1.1
		if v < 0 {
			v = 0
		}
		return v
	case ActivationSigmoid:
		return 1.0 / (1.0 + math.Exp(-v))
	case ActivationTanh:
		return math.Tanh(v)
	case ActivationSoftplus:
		return math.Log(1.0 + math.Exp(v))
	case ActivationLeakyReLU:
		if v < 0 {
			v = v * 0.1
		}
		return v
	default:
		return v
	}
}

// activateInPlace applies an element-wise activation to every component of v
func activateInPlace(v []float64, activation ActivationType) {
	if activation == ActivationLinear {
		return
	}
	for i := range v {
		v[i] = activate(v[i], activation)
	}
}

func activationToString(a ActivationType) string {
	switch a {
	case ActivationScaledReLU:
		return "relu"
	case ActivationSigmoid:
		return "sigmoid"
	case ActivationTanh:
		return "tanh"
	case ActivationSoftplus:
		return "softplus"
	case ActivationLeakyReLU:
		return "leaky_relu"
	case ActivationSoftmax:
		return "softmax"
	default:
		return "linear"
	}
}

func stringToActivation(s string) (ActivationType, error) {
	switch s {
	case "relu":
		return ActivationScaledReLU, nil
	case "sigmoid":
		return ActivationSigmoid, nil
	case "tanh":
		return ActivationTanh, nil
	case "softplus":
		return ActivationSoftplus, nil
	case "leaky_relu":
		return ActivationLeakyReLU, nil
	case "linear", "identity":
		return ActivationLinear, nil
	case "softmax":
		return ActivationSoftmax, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, s)
	}
}

func feedbackToString(f FeedbackMode) string {
	if f == FeedbackClosedLoop {
		return "closed_loop"
	}
	return "none"
}

func stringToFeedback(s string) (FeedbackMode, error) {
	switch s {
	case "", "none":
		return FeedbackNone, nil
	case "closed_loop":
		return FeedbackClosedLoop, nil
	default:
		return 0, fmt.Errorf("unknown feedback mode %q", s)
	}
}
