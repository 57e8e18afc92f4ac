package nn

import "errors"

var (
	// ErrIOFailure reports that the model stream could not be read.
	ErrIOFailure = errors.New("model read failed")

	// ErrMalformedModel reports a structural or dimension inconsistency in a model file.
	ErrMalformedModel = errors.New("malformed model")

	// ErrUnsupportedVersion reports a model format version this package cannot read.
	// Errors wrapping it also match ErrMalformedModel.
	ErrUnsupportedVersion = errors.New("unsupported model version")

	// ErrUnknownTransition reports a transition name with no registered implementation.
	ErrUnknownTransition = errors.New("unknown transition")

	// ErrUnknownActivation reports an activation name this package does not implement.
	ErrUnknownActivation = errors.New("unknown activation")

	// ErrInvalidIndex reports a stored initial-state index out of range.
	ErrInvalidIndex = errors.New("invalid initial state index")

	// ErrNotInitialized reports a Step on a runner that was never initialized.
	ErrNotInitialized = errors.New("runner not initialized")

	// ErrNoRandomSource reports a random initialization on a runner built without a source.
	ErrNoRandomSource = errors.New("no random source")

	// ErrStateMismatch reports a restored state whose vector lengths do not fit the model.
	ErrStateMismatch = errors.New("state does not match model dimensions")
)

// errInvalidParameters is the panic value of NewRunner for Parameters that did
// not come from NewParameters.
var errInvalidParameters = errors.New("nn: parameters not built by NewParameters or LoadModel")
