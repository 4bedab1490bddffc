package transcript

import "errors"

// Sentinel errors shared by all pipeline stages. Wrap them with
// fmt.Errorf("...: %w", ...) so callers can classify failures with errors.Is
// and map them to exit codes.
var (
	// ErrNotFound indicates a referenced file or document is missing.
	ErrNotFound = errors.New("not found")

	// ErrMalformedInput indicates a structurally invalid document: a required
	// field is absent, a segment collection is empty, or the JSON is unparseable.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedFormat indicates an unknown render target.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUpstreamFailure indicates an external model or service call failed
	// or timed out.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrUserAbort indicates an interactive session was interrupted.
	ErrUserAbort = errors.New("user abort")
)
