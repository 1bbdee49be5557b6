package wbemu

import(
	"github.com/pkg/errors"
)

// Error kinds callers can pick apart with errors.Is. Everything the
// pipeline returns wraps one of these (or is a plain I/O error from
// loading and saving files).
var(
	ErrDegenerateImage       = errors.New("image has no usable chromaticity")
	ErrInvalidRequestedCount = errors.New("requested rendering count out of range")
	ErrMissingParameterFile  = errors.New("model parameter file unreadable")
	ErrShapeMismatch         = errors.New("model parameter shapes disagree")
)
