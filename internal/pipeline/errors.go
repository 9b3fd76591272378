package pipeline

import "errors"

// ErrMissingField is returned when a pipeline configuration omits a
// required field.
var ErrMissingField = errors.New("pipeline configuration incomplete")
