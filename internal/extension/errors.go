package extension

import "errors"

// ErrOnlyTags is returned when decoding a name whose every token is an
// algorithm tag, leaving nothing to name the output file.
var ErrOnlyTags = errors.New("file name consists only of algorithm tags")
