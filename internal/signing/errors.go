package signing

import "errors"

var (
	// ErrUnknownType is returned for a scheme outside the supported set.
	ErrUnknownType = errors.New("unknown signing scheme")
	// ErrVerification is the sentinel real verifiers wrap when integrity
	// does not hold. The passthrough verifier never returns it.
	ErrVerification = errors.New("signature verification failed")
)
