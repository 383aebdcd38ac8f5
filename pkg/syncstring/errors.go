package syncstring

import (
	"fmt"
)

// DecodeError means the compressed sync-string could not be decompressed.
type DecodeError struct {
	Input []byte
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode base64 zlib string '%s': %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FormatError means the token stream of a sync-string is inconsistent
// with its declared structure.
type FormatError struct {
	// Token is the index of the offending token, or -1 if the problem
	// is not bound to a single token.
	Token  int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Token < 0 {
		return fmt.Sprintf("invalid sync-string: %s", e.Reason)
	}
	return fmt.Sprintf("invalid sync-string at token #%d: %s", e.Token, e.Reason)
}
