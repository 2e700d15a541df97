package inputstream

import "fmt"

// EncodingChangedError signals that a <meta> declaration named an encoding
// different from the tentative one and the input has to be parsed again.
type EncodingChangedError struct {
	From, To string
}

func (e *EncodingChangedError) Error() string {
	return fmt.Sprintf("encoding changed from %s to %s", e.From, e.To)
}
