package calls

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyAudio   = errors.New("audio file is empty")
	ErrInvalidAudio = errors.New("audio file could not be read")
	ErrAudioTooLong = errors.New("audio exceeds the maximum duration")
)

// ProviderError marks a failure in one of the external provider stages so the
// handler can answer with a gateway status instead of a generic 500.
type ProviderError struct {
	Stage string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
