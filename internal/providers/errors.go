package providers

import (
	"errors"
	"fmt"
)

// ReviewGenerationError reports that no review text could be obtained from
// the model. Raw holds whatever the API returned, possibly nothing.
type ReviewGenerationError struct {
	Reason     string
	StatusCode int
	Raw        []byte
	Err        error
}

func (e *ReviewGenerationError) Error() string {
	msg := "review generation failed: " + e.Reason
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReviewGenerationError) Unwrap() error {
	return e.Err
}

// IsAuthError checks if a review failed because the API rejected the key.
func (e *ReviewGenerationError) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// AsReviewGenerationError unwraps err into a *ReviewGenerationError.
func AsReviewGenerationError(err error) (*ReviewGenerationError, bool) {
	var genErr *ReviewGenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}
