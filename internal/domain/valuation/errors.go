package valuation

import (
	"errors"
	"fmt"

	"github.com/okian/varsity/internal/domain/reference"
)

// Error kinds. ErrConfigurationMissing is the reference package's sentinel
// so either can be matched with errors.Is.
var (
	ErrConfigurationMissing = reference.ErrConfigurationMissing
	ErrInvalidRequest       = errors.New("invalid valuation request")
	ErrCanceled             = errors.New("valuation canceled")
)

// Error is a failed valuation for one athlete. It never affects other
// athletes in the same batch.
type Error struct {
	AthleteID string
	Kind      error
	Err       error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("athlete %s: %v", e.AthleteID, e.Kind)
	}
	return fmt.Sprintf("athlete %s: %v", e.AthleteID, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the error kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// KindName is a short label for metrics and API responses.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	default:
		return "internal"
	}
}

func newError(athleteID string, kind, err error) *Error {
	return &Error{AthleteID: athleteID, Kind: kind, Err: err}
}
