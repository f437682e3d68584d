// Package businessflow contains the business logic for the application.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Member-related errors
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberInactive = errors.New("member is inactive")

	// Feed-related errors
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrBannerNotFound   = errors.New("banner not found")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsMemberNotFound(err error) bool {
	return errors.Is(err, ErrMemberNotFound)
}

func IsMemberInactive(err error) bool {
	return errors.Is(err, ErrMemberInactive)
}

func IsInvalidPlacement(err error) bool {
	return errors.Is(err, ErrInvalidPlacement)
}

func IsBannerNotFound(err error) bool {
	return errors.Is(err, ErrBannerNotFound)
}
