package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrInvalidTicketInput   = errors.New("invalid ticket input")
	ErrInvalidTransition    = errors.New("invalid ticket status transition")
	ErrTicketNotReady       = errors.New("ticket is not ready for deployment")
	ErrTicketStatusConflict = errors.New("ticket status changed concurrently")
	ErrMissingField         = errors.New("payload_config missing required field")
	ErrUnsupportedPlatform  = errors.New("unsupported platform")
	ErrMalformedPayload     = errors.New("payload_config is not valid JSON")
)

// MissingFieldError names the payload_config field (or one-of group) that a
// ticket must carry before it can be trafficked.
type MissingFieldError struct {
	Fields []string
}

func (e MissingFieldError) Error() string {
	return "payload_config missing required field: " + strings.Join(e.Fields, " or ")
}

func (e MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// MissingField builds the error for a single absent field.
func MissingField(field string) MissingFieldError {
	return MissingFieldError{Fields: []string{field}}
}

// UnsupportedPlatformError carries the unrecognized platform name.
type UnsupportedPlatformError struct {
	Name string
}

func (e UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s", e.Name)
}

func (e UnsupportedPlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}
