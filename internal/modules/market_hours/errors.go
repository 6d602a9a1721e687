package market_hours

import (
	"errors"
	"fmt"
)

// Code is a stable numeric error discriminant. Values are part of the wire
// and log format and must never be renumbered.
type Code uint32

const (
	// CodeOutsideBusinessHours means the market is closed at the evaluated instant.
	CodeOutsideBusinessHours Code = 818340127
	// CodeTimestampConversion means the instant has no single calendar moment.
	CodeTimestampConversion Code = 818340128
	// CodeConfigurationDefect means the static holiday table is inconsistent.
	CodeConfigurationDefect Code = 818340129
	// CodeAssetNotAllowed means the asset is not on the allow-list.
	CodeAssetNotAllowed Code = 818340130
)

// String returns the symbolic name of the code
func (c Code) String() string {
	switch c {
	case CodeOutsideBusinessHours:
		return "OutsideBusinessHours"
	case CodeTimestampConversion:
		return "ConvertUTCError"
	case CodeConfigurationDefect:
		return "ConfigurationDefect"
	case CodeAssetNotAllowed:
		return "AssetNotAllowed"
	default:
		return fmt.Sprintf("Code(%d)", uint32(c))
	}
}

// Message returns the human readable description of the code
func (c Code) Message() string {
	switch c {
	case CodeOutsideBusinessHours:
		return "operation not allowed outside business hours"
	case CodeTimestampConversion:
		return "failed to convert timestamp"
	case CodeConfigurationDefect:
		return "holiday rule table violates its invariants"
	case CodeAssetNotAllowed:
		return "asset is not allowed"
	default:
		return "unknown error"
	}
}

// Error carries a Code together with the failing operation and cause.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Code.Message()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinel errors for errors.Is checks.
var (
	ErrOutsideBusinessHours = &Error{Code: CodeOutsideBusinessHours}
	ErrTimestampConversion  = &Error{Code: CodeTimestampConversion}
	ErrConfigurationDefect  = &Error{Code: CodeConfigurationDefect}
	ErrAssetNotAllowed      = &Error{Code: CodeAssetNotAllowed}
)

func newError(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

// NewError builds a coded error for callers outside the package.
func NewError(code Code, op string, err error) error {
	return newError(code, op, err)
}

// CodeOf extracts the code from err. ok is false if err carries no code.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
