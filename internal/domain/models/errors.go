package models

import "errors"

// ErrorKind classifies failures surfaced by the pipeline and the stores.
type ErrorKind string

const (
	KindMissingParameter     ErrorKind = "missing_parameter"
	KindUpstreamUnavailable  ErrorKind = "upstream_unavailable"
	KindTokenNotFound        ErrorKind = "token_not_found"
	KindNoPairsFound         ErrorKind = "no_pairs_found"
	KindConfigurationMissing ErrorKind = "configuration_missing"
	KindDependentCallFailed  ErrorKind = "dependent_call_failed"
	KindInvalidInput         ErrorKind = "invalid_input"
	KindNotFound             ErrorKind = "not_found"
)

// Error is a domain error. Message is what clients see.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrMissingParameter     = &Error{Kind: KindMissingParameter}
	ErrUpstreamUnavailable  = &Error{Kind: KindUpstreamUnavailable}
	ErrTokenNotFound        = &Error{Kind: KindTokenNotFound}
	ErrNoPairsFound         = &Error{Kind: KindNoPairsFound}
	ErrConfigurationMissing = &Error{Kind: KindConfigurationMissing}
	ErrDependentCallFailed  = &Error{Kind: KindDependentCallFailed}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
	ErrNotFound             = &Error{Kind: KindNotFound}
)

func MissingParameter(msg string) error {
	return &Error{Kind: KindMissingParameter, Message: msg}
}

func UpstreamUnavailable(msg string, err error) error {
	return &Error{Kind: KindUpstreamUnavailable, Message: msg, Err: err}
}

func TokenNotFound(msg string) error {
	return &Error{Kind: KindTokenNotFound, Message: msg}
}

func NoPairsFound(msg string) error {
	return &Error{Kind: KindNoPairsFound, Message: msg}
}

func ConfigurationMissing(msg string) error {
	return &Error{Kind: KindConfigurationMissing, Message: msg}
}

// DependentCallFailed wraps err, keeping its message and its errors.Is chain.
func DependentCallFailed(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindDependentCallFailed, Message: err.Error(), Err: err}
}

func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// KindOf returns the kind of the outermost domain error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
