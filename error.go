package bookshelf

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT     = "conflict"
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EUNAUTHORIZED = "unauthorized"
	EUNAVAILABLE  = "unavailable"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("bookshelf error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Provider and network errors are mapped onto the closest code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case ProviderEmptyQuery, ProviderInvalidURL:
			return EINVALID
		case ProviderUnauthorized:
			return EUNAUTHORIZED
		case ProviderAPI:
			return EUNAVAILABLE
		}
		return EINTERNAL
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		if ne.Kind == NetworkBadURL {
			return EINVALID
		}
		return EUNAVAILABLE
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Error()
	}
	return "Internal error"
}

// NetworkErrorKind classifies a failed fetch.
type NetworkErrorKind int

const (
	NetworkBadURL NetworkErrorKind = iota
	NetworkTransport
	NetworkStatus
	NetworkParse
)

func (k NetworkErrorKind) String() string {
	switch k {
	case NetworkBadURL:
		return "bad URL"
	case NetworkTransport:
		return "transport failure"
	case NetworkStatus:
		return "non-success status"
	case NetworkParse:
		return "parsing failed"
	}
	return "unknown"
}

// NetworkError is returned by fetchers and by the retrying fetch once
// every attempt has failed.
type NetworkError struct {
	Kind       NetworkErrorKind
	URL        string
	StatusCode int   // set for NetworkStatus
	Err        error // underlying transport or parser error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Kind == NetworkStatus:
		return fmt.Sprintf("%s: HTTP %d for %s", e.Kind, e.StatusCode, e.URL)
	case e.Err != nil:
		return fmt.Sprintf("%s for %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%s for %s", e.Kind, e.URL)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProviderErrorKind classifies a catalog provider failure.
type ProviderErrorKind int

const (
	ProviderEmptyQuery ProviderErrorKind = iota
	ProviderInvalidURL
	ProviderUnauthorized
	ProviderAPI
	ProviderParsing
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderEmptyQuery:
		return "empty query"
	case ProviderInvalidURL:
		return "invalid URL"
	case ProviderUnauthorized:
		return "unauthorized"
	case ProviderAPI:
		return "API error"
	case ProviderParsing:
		return "parsing error"
	}
	return "unknown"
}

// ProviderError is returned by a BookProvider.
// For ProviderAPI, Err holds the *NetworkError.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err is a ProviderError of the given kind.
func IsProviderError(err error, kind ProviderErrorKind) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == kind
}
