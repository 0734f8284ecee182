package githubapi

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// ErrorKind classifies an upstream failure.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindDecode    ErrorKind = "decode"
	KindEncode    ErrorKind = "encode"
	KindPath      ErrorKind = "path"
)

// ErrDotSegment is wrapped by requests whose path contains "." or "..".
var ErrDotSegment = errors.New("path contains a dot segment")

// APIError is the single error type returned by Client.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Method     string
	Path       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("GitHub API %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	case KindTimeout:
		return fmt.Sprintf("GitHub API %s %s: %s", e.Method, e.Path, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("GitHub API %s %s: %s: %v", e.Method, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("GitHub API %s %s: %s", e.Method, e.Path, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsTimeout reports whether err is an upstream timeout.
func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindStatus && apiErr.StatusCode == status
}
