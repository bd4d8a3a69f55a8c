package httpclient

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHeaderName  = errors.New("invalid header name")
	ErrInvalidHeaderValue = errors.New("invalid header value")
)

// StatusCodeError is returned for any response outside 200-299. Body is the
// raw response text.
type StatusCodeError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d, body: %s", e.Method, e.URL, e.Status, e.Body)
}

// TransportError wraps a failure to complete the request at all (DNS,
// connection, TLS).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SerializationError wraps a JSON encode or decode failure.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// HeaderError reports a header that cannot be sent. The value is left out of
// the message since headers usually carry credentials.
type HeaderError struct {
	Name string
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header %q: %v", e.Name, e.Err)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}
