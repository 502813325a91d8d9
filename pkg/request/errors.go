package request

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is the transport failure for a response outside 2xx.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: request failed with status code %d", e.Method, e.URL, e.StatusCode)
}

// BusinessError is returned when the server answered with an envelope
// whose code is non-zero or absent. Error returns the server message
// unchanged.
type BusinessError struct {
	Code        int
	Message     string
	MissingCode bool
}

func (e *BusinessError) Error() string { return e.Message }

// StatusOf returns the HTTP status carried by err, or 0 when no response
// was received.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsBusiness reports whether err came from a non-zero envelope code.
func IsBusiness(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// CodeOf returns the envelope code of a business failure. It reports false
// when err is not a business failure or the envelope had no code.
func CodeOf(err error) (int, bool) {
	var be *BusinessError
	if errors.As(err, &be) && !be.MissingCode {
		return be.Code, true
	}
	return 0, false
}
