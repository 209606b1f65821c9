package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSession is returned by admin calls made before Login or after Logout.
var ErrNoSession = errors.New("backend: no admin session")

// ServerError is a non-2xx answer. Message carries the server's own text
// and is empty when the body had none.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend: %d %s", e.Status, msg)
}

// ServerMessage is what the UI shows for this failure; "" lets the caller
// fall back to its own localized text.
func (e *ServerError) ServerMessage() string { return e.Message }

// NetworkError is a transport failure: no HTTP answer was received, or the
// circuit breaker refused the call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return "backend: " + e.Op + ": " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// errorBody covers both error shapes the API produces.
type errorBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (b errorBody) message() string {
	switch {
	case b.Detail != "":
		return b.Detail
	case b.Error != "":
		return b.Error
	case b.Title != "":
		return b.Title
	}
	return ""
}
