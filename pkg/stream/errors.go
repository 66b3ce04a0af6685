package stream

import (
	"fmt"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNotOpen is returned by operations that need an open socket.
	ErrNotOpen = errors.New("stream is not opened")

	// ErrNoReadStrategy is returned by Receive when no strategy is set.
	ErrNoReadStrategy = errors.New("no read strategy set, use SetStrategy or WithStrategy")
)

// ConnectionError reports a failed connect. Code is the OS error number
// when one could be extracted, 0 otherwise.
type ConnectionError struct {
	URI     string
	Code    int
	Message string
	Err     error
}

func newConnectionError(uri string, err error) *ConnectionError {
	e := &ConnectionError{URI: uri, Message: err.Error(), Err: err}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Code = int(errno)
	}

	return e
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("can't open %s: error number %d: %s", e.URI, e.Code, e.Message)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ReadError reports a receive that produced no bytes. Cause tells why:
// io.EOF, read.ErrWouldBlock, read.ErrEmptyRead, a context error or the OS
// error.
type ReadError struct {
	URI      string
	Strategy string
	Cause    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("nothing was read from %s (strategy %s): %s", e.URI, e.Strategy, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// NotStringError reports a payload that is neither []byte nor string after
// encoding.
type NotStringError struct {
	Type string
}

func (e *NotStringError) Error() string {
	return fmt.Sprintf("send data must be []byte or string, got %s", e.Type)
}

// SendError reports a write that sent zero bytes.
type SendError struct {
	URI string
	Err error
}

func (e *SendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("can't send contents to %s: %s", e.URI, e.Err)
	}
	return fmt.Sprintf("can't send contents to %s", e.URI)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// PollError reports a readiness poll that failed, as opposed to one that
// timed out.
type PollError struct {
	URI     string
	Timeout time.Duration
	Err     error
}

func (e *PollError) Error() string {
	return fmt.Sprintf("polling %s with %v timeout: %s", e.URI, e.Timeout, e.Err)
}

func (e *PollError) Unwrap() error {
	return e.Err
}

// CloseError reports a failed close. The stream is closed regardless.
type CloseError struct {
	URI string
	Err error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("can't close connection to %s: %s", e.URI, e.Err)
}

func (e *CloseError) Unwrap() error {
	return e.Err
}
