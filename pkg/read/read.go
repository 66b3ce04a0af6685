// Package read implements the strategies a stream uses to pull bytes off its
// socket. The set is closed:
//
//   - Char reads a single byte.
//   - Line reads up to and including the next newline.
//   - Buffer performs one read of up to a maximum length.
//   - Drain reads what the peer has sent so far, up to a maximum length.
//   - Delimited reads up to a length or until a delimiter string.
//
// Parameters are validated by the constructors, never at read time.
// Strategies do not log and do not fail loudly: they return whatever bytes
// they got together with the reason the read stopped. Callers decide whether
// an empty result is an error.
package read

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrWouldBlock means the read deadline expired before any data
	// arrived, which is how non-blocking reads report "nothing yet".
	ErrWouldBlock = errors.New("read would block")

	// ErrEmptyRead means the strategy asked for zero bytes.
	ErrEmptyRead = errors.New("zero-length read")
)

// Source is the buffered view of a socket that strategies read from.
// *bufio.Reader satisfies it.
type Source interface {
	io.Reader
	io.ByteReader
	Discard(n int) (int, error)
	Buffered() int
}

// Strategy extracts bytes from a Source.
type Strategy interface {
	// ReadFrom returns the bytes read. A non-nil error explains why reading
	// stopped; it may accompany data.
	ReadFrom(src Source) ([]byte, error)

	// Name identifies the strategy in logs and errors.
	Name() string
}

// classify maps low-level read errors onto the causes strategies report.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case err == io.EOF, errors.Is(err, io.ErrUnexpectedEOF):
		return io.EOF
	case errors.Is(err, os.ErrDeadlineExceeded):
		return ErrWouldBlock
	default:
		return err
	}
}
