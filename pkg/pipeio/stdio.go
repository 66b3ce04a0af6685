// Package pipeio connects the user's terminal to a session.
package pipeio

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Stdio provides a ReadWriteCloser interface for standard I/O streams.
// It uses cancelable reading from stdin when supported, allowing reads
// to be interrupted via Close.
type Stdio struct {
	stdin            io.Reader
	cancellableStdin cancelreader.CancelReader

	stdout      io.Writer
	interactive bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewStdio wraps stdin and stdout. nil selects os.Stdin and os.Stdout.
// Reads are cancelable when stdin is a file the platform can poll.
func NewStdio(stdin io.Reader, stdout io.Writer) *Stdio {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	out := &Stdio{
		stdin:  stdin,
		stdout: stdout,
		done:   make(chan struct{}),
	}

	f, ok := stdin.(*os.File)
	if !ok {
		return out
	}

	out.interactive = term.IsTerminal(int(f.Fd()))

	cancellableStdin, err := cancelreader.NewReader(f)
	if err != nil {
		return out
	}

	out.cancellableStdin = cancellableStdin
	return out
}

// Interactive reports whether stdin is a terminal.
func (s *Stdio) Interactive() bool {
	return s.interactive
}

// Read reads from stdin, using the cancelable reader if available.
func (s *Stdio) Read(p []byte) (n int, err error) {
	if s.cancellableStdin != nil {
		return s.cancellableStdin.Read(p)
	}

	return s.stdin.Read(p)
}

// Write writes to stdout.
func (s *Stdio) Write(p []byte) (n int, err error) {
	return s.stdout.Write(p)
}

// Lines scans stdin and delivers each line without its newline. The channel
// is closed at EOF, on a read error or after Close.
func (s *Stdio) Lines() <-chan string {
	ch := make(chan string)

	go func() {
		defer close(ch)

		sc := bufio.NewScanner(s)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-s.done:
				return
			}
		}
	}()

	return ch
}

// Close cancels any pending reads from stdin if using a cancelable reader.
func (s *Stdio) Close() error {
	s.closeOnce.Do(func() {
		if s.done != nil {
			close(s.done)
		}
		if s.cancellableStdin != nil {
			s.cancellableStdin.Cancel()
		}
	})
	return nil
}
