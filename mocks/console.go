// Package mocks provides mock implementations for testing.
package mocks

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// MockConsole stands in for the terminal of a connect session. Tests type
// lines into stdin and wait for lines the session prints to stdout.
type MockConsole struct {
	stdin  *io.PipeReader
	typist *io.PipeWriter

	mu      sync.Mutex
	out     bytes.Buffer
	changed chan struct{}
}

// NewMockConsole returns a console with empty input and output.
func NewMockConsole() *MockConsole {
	r, w := io.Pipe()
	return &MockConsole{
		stdin:   r,
		typist:  w,
		changed: make(chan struct{}),
	}
}

// Stdin is the reader the session consumes. It ends when EndInput or Close
// is called.
func (m *MockConsole) Stdin() io.Reader {
	return m.stdin
}

// Stdout is the writer the session prints to.
func (m *MockConsole) Stdout() io.Writer {
	return m
}

// Write records output and wakes up waiters.
func (m *MockConsole) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, _ := m.out.Write(p)
	close(m.changed)
	m.changed = make(chan struct{})
	return n, nil
}

// Type enters each line followed by a newline. It blocks until the session
// has read the input.
func (m *MockConsole) Type(lines ...string) error {
	for _, line := range lines {
		if _, err := io.WriteString(m.typist, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// EndInput signals end of input, like Ctrl-D on a terminal.
func (m *MockConsole) EndInput() error {
	return m.typist.Close()
}

// Output returns everything printed so far.
func (m *MockConsole) Output() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out.String()
}

// Lines returns the complete lines printed so far, without newlines. A
// trailing partial line is left out.
func (m *MockConsole) Lines() []string {
	return completeLines(m.Output())
}

func completeLines(out string) []string {
	end := strings.LastIndexByte(out, '\n')
	if end < 0 {
		return nil
	}
	return strings.Split(out[:end], "\n")
}

// WaitForLine waits until a complete output line equals want.
func (m *MockConsole) WaitForLine(want string, timeout time.Duration) error {
	return m.waitFor(fmt.Sprintf("line %q", want), timeout, func(out string) bool {
		for _, line := range completeLines(out) {
			if line == want {
				return true
			}
		}
		return false
	})
}

// WaitForOutput waits until want appears anywhere in the output.
func (m *MockConsole) WaitForOutput(want string, timeout time.Duration) error {
	return m.waitFor(fmt.Sprintf("output %q", want), timeout, func(out string) bool {
		return strings.Contains(out, want)
	})
}

func (m *MockConsole) waitFor(what string, timeout time.Duration, match func(string) bool) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		m.mu.Lock()
		out, changed := m.out.String(), m.changed
		m.mu.Unlock()

		if match(out) {
			return nil
		}

		select {
		case <-changed:
		case <-timer.C:
			return fmt.Errorf("timeout waiting for %s, got: %q", what, out)
		}
	}
}

// Close ends the input. Output stays readable.
func (m *MockConsole) Close() error {
	m.typist.Close()
	return m.stdin.Close()
}
