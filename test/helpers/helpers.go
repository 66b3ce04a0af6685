// Package helpers provides common utilities for integration and end-to-end tests.
package helpers

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"dominicbreuker/gostream/mocks"
	"dominicbreuker/gostream/mocks/mocknet"
	"dominicbreuker/gostream/pkg/config"
)

// SetupMockDependencies creates a complete set of mock dependencies
// for testing with both mocked network and stdio. All three dialers go
// through the same mock network.
func SetupMockDependencies() (*mocknet.MockNetwork, *mocks.MockConsole, *config.Dependencies) {
	mockNet := mocknet.NewMockNetwork()
	console := mocks.NewMockConsole()

	deps := &config.Dependencies{
		TCPDialer:  mockNet.DialTCPContext,
		UDPDialer:  mockNet.DialUDPContext,
		UnixDialer: mockNet.DialUnixContext,
		Stdin:      console.Stdin,
		Stdout:     console.Stdout,
	}

	return mockNet, console, deps
}

// StartEchoServer listens on the mock network at target and answers every
// line with prefix + line. The server is closed when the test ends.
func StartEchoServer(t *testing.T, mockNet *mocknet.MockNetwork, target config.Target, prefix string) *mocknet.Server {
	t.Helper()

	ln, err := mockNet.ListenString(target.Network(), target.Address())
	if err != nil {
		t.Fatalf("ListenString(%s) error = %v", target, err)
	}

	srv, err := mocknet.NewServer(ln, prefix)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	return srv
}

var socketCounter uint64

// SocketPath returns a fresh unix socket path that is removed when the test
// ends.
func SocketPath(t *testing.T) string {
	t.Helper()

	count := atomic.AddUint64(&socketCounter, 1)
	path := fmt.Sprintf("/tmp/gostream_it_%d_%d.sock", os.Getpid(), count)
	os.Remove(path)
	t.Cleanup(func() { os.Remove(path) })
	return path
}
