package config

import (
	"context"
	"io"
	"net"
	"os"
	"time"
)

// Dependencies contains injectable dependencies for testing and customization.
// All fields are optional and will use default implementations if nil.
type Dependencies struct {
	TCPDialer  TCPDialerFunc
	UDPDialer  UDPDialerFunc
	UnixDialer UnixDialerFunc
	Poller     PollerFunc
	Stdin      StdinFunc
	Stdout     StdoutFunc
}

// TCPDialerFunc is a function that dials a TCP connection.
// It returns a net.Conn to allow for mock implementations.
type TCPDialerFunc func(ctx context.Context, network string, laddr, raddr *net.TCPAddr) (net.Conn, error)

// UDPDialerFunc is a function that dials a connected UDP socket.
// It returns a net.Conn to allow for mock implementations.
type UDPDialerFunc func(ctx context.Context, network string, laddr, raddr *net.UDPAddr) (net.Conn, error)

// UnixDialerFunc is a function that dials a unix domain socket.
// It returns a net.Conn to allow for mock implementations.
type UnixDialerFunc func(ctx context.Context, network string, laddr, raddr *net.UnixAddr) (net.Conn, error)

// PollerFunc waits up to timeout for conn to become readable. A zero timeout
// returns immediately.
type PollerFunc func(conn net.Conn, timeout time.Duration) (bool, error)

// StdinFunc is a function that returns a reader for stdin.
// It returns an io.Reader to allow for mock implementations.
type StdinFunc func() io.Reader

// StdoutFunc is a function that returns a writer for stdout.
// It returns an io.Writer to allow for mock implementations.
type StdoutFunc func() io.Writer

// GetTCPDialerFunc returns the TCP dialer function from dependencies, or a default implementation.
// If deps is nil or deps.TCPDialer is nil, returns a function that uses a net.Dialer.
func GetTCPDialerFunc(deps *Dependencies) TCPDialerFunc {
	if deps != nil && deps.TCPDialer != nil {
		return deps.TCPDialer
	}
	return func(ctx context.Context, network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
		d := net.Dialer{}
		if laddr != nil {
			d.LocalAddr = laddr
		}
		return d.DialContext(ctx, network, raddr.String())
	}
}

// GetUDPDialerFunc returns the UDP dialer function from dependencies, or a default implementation.
// If deps is nil or deps.UDPDialer is nil, returns a function that uses a net.Dialer.
func GetUDPDialerFunc(deps *Dependencies) UDPDialerFunc {
	if deps != nil && deps.UDPDialer != nil {
		return deps.UDPDialer
	}
	return func(ctx context.Context, network string, laddr, raddr *net.UDPAddr) (net.Conn, error) {
		d := net.Dialer{}
		if laddr != nil {
			d.LocalAddr = laddr
		}
		return d.DialContext(ctx, network, raddr.String())
	}
}

// GetUnixDialerFunc returns the unix dialer function from dependencies, or a default implementation.
// If deps is nil or deps.UnixDialer is nil, returns a function that uses a net.Dialer.
func GetUnixDialerFunc(deps *Dependencies) UnixDialerFunc {
	if deps != nil && deps.UnixDialer != nil {
		return deps.UnixDialer
	}
	return func(ctx context.Context, network string, laddr, raddr *net.UnixAddr) (net.Conn, error) {
		d := net.Dialer{}
		if laddr != nil {
			d.LocalAddr = laddr
		}
		return d.DialContext(ctx, network, raddr.String())
	}
}

// GetPollerFunc returns the poller function from dependencies, or nil when
// the caller should use its built-in poller.
func GetPollerFunc(deps *Dependencies) PollerFunc {
	if deps != nil && deps.Poller != nil {
		return deps.Poller
	}
	return nil
}

// GetStdinFunc returns the stdin function from dependencies, or a default implementation.
// If deps is nil or deps.Stdin is nil, returns a function that uses os.Stdin.
func GetStdinFunc(deps *Dependencies) StdinFunc {
	if deps != nil && deps.Stdin != nil {
		return deps.Stdin
	}
	return func() io.Reader {
		return os.Stdin
	}
}

// GetStdoutFunc returns the stdout function from dependencies, or a default implementation.
// If deps is nil or deps.Stdout is nil, returns a function that uses os.Stdout.
func GetStdoutFunc(deps *Dependencies) StdoutFunc {
	if deps != nil && deps.Stdout != nil {
		return deps.Stdout
	}
	return func() io.Writer {
		return os.Stdout
	}
}
