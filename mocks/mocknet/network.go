// Package mocknet provides an in-memory network for testing dialers and
// streams without real sockets. Listeners are keyed by "network:address", so
// tcp, udp and unix endpoints live side by side; every accepted connection is
// one end of a net.Pipe.
package mocknet

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// MockNetwork simulates a network for testing without real network connections.
// It allows creating listeners and dialers that communicate through in-memory pipes.
type MockNetwork struct {
	listeners    map[string]*MockListener
	mu           sync.Mutex
	listenerCond *sync.Cond // Condition variable to signal listener changes
	dials        int
}

// NewMockNetwork creates a new mock network.
func NewMockNetwork() *MockNetwork {
	m := &MockNetwork{
		listeners: make(map[string]*MockListener),
	}
	m.listenerCond = sync.NewCond(&m.mu)
	return m
}

func key(network string, addr net.Addr) string {
	return network + ":" + addr.String()
}

// Listen creates a mock listener for network ("tcp", "udp" or "unix") on
// the resolved address.
func (m *MockNetwork) Listen(network string, laddr net.Addr) (*MockListener, error) {
	switch network {
	case "tcp", "udp", "unix":
	default:
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(network, laddr)
	if _, exists := m.listeners[k]; exists {
		return nil, fmt.Errorf("address already in use: %s", laddr)
	}

	listener := &MockListener{
		key:        k,
		addr:       laddr,
		connCh:     make(chan *MockConn, 10),
		acceptedCh: make(chan *MockConn, 16),
		closeCh:    make(chan struct{}),
		network:    m,
	}
	m.listeners[k] = listener
	m.listenerCond.Broadcast() // Signal that a new listener is available

	return listener, nil
}

// ListenString resolves addr for network and calls Listen.
func (m *MockNetwork) ListenString(network, addr string) (*MockListener, error) {
	var (
		laddr net.Addr
		err   error
	)

	switch network {
	case "tcp":
		laddr, err = net.ResolveTCPAddr(network, addr)
	case "udp":
		laddr, err = net.ResolveUDPAddr(network, addr)
	case "unix":
		laddr, err = net.ResolveUnixAddr(network, addr)
	default:
		err = fmt.Errorf("unsupported network type: %s", network)
	}
	if err != nil {
		return nil, err
	}

	return m.Listen(network, laddr)
}

// dial connects to the listener registered for network and raddr.
func (m *MockNetwork) dial(ctx context.Context, network string, laddr, raddr net.Addr) (net.Conn, error) {
	// If context is already done, return quickly
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m.mu.Lock()
	listener, exists := m.listeners[key(network, raddr)]
	m.dials++
	m.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("connection refused: no listener on %s", raddr)
	}

	// Create a pair of connected pipes
	clientConn, serverConn := net.Pipe()

	mockClient := &MockConn{
		Conn:       clientConn,
		localAddr:  laddr,
		remoteAddr: raddr,
	}
	mockServer := &MockConn{
		Conn:       serverConn,
		localAddr:  raddr,
		remoteAddr: laddr,
	}

	// Send the server side to the listener
	select {
	case listener.connCh <- mockServer:
		// Connection established
	case <-listener.closeCh:
		clientConn.Close()
		serverConn.Close()
		return nil, fmt.Errorf("connection refused: listener closed")
	case <-ctx.Done():
		clientConn.Close()
		serverConn.Close()
		return nil, ctx.Err()
	case <-time.After(1 * time.Second):
		clientConn.Close()
		serverConn.Close()
		return nil, fmt.Errorf("connection timeout")
	}

	return mockClient, nil
}

// DialTCPContext matches config.TCPDialerFunc.
func (m *MockNetwork) DialTCPContext(ctx context.Context, network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
	var local net.Addr = &net.TCPAddr{
		IP:   net.IPv4(127, 0, 0, 1),
		Port: 50000 + (int(time.Now().UnixNano()) % 10000), // Mock ephemeral port
	}
	if laddr != nil {
		local = laddr
	}
	return m.dial(ctx, network, local, raddr)
}

// DialUDPContext matches config.UDPDialerFunc.
func (m *MockNetwork) DialUDPContext(ctx context.Context, network string, laddr, raddr *net.UDPAddr) (net.Conn, error) {
	var local net.Addr = &net.UDPAddr{
		IP:   net.IPv4(127, 0, 0, 1),
		Port: 50000 + (int(time.Now().UnixNano()) % 10000),
	}
	if laddr != nil {
		local = laddr
	}
	return m.dial(ctx, network, local, raddr)
}

// DialUnixContext matches config.UnixDialerFunc.
func (m *MockNetwork) DialUnixContext(ctx context.Context, network string, laddr, raddr *net.UnixAddr) (net.Conn, error) {
	var local net.Addr = &net.UnixAddr{Net: "unix"}
	if laddr != nil {
		local = laddr
	}
	return m.dial(ctx, network, local, raddr)
}

// Dials returns how many dial attempts the network has seen.
func (m *MockNetwork) Dials() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dials
}

// WaitForListener waits for a listener to be created on the specified
// network and address within the given timeout.
// It returns nil if the listener is found, or an error if the timeout expires.
// The timeout is specified in milliseconds.
func (m *MockNetwork) WaitForListener(network, addr string, timeoutMs int) (*MockListener, error) {
	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	k := network + ":" + addr

	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		// Check if the listener already exists
		if l, exists := m.listeners[k]; exists {
			return l, nil
		}

		// Check if we've exceeded the timeout
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timeout waiting for listener on %s", k)
		}

		// Wait for a signal that a new listener is available, with a small timeout
		// to periodically check the deadline
		go func() {
			time.Sleep(50 * time.Millisecond)
			m.listenerCond.Broadcast()
		}()
		m.listenerCond.Wait()
	}
}
