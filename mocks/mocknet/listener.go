package mocknet

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// MockListener accepts connections dialed on a MockNetwork.
type MockListener struct {
	key        string
	addr       net.Addr
	connCh     chan *MockConn
	acceptedCh chan *MockConn
	closeCh    chan struct{}
	closed     bool
	mu         sync.Mutex
	network    *MockNetwork
}

// Accept waits for and returns the next connection to the listener.
func (l *MockListener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.connCh:
		// Notify any waiter that the connection was accepted. Use a non-blocking send
		// so Accept behavior doesn't change if nobody is waiting.
		select {
		case l.acceptedCh <- conn:
		default:
		}

		return conn, nil
	case <-l.closeCh:
		return nil, fmt.Errorf("listener closed")
	}
}

// Close closes the listener.
func (l *MockListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	close(l.closeCh)

	// Remove the listener from the network's map
	l.network.mu.Lock()
	delete(l.network.listeners, l.key)
	l.network.mu.Unlock()

	return nil
}

// Addr returns the listener's network address.
func (l *MockListener) Addr() net.Addr {
	return l.addr
}

var _ net.Listener = (*MockListener)(nil)

// WaitForNewConnection waits for a new connection to arrive on the listener's
// incoming connection channel. It blocks until a connection is available,
// the listener is closed, or the timeout (in milliseconds) elapses. Returns
// the accepted *MockConn on success.
func (l *MockListener) WaitForNewConnection(timeoutMs int) (*MockConn, error) {
	timeout := time.Duration(timeoutMs) * time.Millisecond

	select {
	// Wait for the connection that has been accepted by Accept()
	case conn := <-l.acceptedCh:
		return conn, nil
	case <-l.closeCh:
		return nil, fmt.Errorf("listener closed")
	case <-time.After(timeout):
		return nil, fmt.Errorf("timeout waiting for new connection on %s", l.addr.String())
	}
}
