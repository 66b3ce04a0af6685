package mocknet

import "net"

// MockConn is one end of an in-memory connection. It supports deadlines
// (net.Pipe does) but has no file descriptor.
type MockConn struct {
	net.Conn
	localAddr  net.Addr
	remoteAddr net.Addr
}

// LocalAddr returns the local network address.
func (c *MockConn) LocalAddr() net.Addr {
	if c.localAddr != nil {
		return c.localAddr
	}
	return c.Conn.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *MockConn) RemoteAddr() net.Addr {
	if c.remoteAddr != nil {
		return c.remoteAddr
	}
	return c.Conn.RemoteAddr()
}

var _ net.Conn = (*MockConn)(nil)
