// Package tcp provides the TCP transport.
package tcp

import (
	"context"
	"net"

	"dominicbreuker/gostream/pkg/config"

	"github.com/pkg/errors"
)

// Dialer connects to a TCP address.
type Dialer struct {
	tcpAddr  *net.TCPAddr
	dialerFn config.TCPDialerFunc
}

// NewDialer creates a new TCP dialer for the specified address.
// The deps parameter is optional and can be nil to use default implementations.
func NewDialer(addr string, deps *config.Dependencies) (*Dialer, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "net.ResolveTCPAddr(tcp, %s)", addr)
	}

	return &Dialer{
		tcpAddr:  tcpAddr,
		dialerFn: config.GetTCPDialerFunc(deps),
	}, nil
}

// Dial establishes a TCP connection to the configured address with keep-alive enabled.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	conn, err := d.dialerFn(ctx, "tcp", nil, d.tcpAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "net.DialTCP(tcp, %s)", d.tcpAddr.String())
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
	}

	return conn, nil
}
