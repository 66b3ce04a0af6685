// Package udp provides the UDP transport. Connections are plain connected
// datagram sockets: every Write is one datagram.
package udp

import (
	"context"
	"net"

	"dominicbreuker/gostream/pkg/config"

	"github.com/pkg/errors"
)

// Dialer connects a UDP socket to a remote address.
type Dialer struct {
	remoteAddr *net.UDPAddr
	dialerFn   config.UDPDialerFunc
}

// NewDialer creates a new UDP dialer for the specified address.
// The deps parameter is optional and can be nil to use default implementations.
func NewDialer(addr string, deps *config.Dependencies) (*Dialer, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "net.ResolveUDPAddr(udp, %s)", addr)
	}

	return &Dialer{
		remoteAddr: udpAddr,
		dialerFn:   config.GetUDPDialerFunc(deps),
	}, nil
}

// Dial connects the socket. No packet is exchanged, so an unreachable peer
// only shows up on the first read or write.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	conn, err := d.dialerFn(ctx, "udp", nil, d.remoteAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "net.DialUDP(udp, %s)", d.remoteAddr.String())
	}

	return conn, nil
}
