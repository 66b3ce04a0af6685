// Package transport provides the dialers behind a stream connection.
// Each protocol (tcp, udp, unix) has its own subpackage with a Dialer that
// resolves the target address up front and connects on Dial:
//
//	d, err := tcp.NewDialer("localhost:8080", deps)
//	conn, err := d.Dial(ctx)
//
// New picks the dialer matching a config.Target. The deps parameter is
// optional; tests inject the in-memory network from package mocks through it.
package transport

import (
	"context"
	"net"

	"dominicbreuker/gostream/pkg/config"
	"dominicbreuker/gostream/pkg/transport/tcp"
	"dominicbreuker/gostream/pkg/transport/udp"
	"dominicbreuker/gostream/pkg/transport/unix"

	"github.com/pkg/errors"
)

// Dialer establishes the socket behind a connection target.
type Dialer interface {
	Dial(ctx context.Context) (net.Conn, error)
}

// New returns the dialer for the target's protocol.
func New(target config.Target, deps *config.Dependencies) (Dialer, error) {
	var (
		d   Dialer
		err error
	)

	addr := target.Address()

	switch target.Protocol() {
	case config.ProtoTCP:
		d, err = tcp.NewDialer(addr, deps)
	case config.ProtoUDP:
		d, err = udp.NewDialer(addr, deps)
	case config.ProtoUnix:
		d, err = unix.NewDialer(addr, deps)
	default:
		return nil, errors.Wrapf(config.ErrInvalidProtocol, "no dialer for %q", target.URI())
	}

	if err != nil {
		return nil, err
	}
	return d, nil
}
