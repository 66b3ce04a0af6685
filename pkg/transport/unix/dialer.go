// Package unix provides the unix domain socket transport.
package unix

import (
	"context"
	"net"

	"dominicbreuker/gostream/pkg/config"

	"github.com/pkg/errors"
)

// Dialer connects to a unix socket path.
type Dialer struct {
	unixAddr *net.UnixAddr
	dialerFn config.UnixDialerFunc
}

// NewDialer creates a new unix dialer for the socket at path.
// The deps parameter is optional and can be nil to use default implementations.
func NewDialer(path string, deps *config.Dependencies) (*Dialer, error) {
	unixAddr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "net.ResolveUnixAddr(unix, %s)", path)
	}

	return &Dialer{
		unixAddr: unixAddr,
		dialerFn: config.GetUnixDialerFunc(deps),
	}, nil
}

// Dial connects to the socket.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	conn, err := d.dialerFn(ctx, "unix", nil, d.unixAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "net.DialUnix(unix, %s)", d.unixAddr.String())
	}

	return conn, nil
}
