//go:build !unix

package stream

import (
	"net"
	"time"
)

func pollConn(net.Conn, time.Duration) (bool, error) {
	return false, errNoDescriptor
}
