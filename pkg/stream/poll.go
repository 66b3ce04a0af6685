package stream

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"dominicbreuker/gostream/pkg/config"
)

// errNoDescriptor makes the poller fall back to peeking with a deadline.
var errNoDescriptor = errors.New("connection has no file descriptor")

// IsReadyForReading waits up to the read timeout for data to arrive. It
// returns false when the timeout passes and a *PollError when the poll
// itself fails. Bytes already buffered from an earlier read count as ready.
func (c *Conn) IsReadyForReading() (bool, error) {
	if err := c.EnsureOpened(); err != nil {
		return false, err
	}

	if c.r.Buffered() > 0 {
		return true, nil
	}

	var (
		ready bool
		err   error
	)
	if poller := config.GetPollerFunc(c.deps); poller != nil {
		ready, err = poller(c.conn, c.readTimeout)
	} else {
		ready, err = c.poll(c.readTimeout)
	}
	if err != nil {
		return false, &PollError{URI: c.target.URI(), Timeout: c.readTimeout, Err: err}
	}

	return ready, nil
}

func (c *Conn) poll(timeout time.Duration) (bool, error) {
	ready, err := pollConn(c.conn, timeout)
	if err != errNoDescriptor {
		return ready, err
	}
	return c.peek(timeout)
}

// peek waits for one byte to land in the read buffer. EOF counts as ready
// since the next read returns immediately. A zero timeout still gets the
// non-blocking window, an expired deadline never looks at the conn.
func (c *Conn) peek(timeout time.Duration) (bool, error) {
	timeout = max(timeout, nonBlockingWait)
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return false, err
	}
	defer c.conn.SetReadDeadline(time.Time{})

	_, err := c.r.Peek(1)
	switch {
	case err == nil, err == io.EOF:
		return true, nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return false, nil
	default:
		return false, err
	}
}
