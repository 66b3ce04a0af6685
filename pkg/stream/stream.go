// Package stream is a thin veneer over a client socket. A Conn is created
// closed from a validated config.Target, connects lazily on first use, and
// reads through a pluggable read.Strategy with an optional codec.Codec
// applied around every send and receive.
//
// A Conn is not safe for concurrent use. Share it between goroutines only
// with external synchronization.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"dominicbreuker/gostream/pkg/codec"
	"dominicbreuker/gostream/pkg/config"
	"dominicbreuker/gostream/pkg/log"
	"dominicbreuker/gostream/pkg/read"
	"dominicbreuker/gostream/pkg/transport"
)

// nonBlockingWait is how long a read or write in non-blocking mode waits
// for the socket before reporting read.ErrWouldBlock. A deadline in the past
// would fail without looking at the socket at all.
const nonBlockingWait = time.Millisecond

// aLongTimeAgo is a deadline that unblocks pending I/O immediately.
var aLongTimeAgo = time.Unix(1, 0)

// Conn is a socket stream to a single Target.
type Conn struct {
	id     string
	target config.Target

	codec      codec.Codec
	strategy   read.Strategy
	deps       *config.Dependencies
	logger     *log.Logger
	trafficLog string

	conn net.Conn
	r    *bufio.Reader

	blocking    bool
	timeout     time.Duration
	readTimeout time.Duration
	timedOut    bool
	eof         bool
}

// New returns a closed Conn to target. Nothing is dialed until Open, Send or
// Receive is called.
func New(target config.Target, opts ...Option) *Conn {
	c := &Conn{
		id:       uuid.NewString()[:8],
		target:   target,
		logger:   log.NewLogger(false),
		blocking: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the endpoint the Conn connects to.
func (c *Conn) Target() config.Target {
	return c.target
}

// ID is a short random identifier used in log messages.
func (c *Conn) ID() string {
	return c.id
}

// Open connects to the target. It does nothing if the Conn is already open.
// Any failure to connect, including address resolution, is a
// *ConnectionError.
func (c *Conn) Open(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	uri := c.target.URI()

	d, err := transport.New(c.target, c.deps)
	if err != nil {
		return newConnectionError(uri, err)
	}

	conn, err := d.Dial(ctx)
	if err != nil {
		c.logger.VerboseMsg("[%s] connecting to %s failed: %s", c.id, uri, err)
		return newConnectionError(uri, err)
	}

	if c.trafficLog != "" {
		logged, err := log.NewLoggedConn(conn, c.trafficLog)
		if err != nil {
			conn.Close()
			return newConnectionError(uri, errors.Wrapf(err, "opening traffic log %s", c.trafficLog))
		}
		conn = logged
	}

	c.conn = conn
	c.r = bufio.NewReader(conn)
	c.blocking = true
	c.timeout = 0
	c.timedOut = false
	c.eof = false

	c.logger.VerboseMsg("[%s] connected to %s (%s -> %s)", c.id, uri, conn.LocalAddr(), conn.RemoteAddr())
	return nil
}

// IsOpened reports whether the Conn holds a live socket.
func (c *Conn) IsOpened() bool {
	return c.conn != nil
}

// EnsureOpened returns an error wrapping ErrNotOpen if the Conn is closed.
func (c *Conn) EnsureOpened() error {
	if c.conn == nil {
		return errors.Wrapf(ErrNotOpen, "%s", c.target.URI())
	}
	return nil
}

// Close closes the socket. Closing a closed Conn is a no-op. If the close
// fails, a *CloseError is returned but the Conn is closed anyway.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}

	conn := c.conn
	c.conn, c.r = nil, nil

	if err := conn.Close(); err != nil {
		return &CloseError{URI: c.target.URI(), Err: err}
	}

	c.logger.VerboseMsg("[%s] closed %s", c.id, c.target.URI())
	return nil
}

// SetBlocking switches the socket between blocking and non-blocking mode.
// In non-blocking mode reads and writes give up almost immediately when the
// socket is not ready.
func (c *Conn) SetBlocking(blocking bool) error {
	if err := c.EnsureOpened(); err != nil {
		return err
	}
	c.blocking = blocking
	return nil
}

// SetBlockingOn ...
func (c *Conn) SetBlockingOn() error {
	return c.SetBlocking(true)
}

// SetBlockingOff ...
func (c *Conn) SetBlockingOff() error {
	return c.SetBlocking(false)
}

// IsBlocking reports the current mode. A closed Conn reports true, the mode
// the next Open starts in.
func (c *Conn) IsBlocking() bool {
	return c.blocking
}

// SetTimeout sets the timeout, in seconds, for blocking reads and writes.
// Zero removes the timeout.
func (c *Conn) SetTimeout(seconds int) error {
	if err := config.ValidateSeconds(seconds); err != nil {
		return err
	}
	if err := c.EnsureOpened(); err != nil {
		return err
	}
	c.timeout = time.Duration(seconds) * time.Second
	return nil
}

// SetReadTimeout sets how long IsReadyForReading waits. (0, 0) makes the
// poll return immediately.
func (c *Conn) SetReadTimeout(seconds, microseconds int) error {
	if err := config.ValidateSeconds(seconds); err != nil {
		return err
	}
	if err := config.ValidateMicroseconds(microseconds); err != nil {
		return err
	}
	if err := c.EnsureOpened(); err != nil {
		return err
	}
	c.readTimeout = time.Duration(seconds)*time.Second + time.Duration(microseconds)*time.Microsecond
	return nil
}

// ReadTimeout returns the poll timeout set by SetReadTimeout.
func (c *Conn) ReadTimeout() time.Duration {
	return c.readTimeout
}

// SetStrategy replaces the read strategy. It may be called in any state.
func (c *Conn) SetStrategy(s read.Strategy) {
	c.strategy = s
}

// StrategyName returns the name of the current read strategy, or "" if none
// is set.
func (c *Conn) StrategyName() string {
	if c.strategy == nil {
		return ""
	}
	return c.strategy.Name()
}

// SetCodec replaces the codec. nil disables encoding and decoding.
func (c *Conn) SetCodec(cd codec.Codec) {
	c.codec = cd
}

// deadline is the I/O deadline for the next operation. The zero time means
// no deadline.
func (c *Conn) deadline() time.Time {
	switch {
	case !c.blocking:
		return time.Now().Add(nonBlockingWait)
	case c.timeout > 0:
		return time.Now().Add(c.timeout)
	default:
		return time.Time{}
	}
}

// Send encodes payload and writes it, opening the Conn first if needed. It
// returns the number of bytes written. A write of zero bytes is a
// *SendError; a payload that is not []byte or string after encoding is a
// *NotStringError.
func (c *Conn) Send(ctx context.Context, payload interface{}) (int, error) {
	if err := c.Open(ctx); err != nil {
		return 0, err
	}

	data, err := c.encode(payload)
	if err != nil {
		return 0, err
	}

	conn := c.conn
	if err := conn.SetWriteDeadline(c.deadline()); err != nil {
		return 0, &SendError{URI: c.target.URI(), Err: err}
	}
	stop := context.AfterFunc(ctx, func() {
		conn.SetWriteDeadline(aLongTimeAgo)
	})
	n, err := conn.Write(data)
	stop()

	if n == 0 {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return 0, &SendError{URI: c.target.URI(), Err: err}
	}
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			c.timedOut = true
			c.logger.VerboseMsg("[%s] partial send to %s: %d of %d bytes", c.id, c.target.URI(), n, len(data))
			return n, nil
		}
		return n, errors.Wrapf(err, "writing to %s", c.target.URI())
	}

	c.logger.VerboseMsg("[%s] sent %d bytes to %s", c.id, n, c.target.URI())
	return n, nil
}

func (c *Conn) encode(payload interface{}) ([]byte, error) {
	out := payload
	if c.codec != nil {
		var err error
		if out, err = c.codec.Encode(payload); err != nil {
			return nil, errors.Wrap(err, "encoding payload")
		}
	}

	switch v := out.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, &NotStringError{Type: fmt.Sprintf("%T", out)}
	}
}

// Receive reads with the current strategy, opening the Conn first if
// needed, and returns the decoded payload. Without a codec the payload is
// the []byte read.
func (c *Conn) Receive(ctx context.Context) (interface{}, error) {
	data, err := c.ReceiveBytes(ctx)
	if err != nil {
		return nil, err
	}

	if c.codec == nil {
		return data, nil
	}

	v, err := c.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "decoding received data")
	}
	return v, nil
}

// ReceiveBytes is Receive without decoding. A read that stops before any
// byte arrived is a *ReadError whose Cause says why; bytes followed by EOF
// are returned without error. An empty delimited record is not an error.
func (c *Conn) ReceiveBytes(ctx context.Context) ([]byte, error) {
	if c.strategy == nil {
		return nil, ErrNoReadStrategy
	}
	if err := c.Open(ctx); err != nil {
		return nil, err
	}

	conn := c.conn
	if err := conn.SetReadDeadline(c.deadline()); err != nil {
		return nil, &ReadError{URI: c.target.URI(), Strategy: c.strategy.Name(), Cause: err}
	}
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(aLongTimeAgo)
	})
	data, cause := c.strategy.ReadFrom(c.r)
	stop()

	c.timedOut = cause == read.ErrWouldBlock
	if cause == io.EOF {
		c.eof = true
	}

	if len(data) == 0 && cause != nil {
		if ctx.Err() != nil {
			cause = ctx.Err()
		}
		c.logger.VerboseMsg("[%s] nothing read from %s: %s", c.id, c.target.URI(), cause)
		return nil, &ReadError{URI: c.target.URI(), Strategy: c.strategy.Name(), Cause: cause}
	}

	c.logger.VerboseMsg("[%s] received %d bytes from %s", c.id, len(data), c.target.URI())
	return data, nil
}

// IsEOF reports whether the peer has closed its side. A closed Conn is at
// EOF.
func (c *Conn) IsEOF() bool {
	if c.conn == nil {
		return true
	}
	return c.eof
}

// Metadata describes the state of an open socket.
type Metadata struct {
	URI         string
	StreamType  string
	Blocked     bool
	TimedOut    bool
	EOF         bool
	UnreadBytes int
	LocalAddr   string
	RemoteAddr  string
	Strategy    string
}

// Metadata returns the socket state. ok is false when the Conn is closed.
func (c *Conn) Metadata() (md Metadata, ok bool) {
	if c.conn == nil {
		return Metadata{}, false
	}

	md = Metadata{
		URI:         c.target.URI(),
		StreamType:  c.target.Protocol().String() + "_socket",
		Blocked:     c.blocking,
		TimedOut:    c.timedOut,
		EOF:         c.eof,
		UnreadBytes: c.r.Buffered(),
		Strategy:    c.StrategyName(),
	}
	if a := c.conn.LocalAddr(); a != nil {
		md.LocalAddr = a.String()
	}
	if a := c.conn.RemoteAddr(); a != nil {
		md.RemoteAddr = a.String()
	}
	return md, true
}

// With opens a Conn to target, passes it to fn and closes it when fn
// returns, also when fn panics. A close failure is logged, not returned.
func With(ctx context.Context, target config.Target, fn func(*Conn) error, opts ...Option) error {
	c := New(target, opts...)
	defer func() {
		if err := c.Close(); err != nil {
			c.logger.ErrorMsg("%s", err)
		}
	}()

	if err := c.Open(ctx); err != nil {
		return err
	}
	return fn(c)
}
