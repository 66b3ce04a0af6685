// Package entrypoint runs the commands of the CLI.
package entrypoint

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"dominicbreuker/gostream/pkg/codec"
	"dominicbreuker/gostream/pkg/config"
	"dominicbreuker/gostream/pkg/log"
	"dominicbreuker/gostream/pkg/pipeio"
	"dominicbreuker/gostream/pkg/read"
	"dominicbreuker/gostream/pkg/stream"
)

// pollInterval is how often the session checks for data the peer sent on
// its own.
const pollInterval = 100 * time.Millisecond

// lingerTimeout is the minimum time to wait for a last reply after stdin
// hits EOF.
const lingerTimeout = time.Second

var errPeerClosed = errors.New("connection closed by peer")

// Connect opens a stream to cfg.Target, sends every stdin line and prints
// whatever comes back until stdin ends, the peer closes or ctx is done.
func Connect(ctx context.Context, cfg *config.Shared, deps *config.Dependencies) error {
	return connect(ctx, cfg, deps, realSessionFactory())
}

func connect(parent context.Context, cfg *config.Shared, deps *config.Dependencies, newSession sessionFactory) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	logger := log.NewLogger(cfg.Verbose)

	s, err := newSession(cfg, deps, logger)
	if err != nil {
		return fmt.Errorf("preparing session: %w", err)
	}

	if err := s.Open(ctx); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.ErrorMsg("%s", err)
		}
	}()

	if err := configure(s, cfg); err != nil {
		return fmt.Errorf("configuring socket: %w", err)
	}

	logger.InfoMsg("Connected to %s", s.Target().URI())

	stdio := pipeio.NewStdio(config.GetStdinFunc(deps)(), config.GetStdoutFunc(deps)())
	defer stdio.Close()

	if stdio.Interactive() {
		logger.InfoMsg("Type lines to send, Ctrl-D to quit")
	}

	err = loop(ctx, cfg, s, stdio, logger)
	if err == errPeerClosed {
		logger.InfoMsg("Connection closed by %s", s.Target().URI())
		return nil
	}
	return err
}

func loop(ctx context.Context, cfg *config.Shared, s session, stdio *pipeio.Stdio, logger *log.Logger) error {
	lines := stdio.Lines()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.VerboseMsg("session cancelled: %s", ctx.Err())
			return nil

		case line, ok := <-lines:
			if !ok {
				if cfg.ReadTimeout < lingerTimeout {
					if err := s.SetReadTimeout(int(lingerTimeout/time.Second), 0); err != nil {
						return err
					}
				}
				return drain(ctx, s, stdio)
			}

			p, err := payload(cfg, line)
			if err != nil {
				logger.ErrorMsg("not sent: %s", err)
				continue
			}
			if _, err := s.Send(ctx, p); err != nil {
				return fmt.Errorf("sending: %w", err)
			}
			if err := drain(ctx, s, stdio); err != nil {
				return err
			}

		case <-ticker.C:
			if err := drain(ctx, s, stdio); err != nil {
				return err
			}
		}
	}
}

// configure applies the socket settings of cfg to an open session.
func configure(s session, cfg *config.Shared) error {
	if cfg.Timeout > 0 {
		// round up so sub-second timeouts don't turn into "no timeout"
		if err := s.SetTimeout(int((cfg.Timeout + time.Second - 1) / time.Second)); err != nil {
			return err
		}
	}

	sec := int(cfg.ReadTimeout / time.Second)
	usec := int(cfg.ReadTimeout % time.Second / time.Microsecond)
	if err := s.SetReadTimeout(sec, usec); err != nil {
		return err
	}

	if cfg.NonBlocking {
		return s.SetBlocking(false)
	}
	return nil
}

// payload turns a stdin line into what the codec expects.
func payload(cfg *config.Shared, line string) (interface{}, error) {
	if cfg.Codec != "json" {
		return line + "\n", nil
	}
	return codec.JSON{}.Decode([]byte(line))
}

// drain prints everything the peer has sent until the socket stops being
// readable within the read timeout.
func drain(ctx context.Context, s session, out io.Writer) error {
	for {
		ready, err := s.IsReadyForReading()
		if err != nil {
			return err
		}
		if !ready {
			return nil
		}

		v, err := s.Receive(ctx)
		if err != nil {
			var re *stream.ReadError
			switch {
			case errors.As(err, &re) && errors.Is(err, io.EOF):
				return errPeerClosed
			case errors.As(err, &re) && errors.Is(err, read.ErrWouldBlock):
				return nil
			case ctx.Err() != nil:
				return nil
			default:
				return fmt.Errorf("receiving: %w", err)
			}
		}

		if err := show(out, v); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
}

func show(out io.Writer, v interface{}) error {
	var b []byte
	switch p := v.(type) {
	case []byte:
		b = p
	case string:
		b = []byte(p)
	default:
		enc, err := codec.JSON{}.Encode(v)
		if err != nil {
			return err
		}
		b = enc.([]byte)
	}

	_, err := out.Write(b)
	return err
}
