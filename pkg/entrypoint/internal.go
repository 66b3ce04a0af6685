package entrypoint

import (
	"context"

	"dominicbreuker/gostream/pkg/codec"
	"dominicbreuker/gostream/pkg/config"
	"dominicbreuker/gostream/pkg/log"
	"dominicbreuker/gostream/pkg/read"
	"dominicbreuker/gostream/pkg/stream"
)

// session is the part of a stream the connect loop drives.
type session interface {
	Open(ctx context.Context) error
	Close() error
	Target() config.Target
	SetTimeout(seconds int) error
	SetReadTimeout(seconds, microseconds int) error
	SetBlocking(blocking bool) error
	IsReadyForReading() (bool, error)
	Send(ctx context.Context, payload interface{}) (int, error)
	Receive(ctx context.Context) (interface{}, error)
}

// sessionFactory is a function type for creating sessions.
type sessionFactory func(cfg *config.Shared, deps *config.Dependencies, logger *log.Logger) (session, error)

// realSessionFactory returns the stream-backed factory used in production.
func realSessionFactory() sessionFactory {
	return func(cfg *config.Shared, deps *config.Dependencies, logger *log.Logger) (session, error) {
		strategy, err := read.ByName(cfg.Strategy, cfg.Length, cfg.Delimiter)
		if err != nil {
			return nil, err
		}

		cd, err := codec.ByName(cfg.Codec)
		if err != nil {
			return nil, err
		}

		opts := []stream.Option{
			stream.WithStrategy(strategy),
			stream.WithCodec(cd),
			stream.WithDependencies(deps),
			stream.WithLogger(logger),
		}
		if cfg.LogFile != "" {
			opts = append(opts, stream.WithTrafficLog(cfg.LogFile))
		}

		return stream.New(cfg.Target, opts...), nil
	}
}
