package stream

import (
	"dominicbreuker/gostream/pkg/codec"
	"dominicbreuker/gostream/pkg/config"
	"dominicbreuker/gostream/pkg/log"
	"dominicbreuker/gostream/pkg/read"
)

// Option configures a Conn in New.
type Option func(*Conn)

// WithCodec sets the codec applied around sends and receives.
func WithCodec(cd codec.Codec) Option {
	return func(c *Conn) { c.codec = cd }
}

// WithStrategy sets the initial read strategy.
func WithStrategy(s read.Strategy) Option {
	return func(c *Conn) { c.strategy = s }
}

// WithLogger replaces the default stderr logger. nil silences the Conn.
func WithLogger(l *log.Logger) Option {
	return func(c *Conn) { c.logger = l }
}

// WithDependencies injects dialers and the readiness poller.
func WithDependencies(deps *config.Dependencies) Option {
	return func(c *Conn) { c.deps = deps }
}

// WithTrafficLog appends everything sent and received to the file at path.
func WithTrafficLog(path string) Option {
	return func(c *Conn) { c.trafficLog = path }
}
