package config

import (
	"fmt"
	"time"
)

// Protocol is the socket type of a connection target.
type Protocol int

const (
	ProtoTCP  Protocol = 1
	ProtoUDP  Protocol = 2
	ProtoUnix Protocol = 3
)

// String returns the URI scheme of the protocol, or "" if unknown.
func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	case ProtoUnix:
		return "unix"
	default:
		return ""
	}
}

// ParseProtocol maps a scheme name (tcp, udp, unix) to a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch s {
	case "tcp":
		return ProtoTCP, nil
	case "udp":
		return ProtoUDP, nil
	case "unix":
		return ProtoUnix, nil
	}

	return 0, &ValidationError{Kind: ErrInvalidProtocol, Value: fmt.Sprintf("%q", s), Constraint: "one of tcp|udp|unix"}
}

// Shared holds the settings of the connect command.
type Shared struct {
	Target      Target
	Strategy    string
	Length      int
	Delimiter   string
	Codec       string
	Timeout     time.Duration
	ReadTimeout time.Duration
	NonBlocking bool
	LogFile     string
	Verbose     bool
}

// Strategy names accepted by the connect command.
var strategies = map[string]bool{"char": true, "line": true, "buffer": true, "drain": true, "delimited": true}

// Codec names accepted by the connect command.
var codecs = map[string]bool{"raw": true, "json": true}

func (c *Shared) Validate() []error {
	var errors []error

	if !strategies[c.Strategy] {
		errors = append(errors, fmt.Errorf("'--strategy' must be one of char|line|buffer|drain|delimited, got %q", c.Strategy))
	}

	if c.Length < 0 {
		errors = append(errors, fmt.Errorf("'--length' must be >= 0"))
	}

	if c.Delimiter != "" && c.Strategy != "delimited" {
		errors = append(errors, fmt.Errorf("You must use '--strategy delimited' to use '--delimiter'"))
	}

	if !codecs[c.Codec] {
		errors = append(errors, fmt.Errorf("'--codec' must be one of raw|json, got %q", c.Codec))
	}

	if c.Timeout < 0 {
		errors = append(errors, fmt.Errorf("'--timeout' must be >= 0"))
	}

	if c.ReadTimeout < 0 {
		errors = append(errors, fmt.Errorf("'--read-timeout' must be >= 0"))
	}

	return errors
}
