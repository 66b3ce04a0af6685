package config

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// Target identifies the remote end of a stream. It is immutable once built
// by NewTarget, ParseTarget or ParseURI.
type Target struct {
	path     string
	protocol Protocol
	port     int
}

// NewTarget validates and returns a Target. The port is not checked for unix
// sockets, where it is ignored.
func NewTarget(path string, protocol Protocol, port int) (Target, error) {
	if err := ValidateProtocol(protocol); err != nil {
		return Target{}, err
	}

	if protocol != ProtoUnix {
		if err := ValidatePort(port); err != nil {
			return Target{}, err
		}
	}

	if err := ValidatePath(path); err != nil {
		return Target{}, err
	}

	return Target{path: path, protocol: protocol, port: port}, nil
}

// ParseTarget is NewTarget with the protocol given by name.
func ParseTarget(path, protocol string, port int) (Target, error) {
	proto, err := ParseProtocol(protocol)
	if err != nil {
		return Target{}, err
	}

	return NewTarget(path, proto, port)
}

var uriRe = regexp.MustCompile(`^([a-z]*)://(.*?)(?::(\d+))?$`)

// ParseURI parses "protocol://path[:port]". Unix paths never carry a port.
func ParseURI(uri string) (Target, error) {
	m := uriRe.FindStringSubmatch(uri)
	if m == nil {
		return Target{}, &ValidationError{Kind: ErrInvalidArgument, Value: fmt.Sprintf("%q", uri), Constraint: "protocol://path[:port]"}
	}

	proto, err := ParseProtocol(m[1])
	if err != nil {
		return Target{}, err
	}

	path, portStr := m[2], m[3]
	if proto == ProtoUnix && portStr != "" {
		path = path + ":" + portStr
		portStr = ""
	}

	// strip brackets of IPv6 literals, Address adds them back
	if len(path) > 1 && path[0] == '[' && path[len(path)-1] == ']' {
		path = path[1 : len(path)-1]
	} else if proto != ProtoUnix && strings.Contains(path, ":") {
		return Target{}, &ValidationError{Kind: ErrInvalidArgument, Value: fmt.Sprintf("%q", uri), Constraint: "IPv6 hosts in brackets, e.g. [::1]:port"}
	}

	port := 0
	if portStr != "" {
		if port, err = strconv.Atoi(portStr); err != nil {
			return Target{}, &ValidationError{Kind: ErrInvalidPort, Value: portStr, Constraint: "int in [1, 65535]"}
		}
	}

	return NewTarget(path, proto, port)
}

// Path ...
func (t Target) Path() string {
	return t.path
}

// Protocol ...
func (t Target) Protocol() Protocol {
	return t.protocol
}

// Port ...
func (t Target) Port() int {
	return t.port
}

// URI returns "protocol://path", with ":port" appended when port > 0.
func (t Target) URI() string {
	uri := t.protocol.String() + "://" + t.path
	if t.port > 0 {
		uri += ":" + strconv.Itoa(t.port)
	}

	return uri
}

// Network returns the name of the network as understood by package net.
func (t Target) Network() string {
	return t.protocol.String()
}

// Address returns the address to dial: host:port for tcp and udp, the socket
// path for unix.
func (t Target) Address() string {
	if t.protocol == ProtoUnix {
		return t.path
	}

	return net.JoinHostPort(t.path, strconv.Itoa(t.port))
}

// String ...
func (t Target) String() string {
	return t.URI()
}
