package shared

import (
	"fmt"
	"strconv"

	"dominicbreuker/gostream/pkg/config"
)

// ParseTarget parses a target string in the format "protocol://path[:port]"
// where protocol is one of tcp, udp or unix. Unix targets carry a socket
// path and no port.
func ParseTarget(s string) (config.Target, error) {
	t, err := config.ParseURI(s)
	if err != nil {
		return config.Target{}, parsingError(s, err)
	}

	return t, nil
}

// ParseDelimiter expands the escape sequences a user can type on the command
// line (\n, \r, \t, \xNN and the other Go escapes) so delimiters like
// "\r\n" work.
func ParseDelimiter(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	out, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return "", fmt.Errorf("parsing delimiter %q: %s", s, err)
	}

	return out, nil
}

func parsingError(s string, err error) error {
	return fmt.Errorf("parsing %s: format should be 'protocol://host:port' or 'unix://path', where protocol = tcp|udp|unix: %w", s, err)
}
