package config

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Validation error kinds. A *ValidationError unwraps to one of these.
var (
	ErrInvalidProtocol = errors.New("invalid protocol")
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrInvalidArgument = errors.New("invalid argument")
)

// NoBound disables the lower or upper bound in ValidateIntRange.
const NoBound = math.MinInt

// ValidationError reports a value that violates a constraint.
type ValidationError struct {
	Kind       error
	Value      interface{}
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: got %v, want %s", e.Kind, e.Value, e.Constraint)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// ValidatableConfig ...
type ValidatableConfig interface {
	Validate() []error
}

// Validate ...
func Validate(cfgs ...ValidatableConfig) []error {
	var out []error

	for _, cfg := range cfgs {
		out = append(out, cfg.Validate()...)
	}

	return out
}

// ValidateIntRange checks min <= value <= max when inclusive and
// min < value < max otherwise. Pass NoBound to leave a side open.
func ValidateIntRange(kind error, value, min, max int, inclusive bool) error {
	ok := true
	if min != NoBound {
		ok = ok && (value > min || (inclusive && value == min))
	}
	if max != NoBound {
		ok = ok && (value < max || (inclusive && value == max))
	}
	if ok {
		return nil
	}

	return &ValidationError{Kind: kind, Value: value, Constraint: describeRange(min, max, inclusive)}
}

func describeRange(min, max int, inclusive bool) string {
	lo, hi := "(", ")"
	if inclusive {
		lo, hi = "[", "]"
	}

	minStr, maxStr := "-inf", "+inf"
	if min != NoBound {
		minStr = fmt.Sprint(min)
	} else {
		lo = "("
	}
	if max != NoBound {
		maxStr = fmt.Sprint(max)
	} else {
		hi = ")"
	}

	return fmt.Sprintf("int in %s%s, %s%s", lo, minStr, maxStr, hi)
}

// ValidateProtocol ...
func ValidateProtocol(p Protocol) error {
	switch p {
	case ProtoTCP, ProtoUDP, ProtoUnix:
		return nil
	}

	return &ValidationError{Kind: ErrInvalidProtocol, Value: int(p), Constraint: "one of tcp|udp|unix"}
}

// ValidatePort ...
func ValidatePort(port int) error {
	return ValidateIntRange(ErrInvalidPort, port, 1, 65535, true)
}

// ValidatePath ...
func ValidatePath(path string) error {
	if len(path) < 1 {
		return &ValidationError{Kind: ErrInvalidPath, Value: fmt.Sprintf("%q", path), Constraint: "non-empty string"}
	}

	return nil
}

// ValidateSeconds ...
func ValidateSeconds(seconds int) error {
	return ValidateIntRange(ErrInvalidTimeout, seconds, 0, NoBound, true)
}

// ValidateMicroseconds ...
func ValidateMicroseconds(micros int) error {
	return ValidateIntRange(ErrInvalidTimeout, micros, 0, NoBound, true)
}
