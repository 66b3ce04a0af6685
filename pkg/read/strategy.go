package read

import (
	"bytes"
	"fmt"
	"io"

	"dominicbreuker/gostream/pkg/config"
)

const (
	// DefaultDrainLength is the Drain limit used by NewDrain.
	DefaultDrainLength = 1024

	// CurrentPosition makes Drain start where the previous read stopped.
	CurrentPosition = -1

	// DefaultDelimitedLength applies when Delimited is built with length 0.
	DefaultDelimitedLength = 8192
)

// Char reads exactly one byte.
type Char struct{}

// NewChar ...
func NewChar() Char {
	return Char{}
}

func (Char) Name() string { return "char" }

func (Char) ReadFrom(src Source) ([]byte, error) {
	b, err := src.ReadByte()
	if err != nil {
		return nil, classify(err)
	}
	return []byte{b}, nil
}

// Line reads up to and including the next '\n', returning at most max bytes.
type Line struct {
	max int
}

// NewLine returns a Line strategy. max = 0 means no limit.
func NewLine(max int) (Line, error) {
	if err := config.ValidateIntRange(config.ErrInvalidArgument, max, 0, config.NoBound, true); err != nil {
		return Line{}, fmt.Errorf("line max length: %w", err)
	}
	return Line{max: max}, nil
}

func (Line) Name() string { return "line" }

// Max ...
func (l Line) Max() int { return l.max }

func (l Line) ReadFrom(src Source) ([]byte, error) {
	var out []byte
	for l.max == 0 || len(out) < l.max {
		b, err := src.ReadByte()
		if err != nil {
			return out, classify(err)
		}
		out = append(out, b)
		if b == '\n' {
			break
		}
	}
	return out, nil
}

// Buffer performs a single read of up to max bytes. It returns what the
// socket has available without waiting for more.
type Buffer struct {
	max int
}

// NewBuffer ...
func NewBuffer(max int) (Buffer, error) {
	if err := config.ValidateIntRange(config.ErrInvalidArgument, max, 0, config.NoBound, true); err != nil {
		return Buffer{}, fmt.Errorf("buffer max length: %w", err)
	}
	return Buffer{max: max}, nil
}

func (Buffer) Name() string { return "buffer" }

// Max ...
func (b Buffer) Max() int { return b.max }

func (b Buffer) ReadFrom(src Source) ([]byte, error) {
	if b.max == 0 {
		return nil, ErrEmptyRead
	}

	p := make([]byte, b.max)
	n, err := src.Read(p)
	return p[:n], classify(err)
}

// Drain waits for data, then takes everything already buffered up to max
// bytes. It never waits for more once something arrived. With an offset it
// first skips that many bytes.
type Drain struct {
	max    int
	offset int
}

// NewDrain returns a Drain with the default limit, reading from the current
// position.
func NewDrain() Drain {
	return Drain{max: DefaultDrainLength, offset: CurrentPosition}
}

// NewDrainAt returns a Drain with explicit limits. offset must be >= 0 or
// CurrentPosition.
func NewDrainAt(max, offset int) (Drain, error) {
	if err := config.ValidateIntRange(config.ErrInvalidArgument, max, 0, config.NoBound, true); err != nil {
		return Drain{}, fmt.Errorf("drain max length: %w", err)
	}
	if offset != CurrentPosition {
		if err := config.ValidateIntRange(config.ErrInvalidArgument, offset, 0, config.NoBound, true); err != nil {
			return Drain{}, fmt.Errorf("drain offset: %w", err)
		}
	}
	return Drain{max: max, offset: offset}, nil
}

func (Drain) Name() string { return "drain" }

// Max ...
func (d Drain) Max() int { return d.max }

// Offset ...
func (d Drain) Offset() int { return d.offset }

func (d Drain) ReadFrom(src Source) ([]byte, error) {
	if d.offset > 0 {
		if _, err := src.Discard(d.offset); err != nil {
			return nil, classify(err)
		}
	}

	if d.max == 0 {
		return nil, ErrEmptyRead
	}

	p := make([]byte, d.max)
	n, err := io.ReadAtLeast(src, p, 1)
	for err == nil && n < d.max && src.Buffered() > 0 {
		var m int
		m, err = src.Read(p[n:])
		n += m
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return p[:n], classify(err)
}

// Delimited reads up to length bytes, stopping early after delim. The
// delimiter is consumed but not returned. Without a delimiter it reads
// length bytes or until EOF.
type Delimited struct {
	length int
	delim  []byte
}

// NewDelimited returns a Delimited strategy. length = 0 selects
// DefaultDelimitedLength; delim may be empty.
func NewDelimited(length int, delim string) (Delimited, error) {
	if err := config.ValidateIntRange(config.ErrInvalidArgument, length, 0, config.NoBound, true); err != nil {
		return Delimited{}, fmt.Errorf("delimited length: %w", err)
	}
	if length == 0 {
		length = DefaultDelimitedLength
	}
	return Delimited{length: length, delim: []byte(delim)}, nil
}

func (Delimited) Name() string { return "delimited" }

// Length ...
func (d Delimited) Length() int { return d.length }

// Delimiter ...
func (d Delimited) Delimiter() string { return string(d.delim) }

func (d Delimited) ReadFrom(src Source) ([]byte, error) {
	if len(d.delim) == 0 {
		p := make([]byte, d.length)
		n, err := io.ReadFull(src, p)
		return p[:n], classify(err)
	}

	var out []byte
	for len(out) < d.length {
		b, err := src.ReadByte()
		if err != nil {
			return out, classify(err)
		}
		out = append(out, b)
		if bytes.HasSuffix(out, d.delim) {
			return out[:len(out)-len(d.delim)], nil
		}
	}
	return out, nil
}

// ByName builds a strategy from its name, as used on the command line.
// length is the max/length parameter of the strategy; 0 keeps the default
// where one exists.
func ByName(name string, length int, delim string) (Strategy, error) {
	var (
		s   Strategy
		err error
	)

	switch name {
	case "char":
		s = NewChar()
	case "line":
		s, err = NewLine(length)
	case "buffer":
		if length == 0 {
			length = DefaultDrainLength
		}
		s, err = NewBuffer(length)
	case "drain":
		if length == 0 {
			s = NewDrain()
		} else {
			s, err = NewDrainAt(length, CurrentPosition)
		}
	case "delimited":
		s, err = NewDelimited(length, delim)
	default:
		return nil, &config.ValidationError{Kind: config.ErrInvalidArgument, Value: fmt.Sprintf("%q", name), Constraint: "one of char|line|buffer|drain|delimited"}
	}

	if err != nil {
		return nil, err
	}
	return s, nil
}
