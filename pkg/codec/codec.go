// Package codec defines the optional transformation applied to payloads
// around every send and receive of a stream.
//
// Encode must produce []byte or string; anything else is rejected by the
// stream before it touches the socket. Codecs are stateless and may be
// shared by any number of streams.
package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Codec transforms outgoing payloads to bytes and incoming bytes to payloads.
type Codec interface {
	Encode(payload interface{}) (interface{}, error)
	Decode(data []byte) (interface{}, error)
}

// Identity passes payloads through unchanged.
type Identity struct{}

func (Identity) Encode(payload interface{}) (interface{}, error) { return payload, nil }

func (Identity) Decode(data []byte) (interface{}, error) { return data, nil }

// Funcs adapts a pair of functions to Codec. A nil function acts as identity.
type Funcs struct {
	EncodeFunc func(payload interface{}) (interface{}, error)
	DecodeFunc func(data []byte) (interface{}, error)
}

func (f Funcs) Encode(payload interface{}) (interface{}, error) {
	if f.EncodeFunc == nil {
		return payload, nil
	}
	return f.EncodeFunc(payload)
}

func (f Funcs) Decode(data []byte) (interface{}, error) {
	if f.DecodeFunc == nil {
		return data, nil
	}
	return f.DecodeFunc(data)
}

// Join concatenates slices of strings into one string on send, separated by
// Sep. Other payloads pass through. Decoding yields a string.
type Join struct {
	Sep string
}

func (j Join) Encode(payload interface{}) (interface{}, error) {
	switch p := payload.(type) {
	case []string:
		return strings.Join(p, j.Sep), nil
	case []interface{}:
		parts := make([]string, len(p))
		for i, v := range p {
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, j.Sep), nil
	default:
		return payload, nil
	}
}

func (Join) Decode(data []byte) (interface{}, error) {
	return string(data), nil
}

// JSON sends payloads as JSON documents terminated by a newline and decodes
// received documents into generic values (map[string]interface{}, []interface{},
// float64, string, bool or nil).
type JSON struct{}

func (JSON) Encode(payload interface{}) (interface{}, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "json.Marshal")
	}
	return append(b, '\n'), nil
}

func (JSON) Decode(data []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal")
	}
	return v, nil
}

// Gob encodes each payload as a self-contained gob stream. New must return a
// pointer to the value Decode fills; concrete payload types sent through an
// interface must be registered with gob.Register.
type Gob struct {
	New func() interface{}
}

func (Gob) Encode(payload interface{}) (interface{}, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, errors.Wrap(err, "gob.Encode")
	}
	return buf.Bytes(), nil
}

func (g Gob) Decode(data []byte) (interface{}, error) {
	if g.New == nil {
		return nil, errors.New("gob codec: no New func to decode into")
	}

	v := g.New()
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return nil, errors.Wrap(err, "gob.Decode")
	}
	return v, nil
}

// ByName returns the codec the connect command selects with --codec.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "raw":
		return Identity{}, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q, must be one of raw|json", name)
	}
}
