/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package errinfo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingEnvelope is returned when a payload has no "error" object.
	ErrMissingEnvelope = errors.New("errinfo: missing error envelope")

	// ErrMalformed is returned when a payload cannot be decoded as an
	// ErrorInfo envelope.
	ErrMalformed = errors.New("errinfo: malformed payload")

	// ErrInvalidTimestamp is returned by ErrorInfo.Time when the stored
	// timestamp is not RFC3339.
	ErrInvalidTimestamp = errors.New("errinfo: invalid timestamp")
)

var (
	_ json.Marshaler   = ErrorInfo{}
	_ json.Unmarshaler = (*ErrorInfo)(nil)
	_ yaml.Marshaler   = ErrorInfo{}
	_ yaml.Unmarshaler = (*ErrorInfo)(nil)
	_ error            = ErrorInfo{}
	_ fmt.Stringer     = ErrorInfo{}
)

// body is the wire form of the fields. Field order is the key order.
type body struct {
	Type      string `json:"type" yaml:"type"`
	Message   string `json:"message" yaml:"message"`
	Details   string `json:"details" yaml:"details"`
	Status    uint16 `json:"status" yaml:"status"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// envelope wraps body under the single top-level "error" key.
type envelope struct {
	Error *body `json:"error" yaml:"error"`
}

func (e ErrorInfo) envelope() envelope {
	return envelope{Error: &body{
		Type:      e.typ,
		Message:   e.message,
		Details:   e.details,
		Status:    e.status,
		Timestamp: e.timestamp,
	}}
}

func (e *ErrorInfo) fromEnvelope(env envelope) error {
	if env.Error == nil {
		return ErrMissingEnvelope
	}
	*e = ErrorInfo{
		typ:       env.Error.Type,
		message:   env.Error.Message,
		details:   env.Error.Details,
		status:    env.Error.Status,
		timestamp: env.Error.Timestamp,
	}
	return nil
}

// JSON returns the compact JSON envelope. HTML characters are not escaped
// and there is no trailing newline.
func (e ErrorInfo) JSON() ([]byte, error) {
	return e.encode("")
}

// Pretty returns the JSON envelope indented with two spaces.
func (e ErrorInfo) Pretty() (string, error) {
	b, err := e.encode("  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// String implements fmt.Stringer with the Pretty form. If serialization
// fails it returns the Error text instead.
func (e ErrorInfo) String() string {
	s, err := e.Pretty()
	if err != nil {
		return e.Error()
	}
	return s
}

func (e ErrorInfo) encode(indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(e.envelope()); err != nil {
		return nil, fmt.Errorf("errinfo: encode: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalJSON implements json.Marshaler.
func (e ErrorInfo) MarshalJSON() ([]byte, error) {
	return e.JSON()
}

// UnmarshalJSON implements json.Unmarshaler. Unknown keys are ignored;
// a missing "error" object is rejected.
func (e *ErrorInfo) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return e.fromEnvelope(env)
}

// MarshalYAML implements yaml.Marshaler with the same envelope as JSON.
func (e ErrorInfo) MarshalYAML() (any, error) {
	return e.envelope(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *ErrorInfo) UnmarshalYAML(value *yaml.Node) error {
	var env envelope
	if err := value.Decode(&env); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return e.fromEnvelope(env)
}

// Parse decodes a JSON envelope.
func Parse(data []byte) (ErrorInfo, error) {
	var e ErrorInfo
	if err := e.UnmarshalJSON(data); err != nil {
		return ErrorInfo{}, err
	}
	return e, nil
}
