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

// Package errinfo provides ErrorInfo, a small immutable value that describes
// an error for callers: a classification tag, a human message, details, an
// HTTP-style status and the UTC instant the value was created.
//
// An ErrorInfo always serializes to a single-key envelope:
//
//	{
//	  "error": {
//	    "type": "TypeError",
//	    "message": "An error occurred",
//	    "details": "Invalid input",
//	    "status": 400,
//	    "timestamp": "2024-01-01T12:00:00Z"
//	  }
//	}
//
// The same shape is used for JSON, YAML, HTTP bodies (package httpx) and
// gRPC status details (package grpcx).
package errinfo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// TimestampLayout is the layout of ErrorInfo timestamps (RFC3339, second
// precision, always UTC).
const TimestampLayout = time.RFC3339

// ErrorInfo describes an error of arbitrary origin.
//
// Fields are set once, by New or by decoding, and are only exposed through
// accessors. ErrorInfo is a plain value: copy it freely and compare it with ==.
type ErrorInfo struct {
	typ       string
	message   string
	details   string
	status    uint16
	timestamp string
}

// New builds an ErrorInfo stamped with the current UTC time.
//
// No validation is performed: empty strings and any status are accepted.
// Options are applied in order after the defaults.
func New(errorType, message string, status uint16, details string, opts ...Option) ErrorInfo {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return ErrorInfo{
		typ:       errorType,
		message:   message,
		details:   details,
		status:    status,
		timestamp: formatTimestamp(o.now()),
	}
}

// Type returns the classification tag, e.g. "TypeError".
func (e ErrorInfo) Type() string { return e.typ }

// Message returns the human-readable summary.
func (e ErrorInfo) Message() string { return e.message }

// Details returns the additional context.
func (e ErrorInfo) Details() string { return e.details }

// Status returns the HTTP-style status code.
func (e ErrorInfo) Status() uint16 { return e.status }

// Timestamp returns the RFC3339 creation time as stored.
func (e ErrorInfo) Timestamp() string { return e.timestamp }

// Time parses Timestamp. It fails for a zero ErrorInfo or for a decoded
// value whose timestamp is not RFC3339.
func (e ErrorInfo) Time() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, e.timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, e.timestamp)
	}
	return t, nil
}

// IsZero reports whether e is the zero ErrorInfo.
func (e ErrorInfo) IsZero() bool { return e == ErrorInfo{} }

// Error implements the built-in error interface.
//
// The format is:
//
//	<type>: <message>
//
// or just the message when the type tag is empty.
func (e ErrorInfo) Error() string {
	if e.typ == "" {
		return e.message
	}
	return e.typ + ": " + e.message
}

// LogValue implements slog.LogValuer so an ErrorInfo logs as a group.
func (e ErrorInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", e.typ),
		slog.String("message", e.message),
		slog.String("details", e.details),
		slog.Int("status", int(e.status)),
		slog.String("timestamp", e.timestamp),
	)
}

// From describes err as an ErrorInfo.
//
// If err's chain already holds an ErrorInfo, that value is returned as is and
// status is ignored. Otherwise the type tag is err's dynamic Go type (without
// pointer marker), the message is err.Error() and the details carry the
// message of the directly wrapped cause, if any. A nil err yields the zero
// ErrorInfo.
func From(err error, status uint16, opts ...Option) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}
	var info ErrorInfo
	if errors.As(err, &info) {
		return info
	}
	var details string
	if cause := errors.Unwrap(err); cause != nil {
		details = cause.Error()
	}
	return New(typeName(err), err.Error(), status, details, opts...)
}

func typeName(err error) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
