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

package statusmap

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
)

// ErrInvalidRule is returned by New when an option would produce an
// unusable mapping.
var ErrInvalidRule = errors.New("statusmap: invalid rule")

// Mapper is an immutable HTTP status <-> gRPC code translation table.
type Mapper struct {
	grpcDefault  map[uint16]codes.Code
	grpcOverride map[uint16]codes.Code
	httpDefault  map[codes.Code]uint16
	httpOverride map[codes.Code]uint16

	grpcFallback codes.Code
	httpFallback uint16
}

// New builds a Mapper from the library defaults and opts.
//
// It fails when an option maps an HTTP status to codes.OK, or names an HTTP
// status outside 100..599.
func New(opts ...Option) (*Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	for s, c := range b.grpcOverride {
		if !validHTTP(s) {
			return nil, fmt.Errorf("%w: gRPC override for HTTP status %d", ErrInvalidRule, s)
		}
		if c == codes.OK {
			return nil, fmt.Errorf("%w: HTTP status %d overridden to OK", ErrInvalidRule, s)
		}
	}
	for c, s := range b.httpOverride {
		if !validHTTP(s) {
			return nil, fmt.Errorf("%w: HTTP override %d for gRPC code %s", ErrInvalidRule, s, c)
		}
	}
	if b.grpcFallback == codes.OK {
		return nil, fmt.Errorf("%w: gRPC fallback cannot be OK", ErrInvalidRule)
	}
	if !validHTTP(b.httpFallback) {
		return nil, fmt.Errorf("%w: HTTP fallback %d", ErrInvalidRule, b.httpFallback)
	}

	return &Mapper{
		grpcDefault:  freeze(defaultGRPC),
		grpcOverride: freeze(b.grpcOverride),
		httpDefault:  freeze(defaultHTTP),
		httpOverride: freeze(b.httpOverride),
		grpcFallback: b.grpcFallback,
		httpFallback: b.httpFallback,
	}, nil
}

// Default returns a Mapper with library defaults only.
func Default() *Mapper {
	m, _ := New()
	return m
}

// GRPCCode resolves the gRPC code for an HTTP status. It never returns
// codes.OK.
func (m *Mapper) GRPCCode(status uint16) codes.Code {
	c, _ := m.resolveGRPC(status)
	return c
}

// HTTPStatus resolves the HTTP status for a gRPC code.
func (m *Mapper) HTTPStatus(c codes.Code) uint16 {
	s, _ := m.resolveHTTP(c)
	return s
}

// Explain produces a textual trace of how the mapper resolves status, both
// to gRPC and back to HTTP.
//
// Example output:
//
//	status=404
//	grpc: source=default -> NotFound(5)
//	http: source=default NotFound(5) -> 404
//
// source is one of override, default, class or fallback.
func (m *Mapper) Explain(status uint16) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "status=%d\n", status)

	c, src := m.resolveGRPC(status)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)\n", src, c, int(c))

	s, src := m.resolveHTTP(c)
	_, _ = fmt.Fprintf(&b, "http: source=%s %s(%d) -> %d", src, c, int(c), s)

	return b.String()
}

func (m *Mapper) resolveGRPC(status uint16) (codes.Code, string) {
	if c, ok := m.grpcOverride[status]; ok {
		return c, "override"
	}
	if c, ok := m.grpcDefault[status]; ok {
		return c, "default"
	}
	switch {
	case status >= 400 && status < 500:
		return codes.FailedPrecondition, "class"
	case status >= 500 && status < 600:
		return codes.Internal, "class"
	}
	return m.grpcFallback, "fallback"
}

func (m *Mapper) resolveHTTP(c codes.Code) (uint16, string) {
	if s, ok := m.httpOverride[c]; ok {
		return s, "override"
	}
	if s, ok := m.httpDefault[c]; ok {
		return s, "default"
	}
	return m.httpFallback, "fallback"
}

// ValidHTTP reports whether status can be written as an HTTP status line.
func ValidHTTP(status uint16) bool { return validHTTP(status) }

func validHTTP(status uint16) bool {
	return status >= 100 && status <= 599
}
