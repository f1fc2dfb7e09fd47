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

import "google.golang.org/grpc/codes"

// Option configures the Mapper at build time.
type Option func(*builder)

// WithGRPCOverride maps the HTTP status to c, ahead of every default.
func WithGRPCOverride(status uint16, c codes.Code) Option {
	return func(b *builder) { b.grpcOverride[status] = c }
}

// WithHTTPOverride maps the gRPC code c to status, ahead of every default.
func WithHTTPOverride(c codes.Code, status uint16) Option {
	return func(b *builder) { b.httpOverride[c] = status }
}

// WithGRPCFallback sets the gRPC code used for statuses no tier resolves.
func WithGRPCFallback(c codes.Code) Option {
	return func(b *builder) { b.grpcFallback = c }
}

// WithHTTPFallback sets the HTTP status used for codes no tier resolves.
func WithHTTPFallback(status uint16) Option {
	return func(b *builder) { b.httpFallback = status }
}
