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

// Package statusmap translates between the HTTP-style status carried by an
// errinfo.ErrorInfo and gRPC status codes.
//
// # Resolution model
//
// HTTP status -> gRPC code (Mapper.GRPCCode) is resolved in this order:
//
//  1. exact override for the status;
//  2. library default for the status (e.g. 404 -> NotFound);
//  3. class default: 4xx -> FailedPrecondition, 5xx -> Internal;
//  4. fallback (codes.Unknown unless changed).
//
// The result is never codes.OK, because an OK status carries no error.
//
// gRPC code -> HTTP status (Mapper.HTTPStatus) is resolved by override,
// then library default, then fallback (500 unless changed).
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := statusmap.New(
//	    statusmap.WithGRPCOverride(http.StatusConflict, codes.AlreadyExists),
//	    statusmap.WithHTTPOverride(codes.FailedPrecondition, http.StatusPreconditionFailed),
//	)
//
// All inputs are copied during New; a Mapper is immutable and safe for
// concurrent use.
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a status was
// resolved. It is meant for logs and tests, not for machine parsing.
package statusmap
