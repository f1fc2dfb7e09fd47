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
	"net/http"

	"google.golang.org/grpc/codes"
)

type builder struct {
	// grpcOverride holds exact HTTP status -> gRPC code overrides.
	grpcOverride map[uint16]codes.Code
	// httpOverride holds exact gRPC code -> HTTP status overrides.
	httpOverride map[codes.Code]uint16

	grpcFallback codes.Code
	httpFallback uint16
}

func newBuilder() *builder {
	return &builder{
		// overrides are usually few
		grpcOverride: make(map[uint16]codes.Code),
		httpOverride: make(map[codes.Code]uint16),

		grpcFallback: codes.Unknown,
		httpFallback: http.StatusInternalServerError,
	}
}

// freeze copies a builder-owned map so the Mapper never shares it.
func freeze[K comparable, V any](src map[K]V) map[K]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
