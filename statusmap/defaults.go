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

// statusClientClosedRequest is the nginx "client closed request" status.
// net/http has no constant for it.
const statusClientClosedRequest = 499

// defaultGRPC maps well-known HTTP statuses to gRPC codes.
var defaultGRPC = map[uint16]codes.Code{
	// 4xx: client/protocol/resource issues.
	http.StatusBadRequest:           codes.InvalidArgument,
	http.StatusUnauthorized:         codes.Unauthenticated,
	http.StatusForbidden:            codes.PermissionDenied,
	http.StatusNotFound:             codes.NotFound,
	http.StatusMethodNotAllowed:     codes.Unimplemented,
	http.StatusRequestTimeout:       codes.DeadlineExceeded,
	http.StatusConflict:             codes.Aborted,
	http.StatusGone:                 codes.NotFound, // gRPC has no 410.
	http.StatusPreconditionFailed:   codes.FailedPrecondition,
	http.StatusUnsupportedMediaType: codes.InvalidArgument,
	http.StatusUnprocessableEntity:  codes.InvalidArgument,
	http.StatusTooEarly:             codes.FailedPrecondition,
	http.StatusTooManyRequests:      codes.ResourceExhausted,
	statusClientClosedRequest:       codes.Canceled,

	// 5xx: server / dependency / transient issues.
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusBadGateway:          codes.Unavailable,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
}

// defaultHTTP maps gRPC codes to HTTP statuses, following the grpc-gateway
// conventions.
var defaultHTTP = map[codes.Code]uint16{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           statusClientClosedRequest,
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}
