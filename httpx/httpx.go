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

// Package httpx writes and reads errinfo.ErrorInfo envelopes over HTTP.
package httpx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"dirpx.dev/errinfo"
	"dirpx.dev/errinfo/statusmap"
)

// MaxBodySize bounds how much of a response body Decode reads.
const MaxBodySize = 1 << 20

var (
	// ErrNoBody is returned by Decode when the response has no body.
	ErrNoBody = errors.New("httpx: response has no body")

	// ErrContentType is returned by Decode when the response is not JSON.
	ErrContentType = errors.New("httpx: unexpected content type")
)

// Writer is a thin adapter that turns an errinfo.ErrorInfo into an HTTP
// response.
type Writer struct {
	// Logger receives encoding failures and handler errors.
	// Nil means slog.Default().
	Logger *slog.Logger
}

// Write sends info as a JSON envelope with info.Status() as the HTTP status.
// Statuses that cannot appear on a status line (outside 100..599) are sent
// as 500; the body still carries the original value.
//
// If the envelope cannot be encoded, the failure is logged and a plain 500
// is written instead.
func (w Writer) Write(rw http.ResponseWriter, info errinfo.ErrorInfo) {
	b, err := info.JSON()
	if err != nil {
		w.logger().Error("failed to encode error envelope", "error", err, "info", info)
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := int(info.Status())
	if !statusmap.ValidHTTP(info.Status()) {
		status = http.StatusInternalServerError
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.Header().Set("Content-Length", strconv.Itoa(len(b)))
	rw.WriteHeader(status)
	_, _ = rw.Write(b)
}

// HandlerFunc is an http.HandlerFunc that may fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handle adapts h to http.Handler. A returned error is described with
// errinfo.From (500 unless the chain already holds an ErrorInfo) and written
// with Write. h must not have written a response when it returns an error.
func (w Writer) Handle(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		err := h(rw, r)
		if err == nil {
			return
		}
		info := errinfo.From(err, http.StatusInternalServerError)
		w.logger().Warn("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", info,
		)
		w.Write(rw, info)
	})
}

func (w Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Decode reads an error envelope from resp's body. The caller still owns
// and closes the body.
func Decode(resp *http.Response) (errinfo.ErrorInfo, error) {
	if resp == nil || resp.Body == nil || resp.Body == http.NoBody {
		return errinfo.ErrorInfo{}, ErrNoBody
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return errinfo.ErrorInfo{}, fmt.Errorf("%w: %q", ErrContentType, ct)
		}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return errinfo.ErrorInfo{}, fmt.Errorf("httpx: read body: %w", err)
	}
	if len(b) == 0 {
		return errinfo.ErrorInfo{}, ErrNoBody
	}
	return errinfo.Parse(b)
}
