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

// Package grpcx carries errinfo.ErrorInfo across gRPC.
//
// On the server side UnaryServerInterceptor turns handler errors holding an
// ErrorInfo into gRPC statuses. The code comes from a statusmap.Mapper, the
// status message is the ErrorInfo message, and the full envelope is attached
// as a google.protobuf.Struct detail. On the client side
// UnaryClientInterceptor (or ExtractErrorInfo) restores the ErrorInfo.
package grpcx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errinfo"
	"dirpx.dev/errinfo/statusmap"
)

// envelopeKey is the single top-level key of the Struct detail, mirroring
// the JSON envelope.
const envelopeKey = "error"

// ToStruct converts info to a Struct shaped like its JSON envelope.
func ToStruct(info errinfo.ErrorInfo) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]any{
		envelopeKey: map[string]any{
			"type":      info.Type(),
			"message":   info.Message(),
			"details":   info.Details(),
			"status":    float64(info.Status()),
			"timestamp": info.Timestamp(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("grpcx: build struct: %w", err)
	}
	return s, nil
}

// FromStruct is the inverse of ToStruct.
func FromStruct(s *structpb.Struct) (errinfo.ErrorInfo, error) {
	if s == nil {
		return errinfo.ErrorInfo{}, errinfo.ErrMissingEnvelope
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return errinfo.ErrorInfo{}, fmt.Errorf("grpcx: marshal struct: %w", err)
	}
	return errinfo.Parse(b)
}

// ToStatus builds the gRPC status for info. If the envelope cannot be
// attached the bare status is returned.
func ToStatus(info errinfo.ErrorInfo, m *statusmap.Mapper) *gstatus.Status {
	st := gstatus.New(mapperOrDefault(m).GRPCCode(info.Status()), info.Message())
	s, err := ToStruct(info)
	if err != nil {
		return st
	}
	with, err := st.WithDetails(s)
	if err != nil {
		return st
	}
	return with
}

// ExtractErrorInfo recovers an ErrorInfo from err.
//
// It returns (info, true) when err's chain holds an ErrorInfo, or when err
// is a non-OK gRPC status. A status without an envelope detail is described
// by its code name, message and m.HTTPStatus(code), stamped now.
func ExtractErrorInfo(err error, m *statusmap.Mapper) (errinfo.ErrorInfo, bool) {
	if err == nil {
		return errinfo.ErrorInfo{}, false
	}
	var info errinfo.ErrorInfo
	if errors.As(err, &info) {
		return info, true
	}
	st, ok := gstatus.FromError(err)
	if !ok || st.Code() == codes.OK {
		return errinfo.ErrorInfo{}, false
	}
	for _, a := range st.Proto().GetDetails() {
		var s structpb.Struct
		if !a.MessageIs(&s) {
			continue
		}
		if err := a.UnmarshalTo(&s); err != nil {
			continue
		}
		if _, ok := s.GetFields()[envelopeKey]; !ok {
			continue
		}
		if info, err := FromStruct(&s); err == nil {
			return info, true
		}
	}
	return errinfo.New(st.Code().String(), st.Message(), mapperOrDefault(m).HTTPStatus(st.Code()), ""), true
}

// RemoteError is returned by UnaryClientInterceptor. It unwraps to the
// ErrorInfo and still reports the original gRPC status, so both errors.As
// and status.FromError work on it.
type RemoteError struct {
	Info   errinfo.ErrorInfo
	Status *gstatus.Status
}

func (e *RemoteError) Error() string { return e.Info.Error() }

// Unwrap returns the ErrorInfo.
func (e *RemoteError) Unwrap() error { return e.Info }

// GRPCStatus lets status.FromError and status.Code see the original status.
func (e *RemoteError) GRPCStatus() *gstatus.Status { return e.Status }

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// errors holding an errinfo.ErrorInfo into gRPC statuses via m. Other errors
// are returned as is. A nil m means statusmap.Default(); a nil logger means
// slog.Default().
func UnaryServerInterceptor(m *statusmap.Mapper, logger *slog.Logger) grpc.UnaryServerInterceptor {
	m = mapperOrDefault(m)
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req any, si *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var info errinfo.ErrorInfo
		if !errors.As(err, &info) {
			// Not ours; return as is.
			return nil, err
		}

		st := ToStatus(info, m)
		logger.LogAttrs(ctx, slog.LevelWarn, "rpc failed",
			slog.String("method", si.FullMethod),
			slog.String("code", st.Code().String()),
			slog.Any("error", info),
		)
		return nil, st.Err()
	}
}

// UnaryClientInterceptor returns a gRPC UnaryClientInterceptor that turns
// non-OK statuses into *RemoteError. A nil m means statusmap.Default().
func UnaryClientInterceptor(m *statusmap.Mapper) grpc.UnaryClientInterceptor {
	m = mapperOrDefault(m)

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}
		st, ok := gstatus.FromError(err)
		if !ok {
			return err
		}
		info, ok := ExtractErrorInfo(err, m)
		if !ok {
			return err
		}
		return &RemoteError{Info: info, Status: st}
	}
}

func mapperOrDefault(m *statusmap.Mapper) *statusmap.Mapper {
	if m != nil {
		return m
	}
	return statusmap.Default()
}
