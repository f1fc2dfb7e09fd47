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
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sample(opts ...Option) ErrorInfo {
	opts = append([]Option{WithTimestamp(fixedTime)}, opts...)
	return New("TypeError", "An error occurred", 400, "Invalid input", opts...)
}

func TestNew_Fields(t *testing.T) {
	e := sample()

	assert.Equal(t, "TypeError", e.Type())
	assert.Equal(t, "An error occurred", e.Message())
	assert.Equal(t, uint16(400), e.Status())
	assert.Equal(t, "Invalid input", e.Details())
	assert.Equal(t, "2024-01-01T12:00:00Z", e.Timestamp())
	assert.False(t, e.IsZero())
}

func TestNew_NoValidation(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		msg    string
		status uint16
		det    string
	}{
		{"all empty", "", "", 0, ""},
		{"max status", "X", "y", 65535, "z"},
		{"unicode", "Fehler", "ungültige Eingabe ✓", 422, "名前"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.typ, tt.msg, tt.status, tt.det)
			assert.Equal(t, tt.typ, e.Type())
			assert.Equal(t, tt.msg, e.Message())
			assert.Equal(t, tt.status, e.Status())
			assert.Equal(t, tt.det, e.Details())
		})
	}
}

func TestNew_TimestampIsCurrentUTC(t *testing.T) {
	before := time.Now().Add(-2 * time.Second)
	e := New("TypeError", "An error occurred", 400, "Invalid input")
	after := time.Now().Add(2 * time.Second)

	require.True(t, strings.HasSuffix(e.Timestamp(), "Z"), "timestamp %q must be UTC", e.Timestamp())

	ts, err := time.Parse(time.RFC3339, e.Timestamp())
	require.NoError(t, err)
	assert.True(t, ts.After(before) && ts.Before(after), "timestamp %s not within [%s, %s]", ts, before, after)

	parsed, err := e.Time()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
}

func TestNew_WithClock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	e := New("a", "b", 1, "c", WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 15, 30, 0, 0, loc)
	}))
	assert.Equal(t, "2024-06-01T12:30:00Z", e.Timestamp())

	// nil clock keeps time.Now
	e2 := New("a", "b", 1, "c", WithClock(nil))
	_, err := e2.Time()
	assert.NoError(t, err)
}

func TestTime_Invalid(t *testing.T) {
	_, err := ErrorInfo{}.Time()
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestJSON_ExactShape(t *testing.T) {
	b, err := sample().JSON()
	require.NoError(t, err)

	want := `{"error":{"type":"TypeError","message":"An error occurred","details":"Invalid input","status":400,"timestamp":"2024-01-01T12:00:00Z"}}`
	assert.Equal(t, want, string(b))
}

func TestJSON_GenericValue(t *testing.T) {
	b, err := sample().JSON()
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal(b, &v))
	require.Len(t, v, 1)

	inner, ok := v["error"].(map[string]any)
	require.True(t, ok, "error must be an object")
	assert.Len(t, inner, 5)
	assert.Equal(t, "TypeError", inner["type"])
	assert.Equal(t, "An error occurred", inner["message"])
	assert.Equal(t, "Invalid input", inner["details"])
	assert.Equal(t, float64(400), inner["status"])
	assert.Equal(t, "2024-01-01T12:00:00Z", inner["timestamp"])
}

func TestJSON_Idempotent(t *testing.T) {
	e := New("TypeError", "An error occurred", 400, "Invalid input")
	a, err := e.JSON()
	require.NoError(t, err)
	b, err := e.JSON()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJSON_NoHTMLEscape(t *testing.T) {
	e := New("T", "<a & b>", 400, "", WithTimestamp(fixedTime))
	b, err := e.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"<a & b>"`)
}

func TestMarshalJSON_Embedded(t *testing.T) {
	payload := struct {
		Request string    `json:"request"`
		Err     ErrorInfo `json:"err"`
	}{Request: "r-1", Err: sample()}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Equal(t,
		`{"request":"r-1","err":{"error":{"type":"TypeError","message":"An error occurred","details":"Invalid input","status":400,"timestamp":"2024-01-01T12:00:00Z"}}}`,
		string(b))
}

func TestParse_RoundTrip(t *testing.T) {
	e := sample()
	b, err := e.JSON()
	require.NoError(t, err)

	got, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"missing envelope", `{"type":"TypeError"}`, ErrMissingEnvelope},
		{"null envelope", `{"error":null}`, ErrMissingEnvelope},
		{"not an object", `{"error":"boom"}`, ErrMalformed},
		{"status overflow", `{"error":{"status":70000}}`, ErrMalformed},
		{"negative status", `{"error":{"status":-1}}`, ErrMalformed},
		{"not json", `nope`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, got.IsZero())
		})
	}
}

func TestString_EqualsIndentedJSON(t *testing.T) {
	e := sample()
	compact, err := e.JSON()
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, json.Indent(&want, compact, "", "  "))

	assert.Equal(t, want.String(), e.String())

	pretty, err := e.Pretty()
	require.NoError(t, err)
	assert.Equal(t, want.String(), pretty)
}

func TestError_Format(t *testing.T) {
	assert.Equal(t, "TypeError: An error occurred", sample().Error())
	assert.Equal(t, "just a message", New("", "just a message", 500, "").Error())

	// fmt prefers Error over String
	var err error = sample()
	assert.EqualError(t, err, "TypeError: An error occurred")
	assert.Equal(t, "TypeError: An error occurred", fmt.Sprint(err))
}

func TestYAML_RoundTrip(t *testing.T) {
	e := sample()
	b, err := yaml.Marshal(e)
	require.NoError(t, err)

	var generic map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(b, &generic))
	inner := generic["error"]
	require.NotNil(t, inner)
	assert.Equal(t, "TypeError", inner["type"])
	assert.Equal(t, "An error occurred", inner["message"])
	assert.Equal(t, "Invalid input", inner["details"])
	assert.Equal(t, 400, inner["status"])

	// keys keep the JSON order
	s := string(b)
	order := []string{"type:", "message:", "details:", "status:", "timestamp:"}
	last := -1
	for _, k := range order {
		i := strings.Index(s, k)
		require.Greater(t, i, last, "key %s out of order in:\n%s", k, s)
		last = i
	}

	var got ErrorInfo
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.Equal(t, e, got)
}

func TestYAML_MissingEnvelope(t *testing.T) {
	var got ErrorInfo
	err := yaml.Unmarshal([]byte("type: TypeError\n"), &got)
	assert.ErrorIs(t, err, ErrMissingEnvelope)
}

func TestFrom(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.True(t, From(nil, 500).IsZero())
	})

	t.Run("plain error", func(t *testing.T) {
		e := From(errors.New("boom"), 500, WithTimestamp(fixedTime))
		assert.Equal(t, "errors.errorString", e.Type())
		assert.Equal(t, "boom", e.Message())
		assert.Equal(t, "", e.Details())
		assert.Equal(t, uint16(500), e.Status())
		assert.Equal(t, "2024-01-01T12:00:00Z", e.Timestamp())
	})

	t.Run("wrapped cause", func(t *testing.T) {
		e := From(fmt.Errorf("read config: %w", io.EOF), 502)
		assert.Equal(t, "fmt.wrapError", e.Type())
		assert.Equal(t, "read config: EOF", e.Message())
		assert.Equal(t, "EOF", e.Details())
		assert.Equal(t, uint16(502), e.Status())
	})

	t.Run("chain holds ErrorInfo", func(t *testing.T) {
		inner := sample()
		e := From(fmt.Errorf("handler: %w", inner), 500)
		assert.Equal(t, inner, e)
	})
}

func TestLogValue(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	log.Error("request failed", "err", sample())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	group, ok := rec["err"].(map[string]any)
	require.True(t, ok, "err must log as a group: %s", buf.String())
	assert.Equal(t, "TypeError", group["type"])
	assert.Equal(t, "An error occurred", group["message"])
	assert.Equal(t, "Invalid input", group["details"])
	assert.Equal(t, float64(400), group["status"])
	assert.Equal(t, "2024-01-01T12:00:00Z", group["timestamp"])
}
