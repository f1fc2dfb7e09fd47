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

import "time"

// Option is a functional option for New (and for From, which forwards to New).
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock makes New read the timestamp from now instead of time.Now.
// A nil clock is ignored.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithTimestamp pins the timestamp to t.
func WithTimestamp(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}
