// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package transport

// NullHandle answers every outbound Command that carries a ResponseCh with
// a failure and never emits a DataChange. It lets cmd/tenex start the
// store/command/subscription layers and the UI surfaces before a real
// backend endpoint is configured, as long as no signing key is configured:
// with one, the Connect issued at startup fails and startup stops there.
type NullHandle struct {
	changes chan DataChange
}

// NewNullHandle constructs a Handle with a permanently empty change
// stream.
func NewNullHandle() *NullHandle {
	return &NullHandle{changes: make(chan DataChange)}
}

// Send answers every command that carries a ResponseCh (publish commands
// and Connect alike) immediately with a synthetic failure, so callers
// waiting on it don't block until their timeout; commands without a
// ResponseCh are silently dropped.
func (h *NullHandle) Send(c Command) {
	if c.ResponseCh != nil {
		c.ResponseCh <- Response{OK: false, Err: errNoBackend{}}
	}
}

// Changes returns a channel that never yields a value.
func (h *NullHandle) Changes() <-chan DataChange { return h.changes }

type errNoBackend struct{}

func (errNoBackend) Error() string { return "no backend endpoint configured" }
