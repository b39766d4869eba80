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

import (
	"context"
	"encoding/json"
	"time"

	"github.com/r3labs/sse/v2"
	"go.uber.org/zap"

	"github.com/tenex-go/tenex/internal/log"
)

// SSEHandle adapts an r3labs/sse stream into the Handle boundary: a
// backgrounded reader decodes each SSE "message" event's data payload as a
// DataChange and forwards it on a buffered channel. The relay's own wire
// protocol is out of scope; this type only fixes the shape of "a channel
// fed by a backgrounded reader" used by streamed transport adapters
// elsewhere in this codebase.
type SSEHandle struct {
	client  *sse.Client
	changes chan DataChange
	send    func(Command)
}

// NewSSEHandle connects to endpoint and begins streaming DataChange
// values. sendFn performs the actual outbound delivery of a Command
// (e.g. an HTTP POST or a relay publish); this package does not implement
// it, per the scope cut on transport internals.
func NewSSEHandle(endpoint string, sendFn func(Command)) *SSEHandle {
	client := sse.NewClient(endpoint)
	h := &SSEHandle{
		client:  client,
		changes: make(chan DataChange, 256),
		send:    sendFn,
	}

	client.OnDisconnect(func(c *sse.Client) {
		log.Warn("sse transport disconnected", zap.String("endpoint", endpoint))
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := client.SubscribeWithContext(ctx, "message", func(msg *sse.Event) {
			dc, ok := decodeDataChange(msg.Data)
			if !ok {
				return
			}
			select {
			case h.changes <- dc:
			case <-ctx.Done():
			}
		})
		if err != nil {
			log.Warn("sse subscribe failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
	}()

	return h
}

// wireDataChange is the JSON envelope an SSE "message" event carries.
type wireDataChange struct {
	Kind              string          `json:"kind"`
	ConversationID    string          `json:"conversation_id"`
	AgentPubkey       string          `json:"agent_pubkey"`
	TextDelta         string          `json:"text_delta"`
	ReasoningDelta    string          `json:"reasoning_delta"`
	IsFinish          bool            `json:"is_finish"`
	ProjectStatusJSON json.RawMessage `json:"project_status"`
	ProjectATag       string          `json:"project_atag"`
	Event             json.RawMessage `json:"event"`
	BunkerRequestID   string          `json:"bunker_request_id"`
	RequesterPubkey   string          `json:"requester_pubkey"`
	EventKind         int             `json:"event_kind"`
	EventBodyJSON     string          `json:"event_body"`
}

func decodeDataChange(raw []byte) (DataChange, bool) {
	var w wireDataChange
	if err := json.Unmarshal(raw, &w); err != nil {
		log.Warn("malformed data-change payload", zap.Error(err))
		return DataChange{}, false
	}

	dc := DataChange{
		ConversationID:    w.ConversationID,
		AgentPubkey:       w.AgentPubkey,
		TextDelta:         w.TextDelta,
		ReasoningDelta:    w.ReasoningDelta,
		IsFinish:          w.IsFinish,
		ProjectStatusJSON: string(w.ProjectStatusJSON),
		ProjectATag:       w.ProjectATag,
		BunkerRequestID:   w.BunkerRequestID,
		RequesterPubkey:   w.RequesterPubkey,
		EventKind:         w.EventKind,
		EventBodyJSON:     w.EventBodyJSON,
	}

	switch w.Kind {
	case "local_stream_chunk":
		dc.Kind = ChangeLocalStreamChunk
	case "project_status":
		dc.Kind = ChangeProjectStatusJSON
	case "signed_event":
		dc.Kind = ChangeSignedEvent
		if len(w.Event) > 0 {
			if err := json.Unmarshal(w.Event, &dc.Event); err != nil {
				log.Warn("malformed embedded event", zap.Error(err))
				return DataChange{}, false
			}
		}
	case "bunker_sign_request":
		dc.Kind = ChangeBunkerSignRequest
	default:
		return DataChange{}, false
	}
	return dc, true
}

// Send enqueues a command for delivery.
func (h *SSEHandle) Send(c Command) { h.send(c) }

// Changes returns the stream of inbound DataChange values.
func (h *SSEHandle) Changes() <-chan DataChange { return h.changes }
