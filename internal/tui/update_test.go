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
package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenex-go/tenex/internal/nostrevent"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/stream"
	"github.com/tenex-go/tenex/internal/transport"
)

func TestApplyDataChangeFinalizesStreamBufferOnSignedEvent(t *testing.T) {
	m := &Model{
		store:     store.New(operation.NewTracker(0)),
		streams:   stream.New(),
		activeTab: -1,
	}
	m.streams.OnChunk("conv1", "agentA", "final text", "", true)

	m.applyDataChange(transport.DataChange{
		Kind:           transport.ChangeSignedEvent,
		ConversationID: "conv1",
		AgentPubkey:    "agentA",
		TextDelta:      "", // not populated for a signed-event change
		Event: nostrevent.RawEvent{
			ID: "ev1", Kind: int(nostrevent.KindNote), Pubkey: "agentA", CreatedAt: 100,
			Content: "final text",
		},
	})

	_, ok := m.streams.Get("conv1")
	assert.False(t, ok, "the streaming buffer must clear once the matching signed event lands")
}
