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
// Package stream accumulates text/reasoning deltas that arrive ahead of the
// signed message they preview, so the transcript can render them live.
package stream

// Snapshot is an immutable read of one conversation's buffer state. It is
// always read as a single value, never field-by-field, so a renderer never
// observes text from one chunk paired with isComplete from another.
type Snapshot struct {
	AgentPubkey      string
	TextContent      string
	ReasoningContent string
	IsComplete       bool
}

type entry struct {
	agentPubkey      string
	textContent      string
	reasoningContent string
	isComplete       bool
}

// Buffers holds one accumulator per conversation id. Like Store, it carries
// no internal lock: it is owned and mutated exclusively by the event loop
// goroutine.
type Buffers struct {
	byConversation map[string]*entry
}

// New constructs an empty set of streaming buffers.
func New() *Buffers {
	return &Buffers{byConversation: make(map[string]*entry)}
}

// OnChunk upserts the buffer for conversationID and appends the given
// deltas. An empty delta is a no-op append (callers may supply only the
// field that changed).
func (b *Buffers) OnChunk(conversationID, agentPubkey, textDelta, reasoningDelta string, isFinish bool) {
	e, ok := b.byConversation[conversationID]
	if !ok {
		e = &entry{agentPubkey: agentPubkey}
		b.byConversation[conversationID] = e
	}
	if agentPubkey != "" {
		e.agentPubkey = agentPubkey
	}
	e.textContent += textDelta
	e.reasoningContent += reasoningDelta
	if isFinish {
		e.isComplete = true
	}
}

// Get returns a consistent snapshot of a conversation's buffer.
func (b *Buffers) Get(conversationID string) (Snapshot, bool) {
	e, ok := b.byConversation[conversationID]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		AgentPubkey:      e.agentPubkey,
		TextContent:      e.textContent,
		ReasoningContent: e.reasoningContent,
		IsComplete:       e.isComplete,
	}, true
}

// FinalizeIfSuperseded clears the buffer for conversationID when a
// published message from the same agent carries content that is at least
// as long as, and prefixed by, the buffered text. Clearing is an
// optimization, not a correctness requirement: an un-cleared buffer is
// simply never displayed again once the message itself renders.
func (b *Buffers) FinalizeIfSuperseded(conversationID, authorPubkey, publishedContent string) {
	e, ok := b.byConversation[conversationID]
	if !ok {
		return
	}
	if e.agentPubkey != authorPubkey {
		return
	}
	if len(publishedContent) >= len(e.textContent) && publishedContent[:len(e.textContent)] == e.textContent {
		delete(b.byConversation, conversationID)
	}
}

// Clear removes a conversation's buffer unconditionally.
func (b *Buffers) Clear(conversationID string) {
	delete(b.byConversation, conversationID)
}
