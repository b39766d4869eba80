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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataChangeLocalStreamChunk(t *testing.T) {
	raw := []byte(`{"kind":"local_stream_chunk","conversation_id":"c1","agent_pubkey":"a1","text_delta":"hi","is_finish":true}`)
	dc, ok := decodeDataChange(raw)
	require.True(t, ok)
	assert.Equal(t, ChangeLocalStreamChunk, dc.Kind)
	assert.Equal(t, "hi", dc.TextDelta)
	assert.True(t, dc.IsFinish)
}

func TestDecodeDataChangeSignedEvent(t *testing.T) {
	raw := []byte(`{"kind":"signed_event","event":{"id":"e1","pubkey":"p1","created_at":100,"kind":1,"content":"hello"}}`)
	dc, ok := decodeDataChange(raw)
	require.True(t, ok)
	assert.Equal(t, ChangeSignedEvent, dc.Kind)
	assert.Equal(t, "e1", dc.Event.ID)
	assert.Equal(t, int64(100), dc.Event.CreatedAt)
}

func TestDecodeDataChangeUnknownKindRejected(t *testing.T) {
	raw := []byte(`{"kind":"something_else"}`)
	_, ok := decodeDataChange(raw)
	assert.False(t, ok)
}

func TestDecodeDataChangeMalformedJSONRejected(t *testing.T) {
	_, ok := decodeDataChange([]byte(`not json`))
	assert.False(t, ok)
}
