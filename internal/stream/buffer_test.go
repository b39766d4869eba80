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
package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnChunkAccumulatesText(t *testing.T) {
	b := New()
	b.OnChunk("c1", "agentA", "Hello, ", "", false)
	b.OnChunk("c1", "agentA", "world", "", true)

	snap, ok := b.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "Hello, world", snap.TextContent)
	assert.True(t, snap.IsComplete)
}

func TestGetReturnsConsistentSnapshot(t *testing.T) {
	b := New()
	b.OnChunk("c1", "agentA", "partial", "", false)
	snap, ok := b.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "partial", snap.TextContent)
	assert.False(t, snap.IsComplete)
}

func TestFinalizeIfSupersededClearsMatchingBuffer(t *testing.T) {
	b := New()
	b.OnChunk("c1", "agentA", "Hello, world", "", true)
	b.FinalizeIfSuperseded("c1", "agentA", "Hello, world")

	_, ok := b.Get("c1")
	assert.False(t, ok)
}

func TestFinalizeIfSupersededIgnoresOtherAuthor(t *testing.T) {
	b := New()
	b.OnChunk("c1", "agentA", "Hello", "", true)
	b.FinalizeIfSuperseded("c1", "agentB", "Hello")

	_, ok := b.Get("c1")
	assert.True(t, ok, "buffer survives when author does not match")
}

func TestFinalizeIfSupersededRequiresPrefixMatch(t *testing.T) {
	b := New()
	b.OnChunk("c1", "agentA", "Hello, world", "", true)
	b.FinalizeIfSuperseded("c1", "agentA", "Goodbye")

	_, ok := b.Get("c1")
	assert.True(t, ok)
}
