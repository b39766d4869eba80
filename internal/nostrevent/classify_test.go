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
package nostrevent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyThreadRoot(t *testing.T) {
	e := RawEvent{ID: "root1", Kind: int(KindNote), Content: "hello"}
	c := Classify(e)
	assert.Equal(t, ClassThreadRoot, c.Class)
	assert.Equal(t, "root1", c.ThreadID)
}

func TestClassifyMessageReplyToRoot(t *testing.T) {
	e := RawEvent{
		ID:      "msg1",
		Kind:    int(KindNote),
		Content: "reply",
		Tags: []Tag{
			{"e", "root1", "", "root"},
		},
	}
	c := Classify(e)
	require.Equal(t, ClassMessage, c.Class)
	assert.Equal(t, "root1", c.ThreadID)
	assert.Equal(t, "root1", c.ReplyTo, "no explicit reply marker falls back to threadId")
}

func TestClassifyMessageReplyToSpecificMessage(t *testing.T) {
	e := RawEvent{
		ID:   "msg2",
		Kind: int(KindNote),
		Tags: []Tag{
			{"e", "root1", "", "root"},
			{"e", "msg1", "", "reply"},
		},
	}
	c := Classify(e)
	require.Equal(t, ClassMessage, c.Class)
	assert.Equal(t, "root1", c.ThreadID)
	assert.Equal(t, "msg1", c.ReplyTo)
}

func TestClassifyIsIdempotent(t *testing.T) {
	e := RawEvent{
		ID:   "msg3",
		Kind: int(KindNote),
		Tags: []Tag{{"e", "root1", "", "root"}},
	}
	c1 := Classify(e)
	c2 := Classify(e)
	assert.Equal(t, c1, c2)
}

func TestClassifyProjectStatus(t *testing.T) {
	e := RawEvent{
		ID:   "status1",
		Kind: int(KindProjectStatus),
		Tags: []Tag{{"a", "31933:pub1:my-slug"}},
	}
	c := Classify(e)
	assert.Equal(t, ClassProjectStatus, c.Class)
	assert.Equal(t, "31933:pub1:my-slug", c.ProjectATag)
}

func TestClassifyOperationBeacon(t *testing.T) {
	e := RawEvent{
		ID:   "op1",
		Kind: int(KindOperationBeacon),
		Tags: []Tag{
			{"e", "thread1", "", "root"},
			{"p", "agentA"},
			{"p", "agentB"},
		},
	}
	c := Classify(e)
	require.Equal(t, ClassOperationBeacon, c.Class)
	assert.Equal(t, "thread1", c.OperationThreadID)
	assert.Equal(t, []string{"agentA", "agentB"}, c.AgentPubkeys)
}

func TestClassifyOperationBeaconWithoutThread(t *testing.T) {
	e := RawEvent{
		ID:   "op2",
		Kind: int(KindOperationBeacon),
		Tags: []Tag{{"p", "agentA"}},
	}
	c := Classify(e)
	assert.Equal(t, ClassOperationBeacon, c.Class)
	assert.Empty(t, c.OperationThreadID)
}

func TestClassifyUnknownKind(t *testing.T) {
	e := RawEvent{ID: "x", Kind: 99999}
	c := Classify(e)
	assert.Equal(t, ClassUnknown, c.Class)
}

func TestClassifyProjectRevision(t *testing.T) {
	e := RawEvent{
		ID:   "proj1",
		Kind: int(KindProjectRevision),
		Tags: []Tag{
			{"a", "31933:pub1:my-slug"},
			{"d", "my-slug"},
		},
	}
	c := Classify(e)
	assert.Equal(t, ClassProject, c.Class)
	assert.Equal(t, "my-slug", c.ProjectSlug)
}

func TestClassifyMessageWithAskTag(t *testing.T) {
	e := RawEvent{
		ID:   "ask1",
		Kind: int(KindNote),
		Tags: []Tag{
			{"e", "root1", "", "root"},
			{"tenex-ask", `{"title":"Pick one","context":"","questions":[{"kind":"single_select","question":"Which?","suggestions":["a","b"]}]}`},
		},
	}
	c := Classify(e)
	require.NotNil(t, c.Ask)
	assert.Equal(t, "Pick one", c.Ask.Title)
	require.Len(t, c.Ask.Questions, 1)
	assert.Equal(t, []string{"a", "b"}, c.Ask.Questions[0].Choices())
}

func TestClassifyMessageWithMalformedAskTagIgnoresAsk(t *testing.T) {
	e := RawEvent{
		ID:   "ask2",
		Kind: int(KindNote),
		Tags: []Tag{
			{"e", "root1", "", "root"},
			{"tenex-ask", `not json`},
		},
	}
	c := Classify(e)
	assert.Nil(t, c.Ask)
}
