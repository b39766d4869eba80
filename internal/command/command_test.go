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
package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/transport"
)

// fakeHandle is a minimal transport.Handle for exercising the command
// layer without a real relay connection.
type fakeHandle struct {
	sent    []transport.Command
	respond func(transport.Command)
}

func (f *fakeHandle) Send(c transport.Command) {
	f.sent = append(f.sent, c)
	if f.respond != nil {
		f.respond(c)
	}
}

func (f *fakeHandle) Changes() <-chan transport.DataChange {
	ch := make(chan transport.DataChange)
	close(ch)
	return ch
}

func TestPublishThreadRespondsWithEventID(t *testing.T) {
	h := &fakeHandle{}
	h.respond = func(c transport.Command) {
		if c.ResponseCh != nil {
			c.ResponseCh <- transport.Response{OK: true, EventID: "ev1"}
		}
	}
	layer := New(h, notify.New())

	id, ok := layer.PublishThread(PublishThreadIntent{ProjectATag: "proj1", Content: "hello"})
	require.True(t, ok)
	assert.Equal(t, "ev1", id)
	require.Len(t, h.sent, 1)
	assert.Equal(t, transport.CmdPublishThread, h.sent[0].Kind)
}

func TestPublishMessageFailureNotifies(t *testing.T) {
	h := &fakeHandle{}
	h.respond = func(c transport.Command) {
		if c.ResponseCh != nil {
			c.ResponseCh <- transport.Response{OK: false}
		}
	}
	notifications := notify.New()
	layer := New(h, notifications)

	_, ok := layer.PublishMessage(PublishMessageIntent{ThreadID: "t1", Content: "hi"})
	assert.False(t, ok)
	assert.NotEmpty(t, notifications.All())
}

func TestBootProjectSendsCommand(t *testing.T) {
	h := &fakeHandle{}
	layer := New(h, notify.New())
	layer.BootProject("proj1", "pub1")

	require.Len(t, h.sent, 1)
	assert.Equal(t, transport.CmdBootProject, h.sent[0].Kind)
	assert.Equal(t, "proj1", h.sent[0].ProjectATag)
}

func TestConnectPropagatesFailure(t *testing.T) {
	h := &fakeHandle{}
	h.respond = func(c transport.Command) {
		if c.ResponseCh != nil {
			c.ResponseCh <- transport.Response{OK: false, Err: assert.AnError}
		}
	}
	layer := New(h, notify.New())

	err := layer.Connect("nsec1...", "pub1", nil)
	assert.ErrorIs(t, err, assert.AnError)
}
