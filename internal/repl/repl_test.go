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
package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/nostrevent"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/transport"
	"github.com/tenex-go/tenex/internal/trust"
)

type fakeHandle struct {
	sent []transport.Command
}

func (f *fakeHandle) Send(c transport.Command) {
	f.sent = append(f.sent, c)
	if c.ResponseCh != nil {
		c.ResponseCh <- transport.Response{OK: true, EventID: "ev-" + c.Content}
	}
}

func (f *fakeHandle) Changes() <-chan transport.DataChange {
	ch := make(chan transport.DataChange)
	close(ch)
	return ch
}

func newTestSession() (*Session, *store.Store) {
	h := &fakeHandle{}
	layer := command.New(h, notify.New())
	st := store.New(operation.NewTracker(0))
	return New(st, layer, nil, trust.New()), st
}

func seedProject(t *testing.T, st *store.Store, slug, title string) string {
	t.Helper()
	st.Apply(nostrevent.RawEvent{
		ID: "ev-" + slug, Pubkey: "author1", Kind: int(nostrevent.KindProjectRevision), CreatedAt: 10,
		Tags:    []nostrevent.Tag{{"d", slug}, {"a", "31933:author1:" + slug}},
		Content: title,
	})
	for _, p := range st.Projects() {
		if p.Slug == slug {
			return p.ATag
		}
	}
	t.Fatal("project not found after seeding")
	return ""
}

func TestHelpListsAllCommands(t *testing.T) {
	s, _ := newTestSession()
	out := s.Dispatch("/help")
	assert.Contains(t, out, "/project")
	assert.Contains(t, out, "/quit")
}

func TestProjectSwitchBySlug(t *testing.T) {
	s, st := newTestSession()
	seedProject(t, st, "alpha", "Alpha Project")

	out := s.Dispatch("/project alpha")
	assert.Equal(t, "switched to Alpha Project", out)
	assert.NotEmpty(t, s.CurrentProjectATag)
}

func TestPublishingTextWithoutProjectIsRejected(t *testing.T) {
	s, _ := newTestSession()
	out := s.Dispatch("hello there")
	assert.Equal(t, "select a project first", out)
}

func TestPlainTextStartsThreadThenReplies(t *testing.T) {
	s, st := newTestSession()
	seedProject(t, st, "alpha", "Alpha Project")
	require.Equal(t, "", s.Dispatch("/project alpha"))

	out := s.Dispatch("first message")
	assert.Empty(t, out)
	require.NotEmpty(t, s.CurrentThreadID)

	firstThread := s.CurrentThreadID
	out = s.Dispatch("second message")
	assert.Empty(t, out)
	assert.Equal(t, firstThread, s.CurrentThreadID)
}

func TestQuitSetsQuitFlag(t *testing.T) {
	s, _ := newTestSession()
	s.Dispatch("/quit")
	assert.True(t, s.Quit)
}

func TestUnknownCommandSuggestsHelp(t *testing.T) {
	s, _ := newTestSession()
	out := s.Dispatch("/frobnicate")
	assert.Contains(t, out, "/help")
}

func TestStatsReportsCounts(t *testing.T) {
	s, st := newTestSession()
	seedProject(t, st, "alpha", "Alpha Project")
	out := s.Dispatch("/stats")
	assert.Contains(t, out, "projects=1")
}

func TestModelWithoutAgentSelectedIsRejected(t *testing.T) {
	s, st := newTestSession()
	seedProject(t, st, "alpha", "Alpha Project")
	require.Equal(t, "", s.Dispatch("/project alpha"))
	assert.Equal(t, "select a project and agent first", s.Dispatch("/model"))
}

func TestModelReportsAndUpdatesCurrentAgent(t *testing.T) {
	s, st := newTestSession()
	atag := seedProject(t, st, "alpha", "Alpha Project")
	st.Apply(nostrevent.RawEvent{
		ID: "st1", Kind: int(nostrevent.KindProjectStatus), CreatedAt: 10,
		Tags:    []nostrevent.Tag{{"a", atag}},
		Content: `{"agents":[{"pubkey":"agent1","name":"Coder","model":"gpt-4"}]}`,
	})
	require.Equal(t, "", s.Dispatch("/project alpha"))
	require.Equal(t, "switched to Coder", s.Dispatch("/agent Coder"))

	assert.Equal(t, "Coder: gpt-4", s.Dispatch("/model"))
	assert.Equal(t, "model change requested: gpt-5", s.Dispatch("/model gpt-5"))
}

func TestConfigMakePm(t *testing.T) {
	s, st := newTestSession()
	atag := seedProject(t, st, "alpha", "Alpha Project")
	st.Apply(nostrevent.RawEvent{
		ID: "st1", Kind: int(nostrevent.KindProjectStatus), CreatedAt: 10,
		Tags:    []nostrevent.Tag{{"a", atag}},
		Content: `{"agents":[{"pubkey":"agent1","name":"Coder","model":"gpt-4"}]}`,
	})
	require.Equal(t, "", s.Dispatch("/project alpha"))
	require.Equal(t, "switched to Coder", s.Dispatch("/agent Coder"))

	out := s.Dispatch("/config --make-pm")
	assert.Equal(t, "config update requested for Coder", out)
}

func TestBunkerApproveResolvesQueue(t *testing.T) {
	s, _ := newTestSession()
	assert.Equal(t, "no pending bunker requests", s.Dispatch("/bunker"))

	s.trustQ.EnqueueBunkerRequest(trust.BunkerRequest{RequestID: "r1", RequesterPub: "req1", EventKind: 24133})
	out := s.Dispatch("/bunker")
	assert.Contains(t, out, "requester=req1")

	assert.Equal(t, "approved", s.Dispatch("/bunker approve"))
	_, pending := s.trustQ.HeadBunkerRequest()
	assert.False(t, pending)
}
