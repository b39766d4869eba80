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
package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/nostrevent"
	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/transport"
)

type fakeHandle struct {
	sent []transport.Command
}

func (f *fakeHandle) Send(c transport.Command) { f.sent = append(f.sent, c) }
func (f *fakeHandle) Changes() <-chan transport.DataChange {
	ch := make(chan transport.DataChange)
	close(ch)
	return ch
}

func (f *fakeHandle) kinds() []transport.CommandKind {
	out := make([]transport.CommandKind, len(f.sent))
	for i, c := range f.sent {
		out[i] = c.Kind
	}
	return out
}

func newTestController() (*Controller, *fakeHandle) {
	h := &fakeHandle{}
	layer := command.New(h, notify.New())
	st := store.New(operation.NewTracker(0))
	return New(layer, st), h
}

func TestOnCurrentProjectChangedSubscribesToNewProject(t *testing.T) {
	c, h := newTestController()
	now := time.Unix(1000, 0)

	c.OnCurrentProjectChanged("proj-a", now)

	require.Len(t, h.sent, 2)
	assert.Contains(t, h.kinds(), transport.CmdSubscribeProjectMessages)
	assert.Contains(t, h.kinds(), transport.CmdSubscribeProjectMetadata)
	assert.Equal(t, "proj-a", h.sent[0].ProjectATag)
}

func TestOnCurrentProjectChangedFirstCallDoesNotLinger(t *testing.T) {
	c, _ := newTestController()
	c.OnCurrentProjectChanged("proj-a", time.Unix(1000, 0))
	assert.Equal(t, 0, c.PendingLingerCount())
}

func TestSwitchingProjectsSchedulesLingerForPrevious(t *testing.T) {
	c, _ := newTestController()
	now := time.Unix(1000, 0)
	c.OnCurrentProjectChanged("proj-a", now)
	c.OnCurrentProjectChanged("proj-b", now.Add(time.Second))

	require.Equal(t, 1, c.PendingLingerCount())
	assert.Equal(t, "proj-a", c.lingering[0].projectATag)
}

func TestTickCancelsOnlyExpiredLinger(t *testing.T) {
	c, h := newTestController()
	now := time.Unix(1000, 0)
	c.OnCurrentProjectChanged("proj-a", now)
	c.OnCurrentProjectChanged("proj-b", now)

	c.Tick(now.Add(time.Second))
	assert.Equal(t, 1, c.PendingLingerCount())

	before := len(h.sent)
	c.Tick(now.Add(LingerWindow + time.Second))
	assert.Equal(t, 0, c.PendingLingerCount())
	require.Len(t, h.sent, before+1)
	assert.Equal(t, transport.CmdCancelSubscription, h.sent[len(h.sent)-1].Kind)
}

func TestOnStartupSkipsWhenProjectAlreadyChosen(t *testing.T) {
	c, _ := newTestController()
	c.OnCurrentProjectChanged("proj-a", time.Unix(1000, 0))

	_, ok := c.OnStartup()
	assert.False(t, ok)
}

func TestOnStartupReturnsFalseWithNoOnlineProject(t *testing.T) {
	c, _ := newTestController()
	_, ok := c.OnStartup()
	assert.False(t, ok)
}

func TestOnStartupSelectsFirstOnlineProjectAndPmAgent(t *testing.T) {
	h := &fakeHandle{}
	layer := command.New(h, notify.New())
	tracker := operation.NewTracker(0)
	st := store.New(tracker)

	st.Apply(nostrevent.RawEvent{
		ID: "proj-event-1", Pubkey: "author1", Kind: int(nostrevent.KindProjectRevision), CreatedAt: 10,
		Tags:    []nostrevent.Tag{{"d", "alpha"}, {"a", "31933:author1:alpha"}},
		Content: "Alpha Project",
	})
	projects := st.Projects()
	require.Len(t, projects, 1)
	atag := projects[0].ATag

	st.Apply(nostrevent.RawEvent{
		ID: "status-1", Kind: int(nostrevent.KindProjectStatus), CreatedAt: 20,
		Tags:    []nostrevent.Tag{{"a", atag}},
		Content: `{"agents":[{"pubkey":"dev1","is_pm":false},{"pubkey":"pm1","is_pm":true}]}`,
	})

	c := New(layer, st)
	sel, ok := c.OnStartup()
	require.True(t, ok)
	assert.Equal(t, atag, sel.ProjectATag)
	assert.Equal(t, "pm1", sel.AgentPubkey)
}
