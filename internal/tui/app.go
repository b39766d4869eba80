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
// Package tui implements the full-screen terminal UI surface: a bubbletea
// program with panels for projects, threads, and the open conversation,
// plus modals for the ask questionnaire and the trust/bunker approval
// queues. It drives the same command/store/subscription layers as
// internal/repl — the reactive state is shared between both surfaces,
// only the presentation differs.
package tui

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/tenex-go/tenex/internal/ask"
	"github.com/tenex-go/tenex/internal/avatarcache"
	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/draft"
	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/stream"
	"github.com/tenex-go/tenex/internal/subscription"
	"github.com/tenex-go/tenex/internal/tab"
	"github.com/tenex-go/tenex/internal/transport"
	"github.com/tenex-go/tenex/internal/trust"
)

// Focus names which panel currently receives plain key input. Ask and
// trust/bunker modals preempt focus entirely while active.
type Focus int

const (
	FocusProjects Focus = iota
	FocusThreads
	FocusConversation
	FocusComposer
	FocusHistorySearch
)

// tickInterval drives staleness sweeps and linger-window cancellation on a
// periodic tick. The operation tracker's own recommended cadence (100 ms)
// is used here so both fire on the same beat.
const tickInterval = 100 * time.Millisecond

// Model is the bubbletea root model. It holds no store mutex: like Store
// itself, it is only ever touched from the bubbletea Update() goroutine.
type Model struct {
	store   *store.Store
	cmd     *command.Layer
	sub     *subscription.Controller
	tracker *operation.Tracker
	trust   *trust.Queues
	trustCh *trust.Cache
	streams *stream.Buffers
	drafts  *draft.Store
	notif   *notify.Queue
	avatars *avatarcache.Cache
	changes <-chan transport.DataChange

	keys   KeyMap
	width  int
	height int
	focus  Focus
	quit   bool

	projects    []store.Project
	projectIdx  int
	threads     []store.Thread
	threadIdx   int

	tabs      []*tab.Tab
	activeTab int

	composer textinput.Model
	viewport viewport.Model

	askState  *ask.State
	askMsgID  string
	askThread string

	historyQuery   textinput.Model
	historyResults []draft.Entry
	historyScope   string // non-empty = scoped to one project

	currentAgentPubkey string
	userPubkey         string
}

// New constructs the TUI model bound to the shared reactive layers. Call
// Run to start the bubbletea program.
func New(
	st *store.Store,
	cmdLayer *command.Layer,
	subCtl *subscription.Controller,
	tracker *operation.Tracker,
	trustQueues *trust.Queues,
	trustCache *trust.Cache,
	streams *stream.Buffers,
	drafts *draft.Store,
	notif *notify.Queue,
	avatars *avatarcache.Cache,
	changes <-chan transport.DataChange,
	userPubkey string,
) *Model {
	composer := textinput.New()
	composer.Placeholder = "type a message, enter to send"
	composer.Focus()

	historyQuery := textinput.New()
	historyQuery.Placeholder = "reverse search history"

	return &Model{
		store:        st,
		cmd:          cmdLayer,
		sub:          subCtl,
		tracker:      tracker,
		trust:        trustQueues,
		trustCh:      trustCache,
		streams:      streams,
		drafts:       drafts,
		notif:        notif,
		avatars:      avatars,
		changes:      changes,
		keys:         DefaultKeyMap(),
		focus:        FocusProjects,
		composer:     composer,
		viewport:     viewport.New(),
		historyQuery: historyQuery,
		userPubkey:   userPubkey,
	}
}

// Run starts the bubbletea program in the alt screen, matching the
// teacher's cmd/loom/main.go invocation shape.
func (m *Model) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init starts the background readers that turn transport changes and the
// periodic tick into tea.Msg values. It does not call
// subscription.Controller's OnStartup, so no project is selected
// automatically at startup.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		waitForDataChange(m.changes),
		tickCmd(),
		textinput.Blink,
	)
}

// dataChangeMsg wraps one inbound transport.DataChange.
type dataChangeMsg transport.DataChange

// tickMsg drives the periodic tick.
type tickMsg time.Time

func waitForDataChange(ch <-chan transport.DataChange) tea.Cmd {
	return func() tea.Msg {
		dc, ok := <-ch
		if !ok {
			return nil
		}
		return dataChangeMsg(dc)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// newDraftID mints a locally-originated identifier for a not-yet-published
// thread context.
func newDraftID() string {
	return uuid.NewString()
}

// activeTabPtr returns the currently focused tab, or nil if none is open.
func (m *Model) activeTabPtr() *tab.Tab {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.activeTab]
}

// openTab opens (or focuses an existing) tab for threadID within project.
func (m *Model) openTab(projectATag, threadID, title string) *tab.Tab {
	for i, t := range m.tabs {
		if t.ThreadID == threadID {
			m.activeTab = i
			t.MarkRead()
			return t
		}
	}
	t := tab.New(newDraftID(), threadID, projectATag, title)
	m.tabs = append(m.tabs, t)
	m.activeTab = len(m.tabs) - 1
	return t
}

// refreshAutoAsk opens the ask modal automatically when the active tab's
// thread carries an ask on its most recent message that the user hasn't
// replied to yet.
func (m *Model) refreshAutoAsk() {
	t := m.activeTabPtr()
	if t == nil || m.askState != nil {
		return
	}
	msg, ok := m.store.UnansweredAsk(t.ThreadID, m.userPubkey)
	if !ok || msg.Ask == nil {
		return
	}
	msgs := m.store.Messages(t.ThreadID)
	if len(msgs) == 0 || msgs[len(msgs)-1].ID != msg.ID {
		return
	}
	m.askState = ask.New(msg.Ask)
	m.askMsgID = msg.ID
	m.askThread = t.ThreadID
}
