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
	"time"
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/tenex-go/tenex/internal/ask"
	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/draft"
	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/nostrevent"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/transport"
	"github.com/tenex-go/tenex/internal/trust"
)

// Update implements tea.Model, following a select-loop shape: terminal
// input, transport changes, and the periodic tick are the only three
// message sources the event loop reacts to.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.SetWidth(m.width - 4)
		m.viewport.SetHeight(m.height - 8)
		return m, nil

	case dataChangeMsg:
		m.applyDataChange(transport.DataChange(msg))
		return m, waitForDataChange(m.changes)

	case tickMsg:
		now := time.Time(msg)
		m.sub.Tick(now)
		m.tracker.Prune(now.Unix())
		return m, tickCmd()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey is the single key-dispatch entrypoint. The trust/bunker
// queues preempt everything but quit, then the ask modal, then normal
// panel-focused handling.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.flushDrafts()
		m.quit = true
		return m, tea.Quit
	}

	if m.trust.IsGating() {
		return m.handleGatedKey(msg)
	}

	if m.askState != nil {
		return m.handleAskKey(msg)
	}

	if m.focus == FocusHistorySearch {
		return m.handleHistorySearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NextPanel):
		m.focus = nextFocus(m.focus)
		return m, nil
	case key.Matches(msg, m.keys.PrevPanel):
		m.focus = prevFocus(m.focus)
		return m, nil
	case key.Matches(msg, m.keys.OpenProject):
		m.focus = FocusProjects
		m.projects = m.store.Projects()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.focus = FocusHistorySearch
		m.historyQuery.SetValue("")
		m.historyQuery.Focus()
		m.historyScope = m.currentProjectATag()
		m.historyResults = m.drafts.Search("", m.scopeForSearch())
		return m, nil
	case key.Matches(msg, m.keys.NewThread):
		if atag := m.currentProjectATag(); atag != "" {
			m.openTab(atag, "", "new thread")
			m.focus = FocusComposer
		}
		return m, nil
	}

	switch m.focus {
	case FocusProjects:
		return m.handleProjectsKey(msg)
	case FocusThreads:
		return m.handleThreadsKey(msg)
	case FocusConversation:
		return m.handleConversationKey(msg)
	case FocusComposer:
		return m.handleComposerKey(msg)
	}
	return m, nil
}

func nextFocus(f Focus) Focus {
	switch f {
	case FocusProjects:
		return FocusThreads
	case FocusThreads:
		return FocusConversation
	case FocusConversation:
		return FocusComposer
	default:
		return FocusProjects
	}
}

func prevFocus(f Focus) Focus {
	switch f {
	case FocusThreads:
		return FocusProjects
	case FocusConversation:
		return FocusThreads
	case FocusComposer:
		return FocusConversation
	default:
		return FocusComposer
	}
}

func (m *Model) currentProjectATag() string {
	if t := m.activeTabPtr(); t != nil {
		return t.ProjectATag
	}
	if m.projectIdx < len(m.projects) {
		return m.projects[m.projectIdx].ATag
	}
	return ""
}

// --- gated input ---

func (m *Model) handleGatedKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.trust.HeadBunkerRequest(); ok {
		switch msg.String() {
		case "a": // approve once
			return m.resolveBunker(trust.BunkerApproveOnce)
		case "r": // approve and remember
			return m.resolveBunker(trust.BunkerApproveAndRemember)
		case "j": // reject
			return m.resolveBunker(trust.BunkerReject)
		case "c": // cancel
			return m.resolveBunker(trust.BunkerCancel)
		}
		return m, nil
	}
	if p, ok := m.trust.HeadBackendPrompt(); ok {
		switch msg.String() {
		case "a":
			_ = m.trustCh.ApproveBackend(p.Pubkey)
			m.trust.ResolveBackendPrompt()
		case "j":
			_ = m.trustCh.BlockBackend(p.Pubkey)
			m.trust.ResolveBackendPrompt()
		case "c":
			m.trust.ResolveBackendPrompt()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) resolveBunker(decision trust.BunkerDecision) (tea.Model, tea.Cmd) {
	req, ok := m.trust.HeadBunkerRequest()
	if !ok {
		return m, nil
	}
	switch decision {
	case trust.BunkerApproveOnce:
		m.cmd.BunkerResponse(req.RequestID, true)
	case trust.BunkerApproveAndRemember:
		m.cmd.BunkerResponse(req.RequestID, true)
		m.cmd.AddBunkerAutoApproveRule(req.RequesterPub, req.EventKind)
	case trust.BunkerReject:
		m.cmd.BunkerResponse(req.RequestID, false)
	case trust.BunkerCancel:
		// leave the request pending in the transport; just stop prompting
		// this tick isn't possible since the queue only advances on
		// resolution, so cancel behaves like reject on the local queue.
	}
	m.trust.ResolveBunkerRequest()
	return m, nil
}

// --- ask modal ---

func (m *Model) handleAskKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.askState.Mode() {
	case ask.ModeCustomInput:
		switch msg.String() {
		case "esc":
			m.askState.CancelCustomMode()
		case "enter":
			m.askState.SubmitCustomAnswer()
			m.maybeCompleteAsk()
		case "backspace":
			m.askState.BackspaceCustomInput()
		default:
			if unicode.IsPrint(msg.Code) {
				m.askState.TypeCustomInput(m.askState.CustomInput() + string(msg.Code))
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.askState = nil
	case "up":
		m.askState.PrevOption()
	case "down":
		m.askState.NextOption()
	case " ":
		m.askState.ToggleMultiSelect()
	case "enter":
		m.askState.SelectCurrentOption()
		m.maybeCompleteAsk()
	case "left":
		m.askState.PrevQuestion()
	}
	return m, nil
}

func (m *Model) maybeCompleteAsk() {
	if !m.askState.IsComplete() {
		return
	}
	body := m.askState.FormatResponse()
	m.cmd.PublishMessage(command.PublishMessageIntent{
		ThreadID:    m.askThread,
		ProjectATag: m.currentProjectATag(),
		Content:     body,
		AgentPubkey: m.currentAgentPubkey,
		ReplyTo:     m.askMsgID,
	})
	m.askState = nil
}

// --- panel-focused handling ---

func (m *Model) handleProjectsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.projects = m.store.Projects()
	switch msg.String() {
	case "up", "k":
		if m.projectIdx > 0 {
			m.projectIdx--
		}
	case "down", "j":
		if m.projectIdx < len(m.projects)-1 {
			m.projectIdx++
		}
	case "enter":
		if m.projectIdx < len(m.projects) {
			p := m.projects[m.projectIdx]
			m.sub.OnCurrentProjectChanged(p.ATag, time.Now())
			m.threads = m.store.ThreadsByProject(p.ATag)
			m.threadIdx = 0
			if status, ok := m.store.ProjectStatus(p.ATag); ok {
				m.currentAgentPubkey = pickPmOrFirst(status.Agents)
			}
			m.focus = FocusThreads
		}
	}
	return m, nil
}

func pickPmOrFirst(agents []store.ProjectAgent) string {
	for _, a := range agents {
		if a.IsPm {
			return a.Pubkey
		}
	}
	if len(agents) > 0 {
		return agents[0].Pubkey
	}
	return ""
}

func (m *Model) handleThreadsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.threadIdx > 0 {
			m.threadIdx--
		}
	case "down", "j":
		if m.threadIdx < len(m.threads)-1 {
			m.threadIdx++
		}
	case "enter":
		if m.threadIdx < len(m.threads) {
			th := m.threads[m.threadIdx]
			m.openTab(th.ProjectATag, th.ID, th.Title)
			m.refreshAutoAsk()
			m.focus = FocusConversation
		}
	case "n":
		atag := m.currentProjectATag()
		if atag != "" {
			t := m.openTab(atag, "", "new thread")
			_ = t
			m.focus = FocusComposer
		}
	}
	return m, nil
}

func (m *Model) handleConversationKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	t := m.activeTabPtr()
	if t == nil {
		return m, nil
	}
	items := m.displayItems(t)
	switch msg.String() {
	case "up", "k":
		if t.SelectedMessageIndex > 0 {
			t.SelectedMessageIndex--
		}
	case "down", "j":
		if t.SelectedMessageIndex < len(items)-1 {
			t.SelectedMessageIndex++
		}
	case "l", "right":
		if t.SelectedMessageIndex < len(items) {
			sel := items[t.SelectedMessageIndex]
			switch {
			case sel.Delegation != nil:
				t.EnterDelegation(sel.Delegation.ID, sel.Delegation.ProjectATag, sel.Delegation.Title)
			case sel.Message != nil:
				t.EnterSubthread(sel.Message.ID)
			}
		}
	case "esc", "h", "left":
		if !t.PopNavigation() {
			t.ExitSubthread()
		}
	case "i":
		m.focus = FocusComposer
	}
	return m, nil
}

func (m *Model) handleComposerKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Reply) {
		text := m.composer.Value()
		if text == "" {
			return m, nil
		}
		m.sendComposerText(text)
		m.composer.SetValue("")
		return m, nil
	}
	if msg.String() == "esc" {
		m.focus = FocusConversation
		return m, nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	if atag := m.currentProjectATag(); atag != "" {
		t := m.activeTabPtr()
		draftID := ""
		if t != nil {
			draftID = t.DraftID
		}
		if draftID == "" {
			draftID = newDraftID()
			if t != nil {
				t.DraftID = draftID
			}
		}
		_ = m.drafts.SaveDraft(draftID, atag, m.composer.Value(), time.Now().Unix())
	}
	return m, cmd
}

func (m *Model) sendComposerText(text string) {
	atag := m.currentProjectATag()
	if atag == "" {
		m.notif.Push(notify.Warning, "select a project first")
		return
	}
	t := m.activeTabPtr()
	now := time.Now().Unix()
	if t == nil || t.ThreadID == "" {
		id, ok := m.cmd.PublishThread(command.PublishThreadIntent{
			ProjectATag: atag,
			Content:     text,
			AgentPubkey: m.currentAgentPubkey,
		})
		if !ok {
			return
		}
		newTab := m.openTab(atag, id, text)
		_ = newTab
	} else {
		m.cmd.PublishMessage(command.PublishMessageIntent{
			ThreadID:    t.ThreadID,
			ProjectATag: atag,
			Content:     text,
			AgentPubkey: m.currentAgentPubkey,
			ReplyTo:     t.ThreadID,
		})
	}
	if t != nil && t.DraftID != "" {
		_ = m.drafts.DeleteDraft(t.DraftID)
	}
	_ = m.drafts.AppendHistory(draft.Entry{
		Content:     text,
		CreatedAt:   now,
		ProjectATag: atag,
		Source:      draft.SourceSent,
	})
}

// --- history reverse search ---

func (m *Model) handleHistorySearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = FocusComposer
		return m, nil
	case "tab":
		if m.historyScope == "" {
			m.historyScope = m.currentProjectATag()
		} else {
			m.historyScope = ""
		}
		m.historyResults = m.drafts.Search(m.historyQuery.Value(), m.scopeForSearch())
		return m, nil
	case "enter":
		if len(m.historyResults) > 0 {
			m.composer.SetValue(m.historyResults[0].Content)
		}
		m.focus = FocusComposer
		return m, nil
	}
	var cmd tea.Cmd
	m.historyQuery, cmd = m.historyQuery.Update(msg)
	m.historyResults = m.drafts.Search(m.historyQuery.Value(), m.scopeForSearch())
	return m, cmd
}

func (m *Model) scopeForSearch() string {
	if m.historyScope == "" {
		return ""
	}
	return m.currentProjectATag()
}

func (m *Model) flushDrafts() {
	// Drafts are saved synchronously on every edit (debounced upstream by
	// the composer's own cadence); nothing further is required at exit.
}

// applyDataChange routes one inbound transport.DataChange to the store,
// the streaming buffer, or the trust/bunker queues, mirroring the
// classifier-to-store data flow.
func (m *Model) applyDataChange(dc transport.DataChange) {
	switch dc.Kind {
	case transport.ChangeLocalStreamChunk:
		m.streams.OnChunk(dc.ConversationID, dc.AgentPubkey, dc.TextDelta, dc.ReasoningDelta, dc.IsFinish)
	case transport.ChangeSignedEvent:
		m.store.Apply(dc.Event)
		m.streams.FinalizeIfSuperseded(dc.ConversationID, dc.AgentPubkey, dc.Event.Content)
		m.markUnreadForBackgroundTabs(dc.Event)
		m.refreshAutoAsk()
	case transport.ChangeBunkerSignRequest:
		m.trust.EnqueueBunkerRequest(trust.BunkerRequest{
			RequestID:     dc.BunkerRequestID,
			RequesterPub:  dc.RequesterPubkey,
			EventKind:     dc.EventKind,
			EventBodyJSON: dc.EventBodyJSON,
		})
	}
}

// markUnreadForBackgroundTabs implements the unread-marking rule: a tab
// showing the event's thread, not authored by the local user, and not
// currently active, is marked unread.
func (m *Model) markUnreadForBackgroundTabs(e nostrevent.RawEvent) {
	threadID, _ := e.ETag("root")
	if threadID == "" {
		threadID, _ = e.ETag("")
	}
	for i, t := range m.tabs {
		if t.ThreadID != threadID {
			continue
		}
		if i == m.activeTab {
			continue
		}
		if e.Pubkey == m.userPubkey {
			continue
		}
		t.MarkUnread()
	}
}
