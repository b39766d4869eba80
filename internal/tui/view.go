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
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/tenex-go/tenex/internal/ask"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/tab"
	"github.com/tenex-go/tenex/internal/tui/styles"
)

// View implements tea.Model. It composes three side-by-side panels
// (projects, threads, conversation) with a composer line beneath, and
// overlays whichever modal is active (ask, or trust/bunker).
func (m *Model) View() string {
	if m.quit {
		return ""
	}
	if m.width == 0 {
		return "starting up..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewProjects(),
		m.viewThreads(),
		m.viewConversation(),
	)

	screen := lipgloss.JoinVertical(lipgloss.Top,
		body,
		m.viewComposer(),
		m.viewStatusBar(),
	)

	if m.trust.IsGating() {
		return m.overlayModal(screen, m.viewTrustModal())
	}
	if m.askState != nil {
		return m.overlayModal(screen, m.viewAskModal())
	}
	if m.focus == FocusHistorySearch {
		return m.overlayModal(screen, m.viewHistorySearch())
	}
	return screen
}

func (m *Model) overlayModal(_base, modal string) string {
	// The underlying screen is intentionally not composited beneath the
	// modal: bubbletea v2's alt-screen renderer redraws the full frame
	// every tick, and layering text panels here would require an offscreen
	// cell buffer, which is out of scope here.
	return modal
}

func (m *Model) viewProjects() string {
	var b strings.Builder
	b.WriteString(styles.Title().Render("Projects"))
	b.WriteString("\n")
	for i, p := range m.store.Projects() {
		line := p.Title
		if m.store.IsProjectOnline(p.ATag) {
			line = "● " + line
		} else {
			line = "○ " + line
		}
		if m.store.IsProjectBusy(p.ATag) {
			line += " (busy)"
		}
		if i == m.projectIdx && m.focus == FocusProjects {
			line = styles.SelectedItem().Render("> " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return styles.Panel(m.focus == FocusProjects).Width(24).Height(m.panelHeight()).Render(b.String())
}

func (m *Model) viewThreads() string {
	var b strings.Builder
	b.WriteString(styles.Title().Render("Threads"))
	b.WriteString("\n")
	for i, th := range m.threads {
		line := th.Title
		if line == "" {
			line = th.ID[:minInt(8, len(th.ID))]
		}
		if th.StatusCurrentActivity != "" {
			line += " [" + th.StatusCurrentActivity + "]"
		}
		if i == m.threadIdx && m.focus == FocusThreads {
			line = styles.SelectedItem().Render("> " + line)
		}
		for _, t := range m.tabs {
			if t.ThreadID == th.ID && t.HasUnread {
				line = styles.UnreadBadge().Render("* ") + line
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return styles.Panel(m.focus == FocusThreads).Width(32).Height(m.panelHeight()).Render(b.String())
}

func (m *Model) viewConversation() string {
	var b strings.Builder
	t := m.activeTabPtr()
	if t == nil {
		b.WriteString(styles.SubtleText().Render("no thread open — select one from the Threads panel"))
		return styles.Panel(m.focus == FocusConversation).Width(m.conversationWidth()).Height(m.panelHeight()).Render(b.String())
	}

	b.WriteString(styles.Title().Render(t.Title))
	if len(t.NavigationStack) > 0 {
		b.WriteString(styles.SubtleText().Render(fmt.Sprintf("  (%d deep)", len(t.NavigationStack))))
	}
	b.WriteString("\n\n")

	items := m.displayItems(t)
	for i, item := range items {
		cursor := "  "
		if i == t.SelectedMessageIndex {
			cursor = "> "
		}
		if item.Delegation != nil {
			line := fmt.Sprintf("%s[delegation] %s", cursor, item.Delegation.Title)
			b.WriteString(styles.SubtleText().Render(line))
			b.WriteString("\n")
			continue
		}
		msg := item.Message
		who := m.store.ProfileName(msg.Pubkey)
		if m.avatars != nil && m.avatars.Has(msg.Pubkey) {
			who = "◆ " + who
		}
		ts := time.Unix(msg.CreatedAt, 0).Format("15:04:05")
		header := fmt.Sprintf("%s%s  %s", cursor, who, styles.SubtleText().Render(ts))
		b.WriteString(header)
		b.WriteString("\n")
		content := msg.Content
		if msg.IsReasoning {
			content = styles.Reasoning().Render(content)
		}
		b.WriteString("    " + content)
		b.WriteString("\n")
		if msg.Ask != nil {
			b.WriteString(styles.SubtleText().Render("    [questionnaire attached]"))
			b.WriteString("\n")
		}
		if replies := m.store.Replies(msg.ID); len(replies) > 0 {
			b.WriteString(styles.SubtleText().Render(fmt.Sprintf("    (%d replies)", len(replies))))
			b.WriteString("\n")
		}
	}

	if snap, ok := m.streams.Get(t.ThreadID); ok {
		cursor := ""
		if !snap.IsComplete {
			cursor = styles.Cursor().Render("▌")
		}
		b.WriteString("\n" + styles.SubtleText().Render(m.store.ProfileName(snap.AgentPubkey)+" (typing)") + "\n")
		if snap.ReasoningContent != "" {
			b.WriteString(styles.Reasoning().Render(snap.ReasoningContent) + "\n")
		}
		b.WriteString(snap.TextContent + cursor + "\n")
	}

	return styles.Panel(m.focus == FocusConversation).Width(m.conversationWidth()).Height(m.panelHeight()).Render(b.String())
}

// visibleMessages applies the tab's visible-message-set rule (root, direct
// replies, and reply-less messages when not in a subthread; direct replies
// to the subthread root when one is active), preserving store order.
func visibleMessages(t *tab.Tab, msgs []store.Message) []store.Message {
	vm := make([]tab.VisibleMessage, len(msgs))
	byID := make(map[string]store.Message, len(msgs))
	for i, m := range msgs {
		vm[i] = tab.VisibleMessage{ID: m.ID, ReplyTo: m.ReplyTo}
		byID[m.ID] = m
	}

	var ids []string
	if t.SubthreadRoot != "" {
		ids = tab.SubthreadMessageIDs(t.SubthreadRoot, vm)
	} else {
		ids = tab.VisibleMessageIDs(t.ThreadID, vm)
	}

	out := make([]store.Message, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (m *Model) viewComposer() string {
	prefix := "> "
	return styles.Panel(m.focus == FocusComposer).Width(m.width - 4).Height(1).Render(prefix + m.composer.View())
}

func (m *Model) viewStatusBar() string {
	var parts []string
	if t := m.activeTabPtr(); t != nil {
		working := m.store.WorkingAgents(t.ThreadID)
		if len(working) > 0 {
			parts = append(parts, fmt.Sprintf("%d agents working", len(working)))
		}
	}
	for _, n := range m.notif.All() {
		style := styles.SubtleText()
		if n.Level.String() == "error" {
			style = styles.ErrorText()
		}
		parts = append(parts, style.Render(n.Message))
	}
	parts = append(parts, "tab: switch panel  ctrl+p: projects  ctrl+r: history  ctrl+c: quit")
	return styles.SubtleText().Render(strings.Join(parts, "  |  "))
}

func (m *Model) viewAskModal() string {
	var b strings.Builder
	b.WriteString(styles.Title().Render("Questionnaire"))
	b.WriteString("\n\n")
	idx := m.askState.CurrentQuestionIndex()
	b.WriteString(fmt.Sprintf("question %d\n", idx+1))
	if m.askState.Mode() == ask.ModeCustomInput {
		b.WriteString("type your own answer:\n")
		b.WriteString(m.askState.CustomInput())
		b.WriteString(styles.Cursor().Render("_"))
	} else {
		b.WriteString(styles.SubtleText().Render("up/down to move, space toggles (multi-select), enter to pick, esc to cancel"))
	}
	return styles.Modal().Width(minInt(60, m.width-4)).Render(b.String())
}

func (m *Model) viewTrustModal() string {
	var b strings.Builder
	if req, ok := m.trust.HeadBunkerRequest(); ok {
		b.WriteString(styles.Title().Render("Bunker sign request"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("requester: %s\nkind: %d\n\n", req.RequesterPub, req.EventKind))
		b.WriteString(styles.SubtleText().Render("a: approve once   r: approve & remember   j: reject   c: cancel"))
		return styles.Modal().Width(minInt(60, m.width-4)).Render(b.String())
	}
	if p, ok := m.trust.HeadBackendPrompt(); ok {
		b.WriteString(styles.Title().Render("Trust this backend?"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("pubkey: %s\n\n", p.Pubkey))
		b.WriteString(styles.SubtleText().Render("a: approve   j: block   c: cancel"))
		return styles.Modal().Width(minInt(60, m.width-4)).Render(b.String())
	}
	return ""
}

func (m *Model) viewHistorySearch() string {
	var b strings.Builder
	scope := "all projects"
	if m.historyScope != "" {
		scope = "this project"
	}
	b.WriteString(styles.Title().Render("History search (" + scope + ")"))
	b.WriteString("\n\n")
	b.WriteString(m.historyQuery.View())
	b.WriteString("\n\n")
	for i, e := range m.historyResults {
		if i >= 10 {
			break
		}
		b.WriteString(strings.TrimSpace(e.Content))
		b.WriteString("\n")
	}
	b.WriteString("\n" + styles.SubtleText().Render("tab: toggle scope   enter: use top result   esc: cancel"))
	return styles.Modal().Width(minInt(70, m.width-4)).Render(b.String())
}

func (m *Model) panelHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) conversationWidth() int {
	w := m.width - 24 - 32 - 6
	if w < 20 {
		w = 20
	}
	return w
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
