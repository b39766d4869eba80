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
// Package tab models per-tab conversation view state: selection, scroll,
// subthread filtering, and the navigation stack used to drill into and
// return from delegation conversations. A Tab owns this state exclusively;
// nothing outside the tab mutates it.
package tab

// SearchState holds the chat-local search query and active match index.
type SearchState struct {
	Query        string
	ActiveMatch  int
}

// NavEntry is one saved position on the navigation stack, restored
// bit-for-bit when popped.
type NavEntry struct {
	ThreadID            string
	Title               string
	ProjectATag         string
	ScrollOffset        int
	SelectedMessageIndex int
}

// Tab is one open conversation view.
type Tab struct {
	ID               string
	ThreadID         string
	DraftID          string
	ProjectATag      string
	Title            string

	ScrollOffset         int
	SelectedMessageIndex int
	SubthreadRoot        string // message id, empty when not in a subthread

	NavigationStack []NavEntry
	Search          SearchState
	SelectedNudgeIDs []string
	SelectedBranch   string
	HasUnread        bool
}

// New constructs a freshly opened tab pointed at a thread.
func New(id, threadID, projectATag, title string) *Tab {
	return &Tab{ID: id, ThreadID: threadID, ProjectATag: projectATag, Title: title}
}

// EnterSubthread filters the view down to direct replies of msgID,
// resetting selection and scroll.
func (t *Tab) EnterSubthread(msgID string) {
	t.SubthreadRoot = msgID
	t.SelectedMessageIndex = 0
	t.ScrollOffset = 0
}

// ExitSubthread returns to the full thread view.
func (t *Tab) ExitSubthread() {
	t.SubthreadRoot = ""
	t.SelectedMessageIndex = 0
	t.ScrollOffset = 0
}

// EnterDelegation pushes the tab's current position onto the navigation
// stack and retargets it at a delegation's thread, resetting selection
// and scroll.
func (t *Tab) EnterDelegation(newThreadID, newProjectATag, newTitle string) {
	t.NavigationStack = append(t.NavigationStack, NavEntry{
		ThreadID:             t.ThreadID,
		Title:                t.Title,
		ProjectATag:          t.ProjectATag,
		ScrollOffset:         t.ScrollOffset,
		SelectedMessageIndex: t.SelectedMessageIndex,
	})
	t.ThreadID = newThreadID
	t.ProjectATag = newProjectATag
	t.Title = newTitle
	t.SelectedMessageIndex = 0
	t.ScrollOffset = 0
	t.SubthreadRoot = ""
}

// PopNavigation restores the most recently pushed position exactly,
// reporting false if the stack was empty.
func (t *Tab) PopNavigation() bool {
	n := len(t.NavigationStack)
	if n == 0 {
		return false
	}
	entry := t.NavigationStack[n-1]
	t.NavigationStack = t.NavigationStack[:n-1]

	t.ThreadID = entry.ThreadID
	t.Title = entry.Title
	t.ProjectATag = entry.ProjectATag
	t.ScrollOffset = entry.ScrollOffset
	t.SelectedMessageIndex = entry.SelectedMessageIndex
	t.SubthreadRoot = ""
	return true
}

// MarkUnread marks the tab as having unseen activity. Switching to the tab
// is the caller's responsibility to report via MarkRead.
func (t *Tab) MarkUnread() { t.HasUnread = true }

// MarkRead clears the unread flag.
func (t *Tab) MarkRead() { t.HasUnread = false }

// VisibleMessage is the minimal shape tab navigation needs from a message
// to compute the visible set, independent of the store's full Message type.
type VisibleMessage struct {
	ID       string
	ReplyTo  string
}

// VisibleMessageIDs computes the ids of the messages that should render in
// the main view (no subthread): the thread root itself, direct replies to
// the root, and messages with no reply edge at all. Deeper replies are
// rendered through a "N replies" affordance instead, not inline.
func VisibleMessageIDs(threadID string, all []VisibleMessage) []string {
	out := make([]string, 0, len(all))
	for _, m := range all {
		if m.ID == threadID || m.ReplyTo == "" || m.ReplyTo == threadID {
			out = append(out, m.ID)
		}
	}
	return out
}

// SubthreadMessageIDs computes the visible set when the tab has entered a
// subthread rooted at root: direct replies to root only.
func SubthreadMessageIDs(root string, all []VisibleMessage) []string {
	out := make([]string, 0, len(all))
	for _, m := range all {
		if m.ReplyTo == root {
			out = append(out, m.ID)
		}
	}
	return out
}
