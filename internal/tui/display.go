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
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/tab"
)

// displayItem is one row in the conversation view: either a rendered
// Message or a delegation-preview card collapsing a descendant thread.
// Exactly one of the two fields is set: Message is nil for a delegation
// preview.
type displayItem struct {
	Message    *store.Message
	Delegation *store.Thread
}

// displayItems computes the current tab's display-item list: the visible
// message set, followed by a delegation-preview card for each child thread
// rooted under the tab's thread. Delegation previews are suppressed inside
// a subthread, since a subthread view only shows direct replies to the
// subthread root.
func (m *Model) displayItems(t *tab.Tab) []displayItem {
	msgs := m.store.Messages(t.ThreadID)
	visible := visibleMessages(t, msgs)

	items := make([]displayItem, 0, len(visible))
	for i := range visible {
		items = append(items, displayItem{Message: &visible[i]})
	}

	if t.SubthreadRoot == "" {
		for _, child := range m.store.ChildThreads(t.ThreadID) {
			c := child
			items = append(items, displayItem{Delegation: &c})
		}
	}
	return items
}
