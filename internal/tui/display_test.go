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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenex-go/tenex/internal/nostrevent"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/tab"
)

func newTestModel(st *store.Store) *Model {
	return &Model{store: st}
}

func TestDisplayItemsAppendsDelegationPreviewsAfterMessages(t *testing.T) {
	st := store.New(operation.NewTracker(0))
	st.Apply(nostrevent.RawEvent{ID: "root1", Kind: int(nostrevent.KindNote), CreatedAt: 100, Content: "root"})
	st.Apply(nostrevent.RawEvent{
		ID: "msg1", Kind: int(nostrevent.KindNote), CreatedAt: 200, Content: "m1",
		Tags: []nostrevent.Tag{{"e", "root1", "", "root"}},
	})
	st.Apply(nostrevent.RawEvent{
		ID: "child1", Kind: int(nostrevent.KindNote), CreatedAt: 300, Content: "delegated",
		Tags: []nostrevent.Tag{{"e", "root1", "", "delegation"}},
	})

	m := newTestModel(st)
	tb := tab.New("tab1", "root1", "", "root")
	items := m.displayItems(tb)

	require.Len(t, items, 2)
	require.NotNil(t, items[0].Message)
	assert.Equal(t, "msg1", items[0].Message.ID)
	require.NotNil(t, items[1].Delegation)
	assert.Equal(t, "child1", items[1].Delegation.ID)
}

func TestDisplayItemsSuppressesDelegationInsideSubthread(t *testing.T) {
	st := store.New(operation.NewTracker(0))
	st.Apply(nostrevent.RawEvent{ID: "root1", Kind: int(nostrevent.KindNote), CreatedAt: 100, Content: "root"})
	st.Apply(nostrevent.RawEvent{
		ID: "msg1", Kind: int(nostrevent.KindNote), CreatedAt: 200, Content: "m1",
		Tags: []nostrevent.Tag{{"e", "root1", "", "root"}},
	})
	st.Apply(nostrevent.RawEvent{
		ID: "child1", Kind: int(nostrevent.KindNote), CreatedAt: 300, Content: "delegated",
		Tags: []nostrevent.Tag{{"e", "root1", "", "delegation"}},
	})

	m := newTestModel(st)
	tb := tab.New("tab1", "root1", "", "root")
	tb.SubthreadRoot = "msg1"

	items := m.displayItems(tb)
	for _, it := range items {
		assert.Nil(t, it.Delegation, "delegation previews must not appear inside a subthread view")
	}
}

func TestNextFocusCyclesThroughPanelsAndWrapsToProjects(t *testing.T) {
	f := FocusProjects
	f = nextFocus(f)
	assert.Equal(t, FocusThreads, f)
	f = nextFocus(f)
	assert.Equal(t, FocusConversation, f)
	f = nextFocus(f)
	assert.Equal(t, FocusComposer, f)
	f = nextFocus(f)
	assert.Equal(t, FocusProjects, f)
}

func TestPrevFocusIsTheInverseOfNextFocus(t *testing.T) {
	for _, f := range []Focus{FocusProjects, FocusThreads, FocusConversation, FocusComposer} {
		assert.Equal(t, f, prevFocus(nextFocus(f)))
	}
}

func TestOpenTabReusesExistingTabForSameThread(t *testing.T) {
	m := &Model{activeTab: -1}

	first := m.openTab("proj1", "thread1", "Thread One")
	require.Len(t, m.tabs, 1)

	second := m.openTab("proj1", "thread1", "Thread One")
	assert.Len(t, m.tabs, 1, "reopening the same thread must not create a second tab")
	assert.Same(t, first, second)
}

func TestOpenTabCreatesDistinctTabsForDifferentThreads(t *testing.T) {
	m := &Model{activeTab: -1}

	m.openTab("proj1", "thread1", "Thread One")
	m.openTab("proj1", "thread2", "Thread Two")

	require.Len(t, m.tabs, 2)
	assert.Equal(t, 1, m.activeTab)
}

func TestActiveTabPtrReturnsNilWhenNoTabsOpen(t *testing.T) {
	m := &Model{activeTab: -1}
	assert.Nil(t, m.activeTabPtr())
}
