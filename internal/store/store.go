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
package store

import (
	"sort"

	"github.com/tenex-go/tenex/internal/nostrevent"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/ordered"
	"github.com/tenex-go/tenex/internal/pubsub"
)

// Store is the derived data store built by replaying classified events.
// It carries no internal mutex: every Apply and every query is expected to
// run from the single goroutine that owns the event loop (the bubbletea
// Update() call, or the REPL's dispatch loop). This mirrors the substrate's
// own single-writer guarantee and keeps mutation policy readable as plain
// sequential code instead of lock-guarded sections.
type Store struct {
	tracker *operation.Tracker

	projects map[string]*Project // by ATag
	threads  map[string]*Thread  // by thread id
	messages map[string][]*Message // by thread id, ordered by CreatedAt then ID

	repliesByParent map[string][]string // parent message/thread id -> child message ids
	profiles        map[string]*Profile // by pubkey
	statuses        map[string]*ProjectStatus // by project ATag
	reports         map[string]*Report
	nudges          map[string]*Nudge
	agentDefs       *ordered.Map[string, *AgentDefinition] // by pubkey+slug, registration order
	inbox           []*InboxItem

	ThreadEvents  *pubsub.Broker[Thread]
	MessageEvents *pubsub.Broker[Message]
	ProjectEvents *pubsub.Broker[Project]
	StatusEvents  *pubsub.Broker[ProjectStatus]
}

// New constructs an empty Store bound to the given operation tracker.
func New(tracker *operation.Tracker) *Store {
	return &Store{
		tracker:         tracker,
		projects:        make(map[string]*Project),
		threads:         make(map[string]*Thread),
		messages:        make(map[string][]*Message),
		repliesByParent: make(map[string][]string),
		profiles:        make(map[string]*Profile),
		statuses:        make(map[string]*ProjectStatus),
		reports:         make(map[string]*Report),
		nudges:          make(map[string]*Nudge),
		agentDefs:       ordered.New[string, *AgentDefinition](),

		ThreadEvents:  pubsub.NewBroker[Thread](),
		MessageEvents: pubsub.NewBroker[Message](),
		ProjectEvents: pubsub.NewBroker[Project](),
		StatusEvents:  pubsub.NewBroker[ProjectStatus](),
	}
}

// ApplyBulk replays a batch of raw events in order. Use this for initial
// subscription backfill, where arrival order is not guaranteed to respect
// causal order and the confluence invariants must hold regardless.
func (s *Store) ApplyBulk(events []nostrevent.RawEvent) {
	for _, e := range events {
		s.Apply(e)
	}
}

// Apply classifies and folds a single raw event into the store. Applying
// the same event twice is a no-op beyond the first application — every
// mutation path below is written so that re-applying identical data leaves
// the store byte-for-byte the same (idempotence).
func (s *Store) Apply(e nostrevent.RawEvent) {
	c := nostrevent.Classify(e)
	switch c.Class {
	case nostrevent.ClassThreadRoot:
		s.applyThreadRoot(c)
	case nostrevent.ClassMessage:
		s.applyMessage(c)
	case nostrevent.ClassProjectStatus:
		s.applyProjectStatus(c)
	case nostrevent.ClassProject:
		s.applyProject(c)
	case nostrevent.ClassProfileUpdate:
		s.applyProfile(c)
	case nostrevent.ClassReport:
		s.applyReport(c)
	case nostrevent.ClassNudge:
		s.applyNudge(c)
	case nostrevent.ClassAgentDefinition:
		s.applyAgentDefinition(c)
	case nostrevent.ClassConversationMetadata:
		s.applyConversationMetadata(c)
	case nostrevent.ClassOperationBeacon:
		s.applyOperationBeacon(c)
	case nostrevent.ClassAgentLesson, nostrevent.ClassUnknown:
		// No derived state for these classes; they are observed but not
		// indexed.
	}
}

// applyThreadRoot creates a thread the first time its root event is seen.
// If messages addressed to this thread id arrived first (out-of-order
// delivery), a stub thread already exists; this call fills it in without
// discarding the messages that reference it, preserving confluence
// regardless of arrival order.
func (s *Store) applyThreadRoot(c nostrevent.Classified) {
	e := c.Event
	atag, _ := e.ATag()
	existing, ok := s.threads[c.ThreadID]
	if ok && !existing.stub {
		return // idempotent: root already recorded
	}
	th := existing
	if th == nil {
		th = &Thread{ID: c.ThreadID}
		s.threads[c.ThreadID] = th
	}
	th.stub = false
	th.Title = firstLine(e.Content)
	th.AuthorPub = e.Pubkey
	th.Content = e.Content
	th.CreatedAt = e.CreatedAt
	th.ProjectATag = atag
	th.ParentConversationID = c.DelegationParentID
	if th.LastActivity < e.CreatedAt {
		th.LastActivity = e.CreatedAt
	}
	if th.EffectiveLastActivity < th.LastActivity {
		th.EffectiveLastActivity = th.LastActivity
	}
	s.ThreadEvents.Publish(pubsub.NewUpdatedEvent(*th))
}

// applyMessage inserts a message into its thread in CreatedAt order and
// walks the effective-last-activity value up the delegation-parent chain,
// taking the monotonic max at each ancestor so that activity in a deep
// delegated subthread surfaces every containing thread up to the root,
// without ever moving a timestamp backward.
func (s *Store) applyMessage(c nostrevent.Classified) {
	e := c.Event
	for _, existing := range s.messages[c.ThreadID] {
		if existing.ID == e.ID {
			return // idempotent
		}
	}

	msg := &Message{
		ID:        e.ID,
		ThreadID:  c.ThreadID,
		ReplyTo:   c.ReplyTo,
		Pubkey:    e.Pubkey,
		CreatedAt: e.CreatedAt,
		Content:   e.Content,
		Ask:       c.Ask,
	}
	s.insertMessageOrdered(msg)

	if c.ReplyTo != "" {
		s.repliesByParent[c.ReplyTo] = append(s.repliesByParent[c.ReplyTo], msg.ID)
	}

	th, ok := s.threads[c.ThreadID]
	if !ok {
		th = &Thread{ID: c.ThreadID, stub: true}
		s.threads[c.ThreadID] = th
	}
	if th.LastActivity < e.CreatedAt {
		th.LastActivity = e.CreatedAt
	}
	s.bumpEffectiveActivity(th, e.CreatedAt)
	s.MessageEvents.Publish(pubsub.NewCreatedEvent(*msg))
}

func (s *Store) insertMessageOrdered(msg *Message) {
	list := s.messages[msg.ThreadID]
	idx := sort.Search(len(list), func(i int) bool {
		if list[i].CreatedAt != msg.CreatedAt {
			return list[i].CreatedAt > msg.CreatedAt
		}
		return list[i].ID > msg.ID
	})
	list = append(list, nil)
	copy(list[idx+1:], list[idx:])
	list[idx] = msg
	s.messages[msg.ThreadID] = list
}

// bumpEffectiveActivity raises a thread's EffectiveLastActivity to at least
// `at`, publishing an update only when the value actually changes, then
// walks the delegation chain up through ParentConversationID so activity
// deep in a delegated subthread surfaces every ancestor up to the root.
// The seen set guards against a malformed delegation chain looping back
// on itself.
func (s *Store) bumpEffectiveActivity(th *Thread, at int64) {
	seen := make(map[string]bool)
	for th != nil && !seen[th.ID] {
		seen[th.ID] = true
		if th.EffectiveLastActivity >= at {
			return
		}
		th.EffectiveLastActivity = at
		s.ThreadEvents.Publish(pubsub.NewUpdatedEvent(*th))

		if th.ParentConversationID == "" {
			return
		}
		th = s.threads[th.ParentConversationID]
	}
}

// applyProjectStatus replaces the status snapshot wholesale: this kind is
// not merged field-by-field because each snapshot is self-contained and a
// newer snapshot fully supersedes an older one regardless of which fields
// changed (last-writer-wins by CreatedAt: a snapshot older than the one
// held is ignored, and one with an equal CreatedAt replaces it).
func (s *Store) applyProjectStatus(c nostrevent.Classified) {
	e := c.Event
	if c.ProjectATag == "" {
		return
	}
	existing, ok := s.statuses[c.ProjectATag]
	if ok && existing.LastSeen > e.CreatedAt {
		return
	}
	status := decodeProjectStatus(c.ProjectATag, e)
	s.statuses[c.ProjectATag] = status
	s.StatusEvents.Publish(pubsub.NewUpdatedEvent(*status))
}

// applyProject upserts project metadata with last-writer-wins semantics,
// tie-broken lexicographically by event id when two revisions share a
// CreatedAt.
func (s *Store) applyProject(c nostrevent.Classified) {
	e := c.Event
	if c.ProjectATag == "" {
		return
	}
	existing, ok := s.projects[c.ProjectATag]
	if ok && !isNewerRevision(e.CreatedAt, e.ID, existing.CreatedAt, existing.EventID) {
		return
	}
	proj := &Project{
		ATag:      c.ProjectATag,
		Title:     firstLine(e.Content),
		AuthorPub: e.Pubkey,
		Slug:      c.ProjectSlug,
		CreatedAt: e.CreatedAt,
		EventID:   e.ID,
	}
	s.projects[c.ProjectATag] = proj
	s.ProjectEvents.Publish(pubsub.NewUpdatedEvent(*proj))
}

func isNewerRevision(newAt int64, newID string, oldAt int64, oldID string) bool {
	if newAt != oldAt {
		return newAt > oldAt
	}
	return newID > oldID
}

func (s *Store) applyProfile(c nostrevent.Classified) {
	e := c.Event
	existing, ok := s.profiles[e.Pubkey]
	if ok && existing.CreatedAt >= e.CreatedAt {
		return
	}
	s.profiles[e.Pubkey] = &Profile{
		Pubkey:    e.Pubkey,
		Name:      decodeProfileName(e.Content),
		CreatedAt: e.CreatedAt,
	}
}

func (s *Store) applyReport(c nostrevent.Classified) {
	e := c.Event
	if _, ok := s.reports[e.ID]; ok {
		return
	}
	s.reports[e.ID] = &Report{
		ID:          e.ID,
		ProjectATag: c.ProjectATag,
		Pubkey:      e.Pubkey,
		CreatedAt:   e.CreatedAt,
		Content:     e.Content,
		Hashtags:    c.Hashtags,
	}
	if c.ProjectATag != "" {
		s.inbox = append(s.inbox, &InboxItem{
			ProjectATag: c.ProjectATag,
			CreatedAt:   e.CreatedAt,
			Kind:        InboxReportReference,
		})
	}
}

func (s *Store) applyNudge(c nostrevent.Classified) {
	e := c.Event
	if _, ok := s.nudges[e.ID]; ok {
		return
	}
	s.nudges[e.ID] = &Nudge{ID: e.ID, Pubkey: e.Pubkey, CreatedAt: e.CreatedAt, Content: e.Content}
}

func (s *Store) applyAgentDefinition(c nostrevent.Classified) {
	e := c.Event
	key := e.Pubkey + ":" + c.AgentSlug
	existing, ok := s.agentDefs.Get(key)
	if ok && existing.CreatedAt >= e.CreatedAt {
		return
	}
	s.agentDefs.Set(key, &AgentDefinition{
		Pubkey:    e.Pubkey,
		Slug:      c.AgentSlug,
		EventID:   e.ID,
		CreatedAt: e.CreatedAt,
		Content:   e.Content,
	})
}

// applyConversationMetadata stamps a thread's summary without disturbing
// any other field. When the thread is not known yet it creates a stub
// holding only the summary, which applyThreadRoot fills in when the root
// arrives.
func (s *Store) applyConversationMetadata(c nostrevent.Classified) {
	if c.MetadataThreadID == "" {
		return
	}
	th, ok := s.threads[c.MetadataThreadID]
	if !ok {
		th = &Thread{ID: c.MetadataThreadID, stub: true}
		s.threads[c.MetadataThreadID] = th
	}
	th.Summary = c.Event.Content
	s.ThreadEvents.Publish(pubsub.NewUpdatedEvent(*th))
}

func (s *Store) applyOperationBeacon(c nostrevent.Classified) {
	if s.tracker == nil {
		return
	}
	e := c.Event
	projectATag, _ := s.ProjectForThread(c.OperationThreadID)
	s.tracker.Refresh(e.ID, c.OperationThreadID, projectATag, c.AgentPubkeys, e.CreatedAt, e.CreatedAt)
}

func firstLine(content string) string {
	for i, r := range content {
		if r == '\n' {
			return content[:i]
		}
	}
	return content
}
