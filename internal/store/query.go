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

	"github.com/tenex-go/tenex/internal/ask"
)

// AgentDefinition returns the most recently registered definition for
// agentPubkey under slug, if one has been seen.
func (s *Store) AgentDefinition(agentPubkey, slug string) (AgentDefinition, bool) {
	def, ok := s.agentDefs.Get(agentPubkey + ":" + slug)
	if !ok {
		return AgentDefinition{}, false
	}
	return *def, true
}

// AgentDefinitionsFor returns every definition registered for agentPubkey,
// in registration order, across all slugs it has published under.
func (s *Store) AgentDefinitionsFor(agentPubkey string) []AgentDefinition {
	var out []AgentDefinition
	s.agentDefs.Range(func(_ string, def *AgentDefinition) bool {
		if def.Pubkey == agentPubkey {
			out = append(out, *def)
		}
		return true
	})
	return out
}

// Projects returns every non-deleted project, ordered by title.
func (s *Store) Projects() []Project {
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.IsDeleted {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// Thread returns a single thread by id.
func (s *Store) Thread(id string) (Thread, bool) {
	th, ok := s.threads[id]
	if !ok || th.stub {
		return Thread{}, false
	}
	return *th, true
}

// ThreadsByProject returns every non-stub thread belonging to a project,
// ordered by effective last activity descending (most recently active
// first).
func (s *Store) ThreadsByProject(projectATag string) []Thread {
	var out []Thread
	for _, th := range s.threads {
		if th.stub || th.ProjectATag != projectATag {
			continue
		}
		out = append(out, *th)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EffectiveLastActivity != out[j].EffectiveLastActivity {
			return out[i].EffectiveLastActivity > out[j].EffectiveLastActivity
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Messages returns every message in a thread, ordered by CreatedAt then ID
// (the same order they were inserted in by insertMessageOrdered).
func (s *Store) Messages(threadID string) []Message {
	list := s.messages[threadID]
	out := make([]Message, len(list))
	for i, m := range list {
		out[i] = *m
	}
	return out
}

// Replies returns the ids of every message directly replying to the given
// parent (a thread id or a message id).
func (s *Store) Replies(parentID string) []string {
	return append([]string(nil), s.repliesByParent[parentID]...)
}

// ProjectStatus returns the latest status snapshot for a project.
func (s *Store) ProjectStatus(projectATag string) (ProjectStatus, bool) {
	st, ok := s.statuses[projectATag]
	if !ok {
		return ProjectStatus{}, false
	}
	return *st, true
}

// ProfileName returns the best-known display name for a pubkey, falling
// back to a shortened hex form when no profile has been seen.
func (s *Store) ProfileName(pubkey string) string {
	if p, ok := s.profiles[pubkey]; ok && p.Name != "" {
		return p.Name
	}
	return shortenHex(pubkey)
}

func shortenHex(pubkey string) string {
	if len(pubkey) <= 12 {
		return pubkey
	}
	return pubkey[:6] + "…" + pubkey[len(pubkey)-4:]
}

// IsProjectOnline reports whether a status snapshot has been seen for the
// project at all.
func (s *Store) IsProjectOnline(projectATag string) bool {
	_, ok := s.statuses[projectATag]
	return ok
}

// IsProjectBusy reports whether any agent in the project has an active
// operation, delegating to the bound operation Tracker.
func (s *Store) IsProjectBusy(projectATag string) bool {
	if s.tracker == nil {
		return false
	}
	return s.tracker.IsProjectBusy(projectATag)
}

// ActiveOperations exposes the bound Tracker's live operation list.
func (s *Store) ActiveOperations() []OperationView {
	if s.tracker == nil {
		return nil
	}
	ops := s.tracker.ActiveOperations()
	out := make([]OperationView, len(ops))
	for i, op := range ops {
		out[i] = OperationView{
			ThreadID:        op.ThreadID,
			AgentPubkeys:    op.AgentPubkeys,
			StartedAt:       op.StartedAt,
			LastHeartbeatAt: op.LastHeartbeatAt,
		}
	}
	return out
}

// WorkingAgents returns the pubkeys with an active operation in a thread.
func (s *Store) WorkingAgents(threadID string) map[string]struct{} {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.WorkingAgents(threadID)
}

// OperationView is the store's read-only projection of a tracked
// operation, decoupled from the operation package's own record shape.
type OperationView struct {
	ThreadID        string
	AgentPubkeys    []string
	StartedAt       int64
	LastHeartbeatAt int64
}

// UnansweredAsk returns the most recent message in a thread carrying an
// ask payload that userPubkey has not yet replied to directly, or false
// if the thread has no outstanding ask.
func (s *Store) UnansweredAsk(threadID, userPubkey string) (Message, bool) {
	list := s.messages[threadID]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Ask == nil {
			continue
		}
		if ask.IsAnswered(replyRefs(list), list[i].ID, userPubkey) {
			return Message{}, false
		}
		return *list[i], true
	}
	return Message{}, false
}

func replyRefs(list []*Message) []ask.ReplyRef {
	refs := make([]ask.ReplyRef, 0, len(list))
	for _, m := range list {
		refs = append(refs, ask.ReplyRef{Pubkey: m.Pubkey, ReplyTo: m.ReplyTo})
	}
	return refs
}

// ProjectForThread walks a thread's provenance to the owning project,
// returning the project's ATag.
func (s *Store) ProjectForThread(threadID string) (string, bool) {
	th, ok := s.threads[threadID]
	if !ok || th.ProjectATag == "" {
		return "", false
	}
	return th.ProjectATag, true
}

// ChildThreads returns every non-stub thread delegated from parentThreadID,
// ordered by creation time, for rendering delegation-preview cards in the
// parent's conversation view.
func (s *Store) ChildThreads(parentThreadID string) []Thread {
	var out []Thread
	for _, th := range s.threads {
		if th.stub || th.ParentConversationID != parentThreadID {
			continue
		}
		out = append(out, *th)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Inbox returns every unread inbox item, most recent first.
func (s *Store) Inbox() []InboxItem {
	out := make([]InboxItem, 0, len(s.inbox))
	for _, item := range s.inbox {
		if item.IsRead {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// Stats reports simple counters for the debug-stats view.
type Stats struct {
	Projects int
	Threads  int
	Messages int
	Profiles int
}

func (s *Store) Stats() Stats {
	msgCount := 0
	for _, list := range s.messages {
		msgCount += len(list)
	}
	return Stats{
		Projects: len(s.projects),
		Threads:  len(s.threads),
		Messages: msgCount,
		Profiles: len(s.profiles),
	}
}
