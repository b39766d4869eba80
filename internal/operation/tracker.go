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
// Package operation tracks which agents are actively working, derived
// entirely from operation-beacon events. A beacon's absence over time is
// itself meaningful: an operation with no heartbeat inside the staleness
// window is no longer active and is pruned, never marked "done" explicitly.
package operation

import "sort"

// DefaultStaleWindow is the recommended interval after which an operation
// with no refreshed heartbeat is considered finished.
const DefaultStaleWindow = 90 // seconds

// Operation is one in-flight unit of agent work, derived from the most
// recent beacon seen for a given event id.
type Operation struct {
	EventID          string
	ThreadID         string
	ProjectATag      string
	AgentPubkeys     []string
	StartedAt        int64
	LastHeartbeatAt  int64
}

// Tracker holds the live set of operations. It carries no internal lock:
// callers run it from the single event-loop goroutine that owns all writes
// and reads, per the client's single-writer concurrency model. Tracker has
// no dependency on the derived data store; the store holds a reference to
// a Tracker instead, so query methods like IsProjectBusy can delegate here
// without an import cycle.
type Tracker struct {
	staleWindow int64
	byEventID   map[string]*Operation
}

// NewTracker constructs a Tracker with the given staleness window in
// seconds. A non-positive window falls back to DefaultStaleWindow.
func NewTracker(staleWindowSeconds int64) *Tracker {
	if staleWindowSeconds <= 0 {
		staleWindowSeconds = DefaultStaleWindow
	}
	return &Tracker{
		staleWindow: staleWindowSeconds,
		byEventID:   make(map[string]*Operation),
	}
}

// Refresh records or updates an operation from a beacon observed at `now`.
// Re-observing the same beacon id is idempotent: it moves LastHeartbeatAt
// forward but never creates a duplicate entry or moves it backward.
func (t *Tracker) Refresh(eventID, threadID, projectATag string, agentPubkeys []string, startedAt, now int64) {
	if op, ok := t.byEventID[eventID]; ok {
		if now > op.LastHeartbeatAt {
			op.LastHeartbeatAt = now
		}
		return
	}
	t.byEventID[eventID] = &Operation{
		EventID:         eventID,
		ThreadID:        threadID,
		ProjectATag:     projectATag,
		AgentPubkeys:    agentPubkeys,
		StartedAt:       startedAt,
		LastHeartbeatAt: now,
	}
}

// Prune removes every operation whose last heartbeat is older than the
// staleness window relative to `now`. It returns the ids it removed.
func (t *Tracker) Prune(now int64) []string {
	var removed []string
	for id, op := range t.byEventID {
		if now-op.LastHeartbeatAt > t.staleWindow {
			removed = append(removed, id)
			delete(t.byEventID, id)
		}
	}
	return removed
}

// ActiveOperations returns every tracked operation ordered by most recent
// heartbeat first.
func (t *Tracker) ActiveOperations() []Operation {
	out := make([]Operation, 0, len(t.byEventID))
	for _, op := range t.byEventID {
		out = append(out, *op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastHeartbeatAt != out[j].LastHeartbeatAt {
			return out[i].LastHeartbeatAt > out[j].LastHeartbeatAt
		}
		return out[i].EventID < out[j].EventID
	})
	return out
}

// WorkingAgents returns the set of pubkeys with an active operation in the
// given thread.
func (t *Tracker) WorkingAgents(threadID string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, op := range t.byEventID {
		if op.ThreadID != threadID {
			continue
		}
		for _, pk := range op.AgentPubkeys {
			out[pk] = struct{}{}
		}
	}
	return out
}

// IsProjectBusy reports whether any tracked operation belongs to the given
// project.
func (t *Tracker) IsProjectBusy(projectATag string) bool {
	for _, op := range t.byEventID {
		if op.ProjectATag == projectATag {
			return true
		}
	}
	return false
}
