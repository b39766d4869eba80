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
// Package draft persists in-progress composer text and a searchable log
// of sent/abandoned message history, mirroring the persisted-state layout's
// drafts/ and history/ directories.
package draft

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Source distinguishes why a history entry exists — a display-only
// concept whose storage format is otherwise unconstrained.
type Source string

const (
	SourceTyping      Source = "typing"
	SourceSent        Source = "sent"
	SourceForeignEvent Source = "foreign-event"
)

// Draft is unsent composer contents for one conversation or pending
// context, keyed by (ProjectATag, ID).
type Draft struct {
	ID          string
	ProjectATag string
	TextBody    string
	CreatedAt   int64
	UpdatedAt   int64
}

// Entry is one logged sent/drafted message.
type Entry struct {
	Content     string
	CreatedAt   int64
	ProjectATag string
	Source      Source
}

// Store persists drafts and the history log to disk. Each file under dir
// is a simple JSON bundle guarded by this store's mutex; writes are
// idempotent.
type Store struct {
	mu      sync.Mutex
	dir     string
	drafts  map[string]*Draft // keyed by ID
	history []Entry
}

// Open loads (or initializes) a draft/history store rooted at dir.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir, drafts: make(map[string]*Draft)}
	if err := s.loadDrafts(); err != nil {
		return nil, err
	}
	if err := s.loadHistory(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) draftsPath() string  { return filepath.Join(s.dir, "drafts", "drafts.json") }
func (s *Store) historyPath() string { return filepath.Join(s.dir, "history", "history.json") }

func (s *Store) loadDrafts() error {
	raw, err := os.ReadFile(s.draftsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var list []*Draft
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	for _, d := range list {
		s.drafts[d.ID] = d
	}
	return nil
}

func (s *Store) loadHistory() error {
	raw, err := os.ReadFile(s.historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(raw, &s.history)
}

func (s *Store) saveDrafts() error {
	if err := os.MkdirAll(filepath.Dir(s.draftsPath()), 0o700); err != nil {
		return err
	}
	list := make([]*Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		list = append(list, d)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.draftsPath(), raw, 0o600)
}

func (s *Store) saveHistory() error {
	if err := os.MkdirAll(filepath.Dir(s.historyPath()), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.historyPath(), raw, 0o600)
}

// NewDraftID mints a local draft identifier. Event ids from the transport
// are content hashes; drafts have no such identity yet, so they get a
// locally-generated UUID instead.
func NewDraftID() string {
	return uuid.NewString()
}

// SaveDraft upserts a draft's text and persists it (the debounce interval
// is the caller's responsibility — this call always writes through).
func (s *Store) SaveDraft(id, projectATag, text string, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		d = &Draft{ID: id, ProjectATag: projectATag, CreatedAt: now}
		s.drafts[id] = d
	}
	d.TextBody = text
	d.UpdatedAt = now
	return s.saveDrafts()
}

// DeleteDraft removes a draft: called on successful send, or when the
// editor goes empty while a draft record exists.
func (s *Store) DeleteDraft(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return nil
	}
	delete(s.drafts, id)
	return s.saveDrafts()
}

// ListDrafts returns every open draft, optionally scoped to a project
// (empty scope returns all projects) — the draft-navigator supplemented
// feature.
func (s *Store) ListDrafts(projectATagScope string) []Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Draft, 0, len(s.drafts))
	for _, d := range s.drafts {
		if projectATagScope != "" && d.ProjectATag != projectATagScope {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out
}

// AppendHistory logs a sent message or a non-trivial abandoned draft.
func (s *Store) AppendHistory(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, e)
	return s.saveHistory()
}
