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
// Package store holds the derived data store: the single source of truth
// for projects, threads, messages, operations, agent status, inbox,
// reports, and profiles that the UI layer reads from. The store is a
// single-writer value — see the concurrency note on Store.
package store

import "github.com/tenex-go/tenex/internal/nostrevent"

// Project is a named, addressable workspace keyed by an a_tag.
type Project struct {
	ATag      string
	Title     string
	AuthorPub string
	Slug      string
	IsDeleted bool
	CreatedAt int64
	EventID   string // for last-writer-wins tie-breaking
}

// Thread is a root conversation: a kind-1 event with no reply edge.
type Thread struct {
	ID                      string
	Title                   string
	AuthorPub               string
	Content                 string
	CreatedAt               int64
	LastActivity            int64
	EffectiveLastActivity   int64
	ParentConversationID    string
	StatusLabel             string
	StatusCurrentActivity   string
	Summary                 string
	ProjectATag             string
	stub                    bool // true until the ThreadRoot event itself has arrived
}

// Message is a single event within a thread.
type Message struct {
	ID           string
	ThreadID     string
	ReplyTo      string // empty if none; otherwise the thread root or any message in ThreadID
	Pubkey       string
	CreatedAt    int64
	Content      string
	IsReasoning  bool
	Branch       string
	LLMMetadata  map[string]string
	Ask          *nostrevent.AskEvent
}

// ProjectAgent is one agent attached to a project, as reported in a status
// snapshot.
type ProjectAgent struct {
	Pubkey string
	Name   string
	IsPm   bool
	Model  string
	Tools  []string
}

// ProjectStatus is a replaceable snapshot describing a project's online
// agents, models, tools, and branches.
type ProjectStatus struct {
	ProjectATag   string
	Agents        []ProjectAgent
	Models        []string
	Tools         []string
	Branches      []string
	DefaultBranch string
	LastSeen      int64
}

// InboxKind distinguishes why an InboxItem was created.
type InboxKind int

const (
	InboxMessageMention InboxKind = iota
	InboxAsk
	InboxReportReference
)

// InboxItem is a derived attention-queue entry.
type InboxItem struct {
	ThreadID    string
	ProjectATag string
	CreatedAt   int64
	IsRead      bool
	Kind        InboxKind
}

// Report is a published report document.
type Report struct {
	ID          string
	ProjectATag string
	Pubkey      string
	CreatedAt   int64
	Content     string
	Hashtags    []string
}

// Nudge is a short standing instruction an agent can be given.
type Nudge struct {
	ID        string
	Pubkey    string
	CreatedAt int64
	Content   string
}

// AgentDefinition is a named, versioned agent configuration.
type AgentDefinition struct {
	Pubkey    string
	Slug      string
	EventID   string
	CreatedAt int64
	Content   string
}

// Profile is a human-readable identity for a pubkey.
type Profile struct {
	Pubkey    string
	Name      string
	CreatedAt int64
}
