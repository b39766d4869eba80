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
// Package transport types the external interface boundary: the relay
// connection, the content-addressed store, and key material are external
// collaborators referenced only by interface here, per the scope cut —
// no concrete wire protocol ships in this package.
package transport

import "github.com/tenex-go/tenex/internal/nostrevent"

// Command is an outbound instruction sent to the transport. Handle.Send
// never blocks; Command is a closed sum type distinguished by its Kind.
type CommandKind int

const (
	CmdPublishThread CommandKind = iota
	CmdPublishMessage
	CmdBootProject
	CmdSubscribeProjectMessages
	CmdSubscribeProjectMetadata
	CmdUpdateAgentConfig
	CmdUpdateGlobalAgentConfig
	CmdBunkerResponse
	CmdAddBunkerAutoApproveRule
	CmdConnect
	CmdCancelSubscription
)

// Command carries the union of fields every command kind may need; unused
// fields for a given Kind are left zero. This mirrors the shape a
// generated RPC request message would take, without committing to gRPC.
type Command struct {
	Kind CommandKind

	ProjectATag             string
	ProjectPubkey           string
	Content                 string
	AgentPubkey             string
	NudgeIDs                []string
	SkillIDs                []string
	ReferenceConversationID string
	ReferenceReportATag     string
	ForkMessageID           string
	ThreadID                string
	ReplyTo                 string
	AskAuthorPubkey         string

	Model string
	Tools []string
	Tags  map[string]string

	BunkerRequestID string
	BunkerApproved  bool
	RequesterPubkey string
	EventKind       int

	Keys       string
	UserPubkey string
	RelayURLs  []string

	// ResponseCh, if non-nil, receives exactly one Response for this
	// command. The Command layer owns the timeout on this channel.
	ResponseCh chan<- Response

	// SubscriptionID identifies a prior subscription being canceled;
	// used only by CmdCancelSubscription.
	SubscriptionID string
}

// Response is what a command's ResponseCh receives.
type Response struct {
	OK    bool
	Err   error
	// EventID is set for publish responses: the id the transport
	// assigned the signed event.
	EventID string
}

// DataChangeKind distinguishes the inbound stream's variants.
type DataChangeKind int

const (
	ChangeLocalStreamChunk DataChangeKind = iota
	ChangeProjectStatusJSON
	ChangeSignedEvent
	ChangeBunkerSignRequest
	ChangeConnectivity
)

// DataChange is one inbound message from the transport.
type DataChange struct {
	Kind DataChangeKind

	ConversationID string
	AgentPubkey    string
	TextDelta      string
	ReasoningDelta string
	IsFinish       bool

	ProjectStatusJSON string
	ProjectATag       string

	Event nostrevent.RawEvent

	BunkerRequestID string
	RequesterPubkey string
	EventKind       int
	EventBodyJSON   string

	Connected bool
}

// Handle is the transport boundary the Command and Subscription layers
// depend on. A concrete implementation (relay connection, local event
// store) lives outside this repository's scope.
type Handle interface {
	// Send enqueues a command; it never blocks.
	Send(Command)
	// Changes returns the channel of inbound DataChange values. The
	// channel is closed when the transport shuts down.
	Changes() <-chan DataChange
}
