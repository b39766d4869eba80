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
// Package command translates high-level user intents into outbound
// transport commands, waiting on a bounded response channel where the
// intent requires confirmation and reporting failure through the
// notification queue rather than to a caller that would crash the UI.
// This is the one layer allowed to propagate fatal errors, and only for
// the bootstrap path (Connect).
package command

import (
	"time"

	"github.com/tenex-go/tenex/internal/log"
	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/slice"
	"github.com/tenex-go/tenex/internal/transport"
)

// Default response timeouts.
const (
	PublishTimeout = 5 * time.Second
	ConnectTimeout = 15 * time.Second
)

// Layer dispatches intents onto a transport.Handle.
type Layer struct {
	handle transport.Handle
	notify *notify.Queue
}

// New constructs a command Layer bound to a transport handle and the
// notification queue failures are reported through.
func New(handle transport.Handle, notifications *notify.Queue) *Layer {
	return &Layer{handle: handle, notify: notifications}
}

// PublishThreadIntent is the input to PublishThread.
type PublishThreadIntent struct {
	ProjectATag             string
	Content                 string
	AgentPubkey             string
	NudgeIDs                []string
	SkillIDs                []string
	ReferenceConversationID string
	ReferenceReportATag     string
	ForkMessageID           string
}

// PublishThread emits PublishThread and waits up to PublishTimeout for a
// response, reporting failure through the notification queue. It returns
// the new event id on success.
func (l *Layer) PublishThread(in PublishThreadIntent) (string, bool) {
	respCh := make(chan transport.Response, 1)
	l.handle.Send(transport.Command{
		Kind:                    transport.CmdPublishThread,
		ProjectATag:             in.ProjectATag,
		Content:                 in.Content,
		AgentPubkey:             in.AgentPubkey,
		NudgeIDs:                slice.Unique(in.NudgeIDs),
		SkillIDs:                slice.Unique(in.SkillIDs),
		ReferenceConversationID: in.ReferenceConversationID,
		ReferenceReportATag:     in.ReferenceReportATag,
		ForkMessageID:           in.ForkMessageID,
		ResponseCh:              respCh,
	})
	return l.awaitPublish(respCh)
}

// PublishMessageIntent is the input to PublishMessage.
type PublishMessageIntent struct {
	ThreadID        string
	ProjectATag     string
	Content         string
	AgentPubkey     string
	ReplyTo         string
	NudgeIDs        []string
	SkillIDs        []string
	AskAuthorPubkey string
}

// PublishMessage emits PublishMessage, waiting up to PublishTimeout.
func (l *Layer) PublishMessage(in PublishMessageIntent) (string, bool) {
	respCh := make(chan transport.Response, 1)
	l.handle.Send(transport.Command{
		Kind:            transport.CmdPublishMessage,
		ThreadID:        in.ThreadID,
		ProjectATag:     in.ProjectATag,
		Content:         in.Content,
		AgentPubkey:     in.AgentPubkey,
		ReplyTo:         in.ReplyTo,
		NudgeIDs:        slice.Unique(in.NudgeIDs),
		SkillIDs:        slice.Unique(in.SkillIDs),
		AskAuthorPubkey: in.AskAuthorPubkey,
		ResponseCh:      respCh,
	})
	return l.awaitPublish(respCh)
}

func (l *Layer) awaitPublish(respCh chan transport.Response) (string, bool) {
	select {
	case resp := <-respCh:
		if !resp.OK {
			l.notify.Push(notify.Error, "publish failed: "+errString(resp.Err))
			return "", false
		}
		return resp.EventID, true
	case <-time.After(PublishTimeout):
		l.notify.Push(notify.Error, "publish timed out")
		log.Warn("publish command timed out")
		return "", false
	}
}

// BootProject requests that a project come online.
func (l *Layer) BootProject(projectATag, projectPubkey string) {
	l.handle.Send(transport.Command{
		Kind:          transport.CmdBootProject,
		ProjectATag:   projectATag,
		ProjectPubkey: projectPubkey,
	})
}

// SubscribeProjectMessages requests a subscription to a project's messages.
func (l *Layer) SubscribeProjectMessages(projectATag string) {
	l.handle.Send(transport.Command{Kind: transport.CmdSubscribeProjectMessages, ProjectATag: projectATag})
}

// SubscribeProjectMetadata requests a subscription to a project's metadata.
func (l *Layer) SubscribeProjectMetadata(projectATag string) {
	l.handle.Send(transport.Command{Kind: transport.CmdSubscribeProjectMetadata, ProjectATag: projectATag})
}

// CancelSubscription cancels a previously requested subscription.
func (l *Layer) CancelSubscription(subscriptionID string) {
	l.handle.Send(transport.Command{Kind: transport.CmdCancelSubscription, SubscriptionID: subscriptionID})
}

// UpdateAgentConfig updates a single agent's configuration for a project.
func (l *Layer) UpdateAgentConfig(projectATag, agentPubkey, model string, tools []string, tags map[string]string) {
	l.handle.Send(transport.Command{
		Kind:        transport.CmdUpdateAgentConfig,
		ProjectATag: projectATag,
		AgentPubkey: agentPubkey,
		Model:       model,
		Tools:       tools,
		Tags:        tags,
	})
}

// UpdateGlobalAgentConfig updates an agent's configuration across all
// projects.
func (l *Layer) UpdateGlobalAgentConfig(agentPubkey, model string, tools []string, tags map[string]string) {
	l.handle.Send(transport.Command{
		Kind:        transport.CmdUpdateGlobalAgentConfig,
		AgentPubkey: agentPubkey,
		Model:       model,
		Tools:       tools,
		Tags:        tags,
	})
}

// BunkerResponse answers a pending bunker sign request.
func (l *Layer) BunkerResponse(requestID string, approved bool) {
	l.handle.Send(transport.Command{
		Kind:            transport.CmdBunkerResponse,
		BunkerRequestID: requestID,
		BunkerApproved:  approved,
	})
}

// AddBunkerAutoApproveRule records a standing auto-approve rule.
func (l *Layer) AddBunkerAutoApproveRule(requesterPubkey string, eventKind int) {
	l.handle.Send(transport.Command{
		Kind:            transport.CmdAddBunkerAutoApproveRule,
		RequesterPubkey: requesterPubkey,
		EventKind:       eventKind,
	})
}

// Connect initiates a session; failure here is the one case this layer
// propagates fatally, per the bootstrap exception in the error taxonomy.
func (l *Layer) Connect(keys, userPubkey string, relayURLs []string) error {
	respCh := make(chan transport.Response, 1)
	l.handle.Send(transport.Command{
		Kind:       transport.CmdConnect,
		Keys:       keys,
		UserPubkey: userPubkey,
		RelayURLs:  relayURLs,
		ResponseCh: respCh,
	})
	select {
	case resp := <-respCh:
		if !resp.OK {
			return resp.Err
		}
		return nil
	case <-time.After(ConnectTimeout):
		return errTimeout{"connect"}
	}
}

type errTimeout struct{ op string }

func (e errTimeout) Error() string { return e.op + " timed out" }

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
