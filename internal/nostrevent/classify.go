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
package nostrevent

import "strings"

// Class is the tagged variant a RawEvent is classified into. Every
// downstream layer branches on Class exclusively — it never re-inspects
// kind or tags. Classification is data, not dispatch.
type Class int

const (
	ClassUnknown Class = iota
	ClassProfileUpdate
	ClassThreadRoot
	ClassMessage
	ClassAgentLesson
	ClassAgentDefinition
	ClassNudge
	ClassConversationMetadata
	ClassProjectStatus
	ClassOperationBeacon
	ClassReport
	ClassProject
)

func (c Class) String() string {
	switch c {
	case ClassProfileUpdate:
		return "profile_update"
	case ClassThreadRoot:
		return "thread_root"
	case ClassMessage:
		return "message"
	case ClassAgentLesson:
		return "agent_lesson"
	case ClassAgentDefinition:
		return "agent_definition"
	case ClassNudge:
		return "nudge"
	case ClassConversationMetadata:
		return "conversation_metadata"
	case ClassProjectStatus:
		return "project_status"
	case ClassOperationBeacon:
		return "operation_beacon"
	case ClassReport:
		return "report"
	case ClassProject:
		return "project"
	default:
		return "unknown"
	}
}

// Classified is the result of classifying a RawEvent: the class tag plus
// whatever fields that class needs pulled out of the raw tag set. Fields
// irrelevant to a given Class are left zero.
type Classified struct {
	Class Class
	Event RawEvent

	// ClassThreadRoot / ClassMessage
	ThreadID string // e-tag marked "root", or the event's own id for a root
	ReplyTo  string // e-tag marked "reply", defaulting to ThreadID
	Ask      *AskEvent

	// ClassThreadRoot only: the parent thread this one was delegated
	// from, carried as an e-tag marked "delegation" (set by
	// PublishThreadIntent.ReferenceConversationID on the publishing
	// side). Empty for a thread that wasn't opened as a delegation.
	DelegationParentID string

	// ClassConversationMetadata
	MetadataThreadID string

	// ClassProjectStatus / ClassProject / ClassReport
	ProjectATag string

	// ClassProject
	ProjectSlug string

	// ClassAgentDefinition
	AgentSlug string

	// ClassOperationBeacon
	OperationThreadID string // optional
	AgentPubkeys      []string

	// ClassReport
	Hashtags []string
}

// Classify maps a decoded event to its EventClass. Unknown or future kinds
// classify as ClassUnknown and are ignored without error further down the
// pipeline.
func Classify(e RawEvent) Classified {
	switch Kind(e.Kind) {
	case KindProfile:
		return Classified{Class: ClassProfileUpdate, Event: e}

	case KindNote:
		return classifyNote(e)

	case KindAgentLesson:
		return Classified{Class: ClassAgentLesson, Event: e}

	case KindAgentDefinition:
		slug, _ := e.DTag()
		return Classified{Class: ClassAgentDefinition, Event: e, AgentSlug: slug}

	case KindNudge:
		return Classified{Class: ClassNudge, Event: e}

	case KindConversationMetadata:
		threadID, _ := e.ETag("")
		if threadID == "" {
			threadID, _ = e.ETag("root")
		}
		return Classified{Class: ClassConversationMetadata, Event: e, MetadataThreadID: threadID}

	case KindProjectStatus:
		atag, _ := e.ATag()
		return Classified{Class: ClassProjectStatus, Event: e, ProjectATag: atag}

	case KindOperationBeacon:
		threadID, _ := e.ETag("")
		if threadID == "" {
			threadID, _ = e.ETag("root")
		}
		return Classified{
			Class:             ClassOperationBeacon,
			Event:             e,
			OperationThreadID: threadID,
			AgentPubkeys:      e.PTags(),
		}

	case KindReport:
		atag, _ := e.ATag()
		return Classified{Class: ClassReport, Event: e, ProjectATag: atag, Hashtags: hashtags(e)}

	case KindProjectRevision:
		atag, _ := e.ATag()
		slug, _ := e.DTag()
		return Classified{Class: ClassProject, Event: e, ProjectATag: atag, ProjectSlug: slug}

	default:
		return Classified{Class: ClassUnknown, Event: e}
	}
}

// classifyNote applies the role-within-kind-1 rule: a kind-1 event with no
// reply-indicating e-tag is a ThreadRoot; otherwise it is a Message whose
// threadId is the "root" e-tag and whose replyTo is the "reply" e-tag,
// defaulting to threadId when no explicit reply marker is present. replyTo
// is always derived the same way regardless of arrival order, so repeated
// classification of the same event is idempotent.
func classifyNote(e RawEvent) Classified {
	root, hasRoot := e.ETag("root")
	reply, hasReply := e.ETag("reply")
	ask, _ := parseAskEvent(e)

	if !hasRoot && !hasReply {
		// No e-tags at all, or e-tags with no recognized marker: a bare
		// single "e" tag with no marker is treated as a direct reply to
		// that message within its own thread (legacy convention), not as
		// evidence of a root.
		if bare, ok := e.ETag(""); ok {
			return Classified{
				Class:    ClassMessage,
				Event:    e,
				ThreadID: bare,
				ReplyTo:  bare,
				Ask:      ask,
			}
		}
		delegationParent, _ := e.ETag("delegation")
		return Classified{Class: ClassThreadRoot, Event: e, ThreadID: e.ID, Ask: ask, DelegationParentID: delegationParent}
	}

	threadID := root
	if threadID == "" {
		threadID = reply
	}
	replyTo := reply
	if replyTo == "" {
		replyTo = threadID
	}
	return Classified{
		Class:    ClassMessage,
		Event:    e,
		ThreadID: threadID,
		ReplyTo:  replyTo,
		Ask:      ask,
	}
}

func hashtags(e RawEvent) []string {
	var out []string
	for _, t := range e.TagsByName("t") {
		if v := strings.TrimSpace(t.Value()); v != "" {
			out = append(out, v)
		}
	}
	return out
}
