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
// Package nostrevent classifies signed relay events into the tagged
// variants the rest of the client reasons about. Signature verification,
// relay selection, and wire decoding belong to the transport layer and are
// not this package's concern — it consumes already-decoded events.
package nostrevent

// Kind is a nostr event kind as recognized at the transport boundary.
type Kind int

const (
	KindProfile              Kind = 0
	KindNote                 Kind = 1
	KindConversationMetadata Kind = 513
	KindAgentLesson          Kind = 4129
	KindAgentDefinition      Kind = 4199
	KindNudge                Kind = 4201
	KindProjectStatus        Kind = 24010
	KindOperationBeacon      Kind = 24133
	KindReport               Kind = 30023
	KindProjectRevision      Kind = 31933
)

// Tag is a single nostr tag: ["e", "<id>", "<relay-hint>", "<marker>", ...].
type Tag []string

// Name returns the tag's first element, the empty string if absent.
func (t Tag) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Value returns the tag's second element (its primary value).
func (t Tag) Value() string {
	if len(t) < 2 {
		return ""
	}
	return t[1]
}

// Marker returns the optional marker conventionally carried in the fourth
// position of an "e" tag (e.g. "root", "reply").
func (t Tag) Marker() string {
	if len(t) < 4 {
		return ""
	}
	return t[3]
}

// RawEvent is a decoded signed event, handed to Classify by the ingestion
// pipeline. Decoding the wire format and verifying the signature are the
// transport layer's job.
type RawEvent struct {
	ID        string `json:"id"`
	Pubkey    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
	Kind      int    `json:"kind"`
	Tags      []Tag  `json:"tags"`
	Content   string `json:"content"`
}

// TagsByName returns every tag whose name matches.
func (e RawEvent) TagsByName(name string) []Tag {
	var out []Tag
	for _, t := range e.Tags {
		if t.Name() == name {
			out = append(out, t)
		}
	}
	return out
}

// FirstTag returns the first tag whose name matches.
func (e RawEvent) FirstTag(name string) (Tag, bool) {
	for _, t := range e.Tags {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// ETag finds the "e" tag with the given marker ("root" or "reply"). An
// empty marker matches the first "e" tag with no marker at all.
func (e RawEvent) ETag(marker string) (string, bool) {
	for _, t := range e.TagsByName("e") {
		if t.Marker() == marker {
			return t.Value(), true
		}
	}
	return "", false
}

// ATag returns the value of the first "a" tag, identifying a project.
func (e RawEvent) ATag() (string, bool) {
	t, ok := e.FirstTag("a")
	if !ok {
		return "", false
	}
	return t.Value(), true
}

// DTag returns the value of the first "d" tag (parameterized-replaceable
// event identifier, e.g. a project slug or agent-definition slug).
func (e RawEvent) DTag() (string, bool) {
	t, ok := e.FirstTag("d")
	if !ok {
		return "", false
	}
	return t.Value(), true
}

// PTags returns the pubkey values of every "p" tag, in tag order.
func (e RawEvent) PTags() []string {
	var out []string
	for _, t := range e.TagsByName("p") {
		if v := t.Value(); v != "" {
			out = append(out, v)
		}
	}
	return out
}
