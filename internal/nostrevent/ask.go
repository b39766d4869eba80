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

import "encoding/json"

// QuestionKind distinguishes the two question shapes an ask event carries.
type QuestionKind string

const (
	QuestionSingleSelect QuestionKind = "single_select"
	QuestionMultiSelect  QuestionKind = "multi_select"
)

// Question is one question within an AskEvent's questionnaire.
type Question struct {
	Kind        QuestionKind
	Title       string
	Question    string
	Suggestions []string // single-select
	Options     []string // multi-select
}

// Choices returns the selectable strings for this question regardless of
// its kind, so callers that only need the list don't have to branch.
func (q Question) Choices() []string {
	if q.Kind == QuestionMultiSelect {
		return q.Options
	}
	return q.Suggestions
}

// AskEvent is a structured questionnaire embedded in a message.
type AskEvent struct {
	Title     string
	Context   string
	Questions []Question
}

// askWireFormat is the structured-tag / embedded-JSON shape an ask payload
// takes in content: a "tenex-ask" tag carrying a JSON blob.
type askWireFormat struct {
	Title     string `json:"title"`
	Context   string `json:"context"`
	Questions []struct {
		Kind        string   `json:"kind"`
		Title       string   `json:"title"`
		Question    string   `json:"question"`
		Suggestions []string `json:"suggestions"`
		Options     []string `json:"options"`
	} `json:"questions"`
}

// parseAskEvent looks for a "tenex-ask" tag carrying a JSON-encoded
// questionnaire and decodes it. It returns nil, false if the event carries
// no recognizable ask payload; malformed JSON is treated the same as
// "no ask" rather than propagated as an error.
func parseAskEvent(e RawEvent) (*AskEvent, bool) {
	tag, ok := e.FirstTag("tenex-ask")
	if !ok {
		return nil, false
	}
	raw := tag.Value()
	if raw == "" {
		return nil, false
	}
	var wire askWireFormat
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, false
	}
	ask := &AskEvent{Title: wire.Title, Context: wire.Context}
	for _, q := range wire.Questions {
		kind := QuestionKind(q.Kind)
		if kind != QuestionSingleSelect && kind != QuestionMultiSelect {
			continue
		}
		ask.Questions = append(ask.Questions, Question{
			Kind:        kind,
			Title:       q.Title,
			Question:    q.Question,
			Suggestions: q.Suggestions,
			Options:     q.Options,
		})
	}
	if len(ask.Questions) == 0 {
		return nil, false
	}
	return ask, true
}
