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
// Package ask drives the answer state machine for an inline questionnaire
// embedded in a message (nostrevent.AskEvent).
package ask

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/tenex-go/tenex/internal/nostrevent"
)

// Mode distinguishes whether the engine is cycling through preset choices
// or accepting free-form text for the current question.
type Mode int

const (
	ModeSelection Mode = iota
	ModeCustomInput
)

// Answer is the recorded response to one question.
type Answer struct {
	QuestionIndex int
	Custom        string   // set when the user typed their own answer
	Selected      []string // set when the user picked from the option list
}

// State drives the answer flow for one AskEvent. It holds no reference to
// the store or transport; the command layer reads FormatResponse() and
// IsComplete() to build the outbound reply.
type State struct {
	questions []nostrevent.Question
	answers   []Answer

	currentQuestionIndex int
	selectedOptionIndex  int          // index into choices()+1, where the extra slot is "type your own"
	multiSelectState     map[int]bool // choice index -> selected, for the current MultiSelect question

	customInput  string
	customCursor int
	mode         Mode
}

// New constructs a State for the given questionnaire. Questions are
// answered in order; entering with zero questions is valid and IsComplete
// immediately.
func New(ae *nostrevent.AskEvent) *State {
	return &State{
		questions:        ae.Questions,
		multiSelectState: make(map[int]bool),
	}
}

func (s *State) currentChoices() []string {
	if s.currentQuestionIndex >= len(s.questions) {
		return nil
	}
	return s.questions[s.currentQuestionIndex].Choices()
}

// extraSlotIndex is the index one past the last real choice: "type your
// own answer".
func (s *State) extraSlotIndex() int {
	return len(s.currentChoices())
}

// NextOption cycles the selection cursor forward over (N+1) items.
func (s *State) NextOption() {
	total := s.extraSlotIndex() + 1
	s.selectedOptionIndex = (s.selectedOptionIndex + 1) % total
}

// PrevOption cycles the selection cursor backward.
func (s *State) PrevOption() {
	total := s.extraSlotIndex() + 1
	s.selectedOptionIndex = (s.selectedOptionIndex - 1 + total) % total
}

// ToggleMultiSelect flips the current option's selected-ness, valid only
// when the current question is a MultiSelect.
func (s *State) ToggleMultiSelect() {
	if s.currentQuestionIndex >= len(s.questions) {
		return
	}
	if s.questions[s.currentQuestionIndex].Kind != nostrevent.QuestionMultiSelect {
		return
	}
	if s.selectedOptionIndex >= s.extraSlotIndex() {
		return // the extra slot isn't toggleable
	}
	s.multiSelectState[s.selectedOptionIndex] = !s.multiSelectState[s.selectedOptionIndex]
}

// SelectCurrentOption records the current question's answer (or, for a
// MultiSelect, all toggled options) and advances, unless the cursor is on
// the extra "type your own answer" slot, in which case it switches to
// CustomInput mode instead.
func (s *State) SelectCurrentOption() {
	if s.mode != ModeSelection || s.currentQuestionIndex >= len(s.questions) {
		return
	}
	if s.selectedOptionIndex == s.extraSlotIndex() {
		s.mode = ModeCustomInput
		s.customInput = ""
		s.customCursor = 0
		return
	}

	q := s.questions[s.currentQuestionIndex]
	var selected []string
	if q.Kind == nostrevent.QuestionMultiSelect {
		choices := q.Choices()
		for i, chosen := range choices {
			if s.multiSelectState[i] {
				selected = append(selected, chosen)
			}
		}
	} else {
		choices := q.Choices()
		if s.selectedOptionIndex < len(choices) {
			selected = []string{choices[s.selectedOptionIndex]}
		}
	}
	s.recordAnswer(Answer{QuestionIndex: s.currentQuestionIndex, Selected: selected})
}

// SubmitCustomAnswer records free-text input as the answer for the
// current question and returns to Selection mode. An empty input is a
// no-op: the caller keeps waiting for more keystrokes or Esc.
func (s *State) SubmitCustomAnswer() {
	if s.mode != ModeCustomInput {
		return
	}
	trimmed := strings.TrimSpace(s.customInput)
	if trimmed == "" {
		return
	}
	s.recordAnswer(Answer{QuestionIndex: s.currentQuestionIndex, Custom: trimmed})
	s.mode = ModeSelection
}

// CancelCustomMode returns to Selection without recording anything.
func (s *State) CancelCustomMode() {
	if s.mode != ModeCustomInput {
		return
	}
	s.mode = ModeSelection
	s.customInput = ""
	s.customCursor = 0
}

// TypeCustomInput appends text to the free-form input buffer.
func (s *State) TypeCustomInput(text string) {
	if s.mode != ModeCustomInput {
		return
	}
	s.customInput += text
	s.customCursor = uniseg.GraphemeClusterCount(s.customInput)
}

// BackspaceCustomInput removes the last grapheme cluster from the
// free-form input buffer, so a combining accent or a multi-rune emoji is
// deleted as one unit rather than leaving a mangled trailing byte.
func (s *State) BackspaceCustomInput() {
	if s.mode != ModeCustomInput || s.customInput == "" {
		return
	}
	gr := uniseg.NewGraphemes(s.customInput)
	var clusters []string
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return
	}
	s.customInput = strings.Join(clusters[:len(clusters)-1], "")
	s.customCursor = len(clusters) - 1
}

func (s *State) recordAnswer(a Answer) {
	replaced := false
	for i, existing := range s.answers {
		if existing.QuestionIndex == a.QuestionIndex {
			s.answers[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		s.answers = append(s.answers, a)
	}
	s.advanceQuestion()
}

func (s *State) advanceQuestion() {
	if s.currentQuestionIndex < len(s.questions) {
		s.currentQuestionIndex++
	}
	s.selectedOptionIndex = 0
	s.multiSelectState = make(map[int]bool)
}

// SkipQuestion advances without recording an answer.
func (s *State) SkipQuestion() {
	s.advanceQuestion()
}

// PrevQuestion moves backward while preserving already-recorded answers.
func (s *State) PrevQuestion() {
	if s.currentQuestionIndex > 0 {
		s.currentQuestionIndex--
	}
	s.selectedOptionIndex = 0
	s.multiSelectState = make(map[int]bool)
	s.mode = ModeSelection
}

// IsComplete reports whether every question has a recorded answer.
func (s *State) IsComplete() bool {
	return len(s.answers) == len(s.questions)
}

// Mode returns the current interaction mode.
func (s *State) Mode() Mode { return s.mode }

// CurrentQuestionIndex returns the index of the question being answered.
func (s *State) CurrentQuestionIndex() int { return s.currentQuestionIndex }

// CustomInput returns the in-progress free-form text.
func (s *State) CustomInput() string { return s.customInput }

// FormatResponse produces a deterministic textual rendering of the
// recorded answers, in question order, suitable as a reply body.
func (s *State) FormatResponse() string {
	var b strings.Builder
	byIndex := make(map[int]Answer, len(s.answers))
	for _, a := range s.answers {
		byIndex[a.QuestionIndex] = a
	}
	for i, q := range s.questions {
		a, ok := byIndex[i]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: ", q.Question)
		switch {
		case a.Custom != "":
			b.WriteString(a.Custom)
		case len(a.Selected) > 0:
			b.WriteString(strings.Join(a.Selected, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
