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
// Package styles centralizes the lipgloss styles the TUI's panels and
// modals share, so a palette change is a one-file edit.
package styles

import "charm.land/lipgloss/v2"

var (
	Border        = lipgloss.Color("8")
	BorderFocus   = lipgloss.Color("13")
	Subtle        = lipgloss.Color("245")
	Accent        = lipgloss.Color("12")
	Warning       = lipgloss.Color("11")
	Danger        = lipgloss.Color("9")
	Success       = lipgloss.Color("10")
	ReasoningText = lipgloss.Color("244")
)

// Panel renders a bordered panel, highlighted when focused.
func Panel(focused bool) lipgloss.Style {
	c := Border
	if focused {
		c = BorderFocus
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
}

// Title renders a panel or modal title.
func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Accent)
}

// SubtleText renders dimmed, secondary text (timestamps, hints).
func SubtleText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Subtle)
}

// UnreadBadge marks a tab or thread with unread activity.
func UnreadBadge() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Warning).Bold(true)
}

// ErrorText renders error-level notifications.
func ErrorText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Danger).Bold(true)
}

// Reasoning renders the italic, dimmed reasoning-stream text.
func Reasoning() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ReasoningText).Italic(true)
}

// Cursor renders the trailing glyph on an in-progress streaming buffer.
func Cursor() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Accent).Bold(true)
}

// Modal renders a centered dialog border (ask questionnaire, trust/bunker
// prompts).
func Modal() lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(BorderFocus).Padding(1, 2)
}

// SelectedItem renders the list cursor row.
func SelectedItem() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Accent).Bold(true)
}
