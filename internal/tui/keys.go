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
package tui

import "charm.land/bubbles/v2/key"

// KeyMap is the global keymap; panel- and modal-local bindings (message
// selection, ask-option cycling) are handled inline since they only apply
// while that surface has focus.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	NextPanel   key.Binding
	PrevPanel   key.Binding
	NewThread   key.Binding
	OpenProject key.Binding
	Reply       key.Binding
	EnterSub    key.Binding
	ExitSub     key.Binding
	Search      key.Binding
}

// DefaultKeyMap binds a quit shortcut that always works (even while a
// queue gates input), help, and panel navigation.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g", "?"),
			key.WithHelp("ctrl+g", "help"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		NewThread: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new thread"),
		),
		OpenProject: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "projects"),
		),
		Reply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send/select"),
		),
		EnterSub: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "open delegation/subthread"),
		),
		ExitSub: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "history search"),
		),
	}
}
