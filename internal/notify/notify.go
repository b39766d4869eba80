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
// Package notify implements the small user-visible notification queue
// (info/warning/error) that the Command layer and ingestion boundary
// surface failures through, instead of returning errors to a caller that
// would crash the UI.
package notify

// Level is a notification's severity.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notification is one user-visible message. An Error notification
// persists until dismissed or superseded; Info and Warning are expected to
// be transient (the UI layer decides the exact timeout).
type Notification struct {
	ID      int
	Level   Level
	Message string
}

// Queue holds pending notifications in arrival order. It carries no lock:
// owned by the event loop goroutine like the rest of the reactive state.
type Queue struct {
	nextID int
	items  []Notification
}

// New constructs an empty notification queue.
func New() *Queue {
	return &Queue{}
}

// Push appends a notification and returns its assigned id.
func (q *Queue) Push(level Level, message string) int {
	q.nextID++
	q.items = append(q.items, Notification{ID: q.nextID, Level: level, Message: message})
	return q.nextID
}

// Dismiss removes a notification by id.
func (q *Queue) Dismiss(id int) {
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// All returns every pending notification in arrival order.
func (q *Queue) All() []Notification {
	return append([]Notification(nil), q.items...)
}

// SupersedeErrors removes every pending Error notification and pushes a
// new one in their place — "persists until dismissed or superseded".
func (q *Queue) SupersedeErrors(message string) int {
	kept := q.items[:0:0]
	for _, n := range q.items {
		if n.Level != Error {
			kept = append(kept, n)
		}
	}
	q.items = kept
	return q.Push(Error, message)
}
