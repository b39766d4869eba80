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
// Package trust holds the two approval FIFOs that gate the input surface:
// backend-trust prompts and remote-signer (bunker) requests.
package trust

// BackendPrompt asks the operator whether a previously-unseen backend
// pubkey may perform a trust-requiring action.
type BackendPrompt struct {
	RequestID string
	Pubkey    string
}

// BunkerDecision is the four-way outcome a bunker sign request resolves
// to — distinct from a plain approve/deny so an auto-approve rule can be
// recorded without a second round trip.
type BunkerDecision int

const (
	BunkerApproveOnce BunkerDecision = iota
	BunkerApproveAndRemember
	BunkerReject
	BunkerCancel
)

// BunkerRequest asks the operator to authorize (or reject) a remote
// signature over an event of the given kind.
type BunkerRequest struct {
	RequestID     string
	RequesterPub  string
	EventKind     int
	EventBodyJSON string
}

// Queues holds both FIFOs. Like Store, it carries no lock: it is owned by
// the event loop goroutine.
type Queues struct {
	backend []BackendPrompt
	bunker  []BunkerRequest
}

// New constructs empty approval queues.
func New() *Queues {
	return &Queues{}
}

// EnqueueBackendPrompt appends a trust prompt.
func (q *Queues) EnqueueBackendPrompt(p BackendPrompt) {
	q.backend = append(q.backend, p)
}

// EnqueueBunkerRequest appends a sign request.
func (q *Queues) EnqueueBunkerRequest(r BunkerRequest) {
	q.bunker = append(q.bunker, r)
}

// HeadBackendPrompt returns the oldest pending backend prompt.
func (q *Queues) HeadBackendPrompt() (BackendPrompt, bool) {
	if len(q.backend) == 0 {
		return BackendPrompt{}, false
	}
	return q.backend[0], true
}

// HeadBunkerRequest returns the oldest pending bunker request.
func (q *Queues) HeadBunkerRequest() (BunkerRequest, bool) {
	if len(q.bunker) == 0 {
		return BunkerRequest{}, false
	}
	return q.bunker[0], true
}

// ResolveBackendPrompt dequeues the head backend prompt. Callers persist
// the approve/block decision to the trust cache themselves; this type only
// manages queue order.
func (q *Queues) ResolveBackendPrompt() {
	if len(q.backend) == 0 {
		return
	}
	q.backend = q.backend[1:]
}

// ResolveBunkerRequest dequeues the head bunker request.
func (q *Queues) ResolveBunkerRequest() {
	if len(q.bunker) == 0 {
		return
	}
	q.bunker = q.bunker[1:]
}

// IsGating reports whether either queue head is non-empty — while true,
// ordinary key handling is inhibited except for a global quit shortcut.
func (q *Queues) IsGating() bool {
	return len(q.backend) > 0 || len(q.bunker) > 0
}
