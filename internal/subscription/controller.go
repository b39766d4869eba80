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
// Package subscription shapes the live relay subscription set around the
// current project, and performs startup auto-selection. Every method is
// meant to run from the same event-loop goroutine as the rest of the
// reactive state; Tick is driven by the periodic tick in that event loop.
package subscription

import (
	"time"

	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/store"
)

// LingerWindow is how long a just-superseded project's subscriptions are
// kept alive to let late-arriving events settle before cancellation.
const LingerWindow = 2 * time.Second

type lingeringSub struct {
	projectATag string
	expiresAt   time.Time
}

// Controller maintains the current project selection and the set of
// subscriptions lingering after a project switch.
type Controller struct {
	cmd   *command.Layer
	store *store.Store

	currentProjectATag string
	lingering          []lingeringSub
}

// New constructs a Controller bound to the command layer it issues
// Subscribe/Cancel commands through and the store it reads project state
// from for startup auto-selection.
func New(cmd *command.Layer, st *store.Store) *Controller {
	return &Controller{cmd: cmd, store: st}
}

// OnCurrentProjectChanged subscribes to the new project's messages and
// metadata, and schedules the previous project's subscriptions to be
// canceled after LingerWindow. A subscribe request is fire-and-forget —
// failure is reported by the transport as a later connectivity change, not
// here, and never corrupts the store.
func (c *Controller) OnCurrentProjectChanged(newATag string, now time.Time) {
	c.cmd.SubscribeProjectMessages(newATag)
	c.cmd.SubscribeProjectMetadata(newATag)

	if c.currentProjectATag != "" && c.currentProjectATag != newATag {
		c.lingering = append(c.lingering, lingeringSub{
			projectATag: c.currentProjectATag,
			expiresAt:   now.Add(LingerWindow),
		})
	}
	c.currentProjectATag = newATag
}

// Tick cancels any lingering subscription whose window has expired. It is
// the only place cancellation happens, so at most one project's
// subscriptions are ever live once lingering windows have drained.
func (c *Controller) Tick(now time.Time) {
	kept := c.lingering[:0:0]
	for _, l := range c.lingering {
		if now.Before(l.expiresAt) {
			kept = append(kept, l)
			continue
		}
		c.cmd.CancelSubscription(l.projectATag)
	}
	c.lingering = kept
}

// PendingLingerCount reports how many subscriptions are still within their
// linger window — exposed for the debug-stats supplemented feature.
func (c *Controller) PendingLingerCount() int {
	return len(c.lingering)
}

// StartupSelection is the result of auto-selecting a project and agent on
// startup.
type StartupSelection struct {
	ProjectATag string
	AgentPubkey string
}

// OnStartup auto-selects the first online, non-deleted project, then an
// agent for it (preferring the PM agent), when no current project has
// already been chosen. It reports ok=false when no online project exists
// yet — the caller renders "waiting for sync" in that case.
func (c *Controller) OnStartup() (StartupSelection, bool) {
	if c.currentProjectATag != "" {
		return StartupSelection{}, false
	}
	for _, p := range c.store.Projects() {
		if !c.store.IsProjectOnline(p.ATag) {
			continue
		}
		sel := StartupSelection{ProjectATag: p.ATag}
		status, ok := c.store.ProjectStatus(p.ATag)
		if ok {
			sel.AgentPubkey = pickAgent(status.Agents)
		}
		return sel, true
	}
	return StartupSelection{}, false
}

func pickAgent(agents []store.ProjectAgent) string {
	if len(agents) == 0 {
		return ""
	}
	for _, a := range agents {
		if a.IsPm {
			return a.Pubkey
		}
	}
	return agents[0].Pubkey
}
