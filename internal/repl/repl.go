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
// Package repl implements the line-oriented CLI surface: a thin dispatch
// loop over the same command/store/subscription layers the full-screen TUI
// drives, for users who prefer a plain terminal to the bubbletea surface.
package repl

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"

	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/subscription"
	"github.com/tenex-go/tenex/internal/trust"
)

// HelpText is the text printed by /help, formatted with heredoc: written
// as an indented literal and dedented at init time rather than built
// line by line.
var HelpText = heredoc.Doc(`
	/project [name|idx]    list or switch project
	/agent   [name|idx]    list or switch agent
	/new     [agent@proj]  start a new thread context
	/open | /conversations select an existing thread
	/active  [query]       jump to an active conversation
	/config  [--model --make-pm --global agent]
	/model   [model]
	/stats                 open stats panel
	/boot    <project>     request that a project come online
	/bunker  ...           manage bunker connections
	/status                show current selection state
	/help                  summary
	/quit                  exit
`)

// Session holds the REPL's current selection state, separate from the
// store it reads from: which project and agent are selected, and the
// thread the next plain-text line publishes into.
type Session struct {
	store  *store.Store
	cmd    *command.Layer
	sub    *subscription.Controller
	trustQ *trust.Queues
	Quit   bool

	CurrentProjectATag string
	CurrentAgentPubkey string
	CurrentThreadID    string
}

// New constructs a Session bound to the shared store, command layer,
// subscription controller, and trust/bunker approval queues.
func New(st *store.Store, cmd *command.Layer, sub *subscription.Controller, trustQ *trust.Queues) *Session {
	return &Session{store: st, cmd: cmd, sub: sub, trustQ: trustQ}
}

// Dispatch interprets one line of input: a slash command, or plain text
// published as a message in the current thread. It returns the text to
// print to the user, if any.
func (s *Session) Dispatch(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if !strings.HasPrefix(line, "/") {
		return s.publishPlainText(line)
	}

	fields := strings.Fields(line)
	cmdName, args := fields[0], fields[1:]
	switch cmdName {
	case "/project":
		return s.cmdProject(args)
	case "/agent":
		return s.cmdAgent(args)
	case "/new":
		return s.cmdNew(args)
	case "/open", "/conversations":
		return s.cmdOpen(args)
	case "/active":
		return s.cmdActive(args)
	case "/config":
		return s.cmdConfig(args)
	case "/model":
		return s.cmdModel(args)
	case "/stats":
		return s.cmdStats()
	case "/boot":
		return s.cmdBoot(args)
	case "/bunker":
		return s.cmdBunker(args)
	case "/status":
		return s.cmdStatus()
	case "/help":
		return HelpText
	case "/quit":
		s.Quit = true
		return "bye"
	default:
		return fmt.Sprintf("no such command: %s (try /help)", cmdName)
	}
}

func (s *Session) publishPlainText(text string) string {
	if s.CurrentProjectATag == "" {
		return "select a project first"
	}
	if s.CurrentThreadID == "" {
		id, ok := s.cmd.PublishThread(command.PublishThreadIntent{
			ProjectATag: s.CurrentProjectATag,
			Content:     text,
			AgentPubkey: s.CurrentAgentPubkey,
		})
		if !ok {
			return "publish failed"
		}
		s.CurrentThreadID = id
		return ""
	}
	_, ok := s.cmd.PublishMessage(command.PublishMessageIntent{
		ThreadID:    s.CurrentThreadID,
		ProjectATag: s.CurrentProjectATag,
		Content:     text,
		AgentPubkey: s.CurrentAgentPubkey,
	})
	if !ok {
		return "publish failed"
	}
	return ""
}

func (s *Session) cmdProject(args []string) string {
	projects := s.store.Projects()
	if len(args) == 0 {
		var b strings.Builder
		for i, p := range projects {
			fmt.Fprintf(&b, "%d) %s\n", i, p.Title)
		}
		return strings.TrimRight(b.String(), "\n")
	}
	p, ok := selectProject(projects, args[0])
	if !ok {
		return "no such project: " + args[0]
	}
	if s.sub != nil {
		s.sub.OnCurrentProjectChanged(p.ATag, time.Now())
	}
	s.CurrentProjectATag = p.ATag
	s.CurrentAgentPubkey = ""
	s.CurrentThreadID = ""
	return "switched to " + p.Title
}

func (s *Session) cmdAgent(args []string) string {
	if s.CurrentProjectATag == "" {
		return "select a project first"
	}
	status, ok := s.store.ProjectStatus(s.CurrentProjectATag)
	if !ok || len(status.Agents) == 0 {
		return "no agents online for this project"
	}
	if len(args) == 0 {
		var b strings.Builder
		for i, a := range status.Agents {
			fmt.Fprintf(&b, "%d) %s\n", i, a.Name)
		}
		return strings.TrimRight(b.String(), "\n")
	}
	for i, a := range status.Agents {
		if a.Name == args[0] || strconv.Itoa(i) == args[0] {
			s.CurrentAgentPubkey = a.Pubkey
			return "switched to " + a.Name
		}
	}
	return "no such agent: " + args[0]
}

func (s *Session) cmdNew(args []string) string {
	if s.CurrentProjectATag == "" {
		return "select a project first"
	}
	s.CurrentThreadID = ""
	return "started a new thread context"
}

func (s *Session) cmdOpen(args []string) string {
	if s.CurrentProjectATag == "" {
		return "select a project first"
	}
	threads := s.store.ThreadsByProject(s.CurrentProjectATag)
	if len(args) == 0 {
		var b strings.Builder
		for i, th := range threads {
			fmt.Fprintf(&b, "%d) %s\n", i, th.Title)
		}
		return strings.TrimRight(b.String(), "\n")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= len(threads) {
		return "no such thread: " + args[0]
	}
	s.CurrentThreadID = threads[idx].ID
	return "opened " + threads[idx].Title
}

func (s *Session) cmdActive(args []string) string {
	ops := s.store.ActiveOperations()
	if len(ops) == 0 {
		return "no active operations"
	}
	var b strings.Builder
	for _, op := range ops {
		fmt.Fprintf(&b, "%s (%d agents)\n", op.ThreadID, len(op.AgentPubkeys))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Session) cmdStats() string {
	stats := s.store.Stats()
	return fmt.Sprintf("projects=%d threads=%d messages=%d profiles=%d",
		stats.Projects, stats.Threads, stats.Messages, stats.Profiles)
}

func (s *Session) cmdBoot(args []string) string {
	if len(args) == 0 {
		return "usage: /boot <project>"
	}
	projects := s.store.Projects()
	p, ok := selectProject(projects, args[0])
	if !ok {
		return "no such project: " + args[0]
	}
	s.cmd.BootProject(p.ATag, p.AuthorPub)
	return "boot requested for " + p.Title
}

func (s *Session) cmdStatus() string {
	if s.CurrentProjectATag == "" {
		return "no project selected"
	}
	out := "project: " + s.CurrentProjectATag
	if s.CurrentAgentPubkey != "" {
		out += ", agent: " + s.CurrentAgentPubkey
	}
	if s.CurrentThreadID != "" {
		out += ", thread: " + s.CurrentThreadID
	}
	return out
}

// cmdModel shows or changes the current agent's model. With no args, it
// reports the model the last status snapshot recorded; with one arg, it
// requests the change and lets the backend's own status broadcast confirm
// it back into the store.
func (s *Session) cmdModel(args []string) string {
	agent, ok := s.currentProjectAgent()
	if !ok {
		return "select a project and agent first"
	}
	if len(args) == 0 {
		if agent.Model == "" {
			return "no model reported for " + agent.Name
		}
		return agent.Name + ": " + agent.Model
	}
	s.cmd.UpdateAgentConfig(s.CurrentProjectATag, s.CurrentAgentPubkey, args[0], agent.Tools, nil)
	return "model change requested: " + args[0]
}

// cmdConfig updates the current agent's model or PM role; the agent's tool
// list is sent back unchanged.
// Recognized flags: --model <name>, --make-pm, --global (apply across
// every project the agent is attached to, via UpdateGlobalAgentConfig
// instead of the single-project form).
func (s *Session) cmdConfig(args []string) string {
	agent, ok := s.currentProjectAgent()
	if !ok {
		return "select a project and agent first"
	}
	model := agent.Model
	tags := map[string]string{}
	global := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--model":
			i++
			if i >= len(args) {
				return "usage: /config --model <name>"
			}
			model = args[i]
		case "--make-pm":
			tags["role"] = "pm"
		case "--global":
			global = true
		default:
			return "unrecognized flag: " + args[i]
		}
	}
	if global {
		s.cmd.UpdateGlobalAgentConfig(s.CurrentAgentPubkey, model, agent.Tools, tags)
		return "global config update requested for " + agent.Name
	}
	s.cmd.UpdateAgentConfig(s.CurrentProjectATag, s.CurrentAgentPubkey, model, agent.Tools, tags)
	return "config update requested for " + agent.Name
}

func (s *Session) currentProjectAgent() (store.ProjectAgent, bool) {
	if s.CurrentProjectATag == "" || s.CurrentAgentPubkey == "" {
		return store.ProjectAgent{}, false
	}
	status, ok := s.store.ProjectStatus(s.CurrentProjectATag)
	if !ok {
		return store.ProjectAgent{}, false
	}
	for _, a := range status.Agents {
		if a.Pubkey == s.CurrentAgentPubkey {
			return a, true
		}
	}
	return store.ProjectAgent{}, false
}

// cmdBunker inspects and resolves the head of the bunker sign-request
// queue. With no args it reports the pending request, if any;
// "approve"/"remember"/"reject"/"cancel" resolve it the same way the
// TUI's trust modal does.
func (s *Session) cmdBunker(args []string) string {
	req, ok := s.trustQ.HeadBunkerRequest()
	if !ok {
		return "no pending bunker requests"
	}
	if len(args) == 0 {
		return fmt.Sprintf("pending: requester=%s kind=%d (approve|remember|reject|cancel)", req.RequesterPub, req.EventKind)
	}
	switch args[0] {
	case "approve":
		s.cmd.BunkerResponse(req.RequestID, true)
		s.trustQ.ResolveBunkerRequest()
		return "approved"
	case "remember":
		s.cmd.BunkerResponse(req.RequestID, true)
		s.cmd.AddBunkerAutoApproveRule(req.RequesterPub, req.EventKind)
		s.trustQ.ResolveBunkerRequest()
		return "approved and remembered"
	case "reject":
		s.cmd.BunkerResponse(req.RequestID, false)
		s.trustQ.ResolveBunkerRequest()
		return "rejected"
	case "cancel":
		s.trustQ.ResolveBunkerRequest()
		return "cancelled, left unanswered"
	default:
		return "usage: /bunker [approve|remember|reject|cancel]"
	}
}

func selectProject(projects []store.Project, key string) (store.Project, bool) {
	if idx, err := strconv.Atoi(key); err == nil {
		if idx >= 0 && idx < len(projects) {
			return projects[idx], true
		}
		return store.Project{}, false
	}
	for _, p := range projects {
		if p.Title == key || p.Slug == key {
			return p, true
		}
	}
	return store.Project{}, false
}
