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
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tenex-go/tenex/internal/avatarcache"
	"github.com/tenex-go/tenex/internal/command"
	"github.com/tenex-go/tenex/internal/config"
	"github.com/tenex-go/tenex/internal/draft"
	"github.com/tenex-go/tenex/internal/log"
	"github.com/tenex-go/tenex/internal/notify"
	"github.com/tenex-go/tenex/internal/operation"
	"github.com/tenex-go/tenex/internal/repl"
	"github.com/tenex-go/tenex/internal/store"
	"github.com/tenex-go/tenex/internal/stream"
	"github.com/tenex-go/tenex/internal/subscription"
	"github.com/tenex-go/tenex/internal/transport"
	"github.com/tenex-go/tenex/internal/trust"
	"github.com/tenex-go/tenex/internal/tui"
)

// app bundles every shared layer wired up once at startup; both the TUI
// and REPL entrypoints drive the same store, command layer, and
// subscription controller under a single-writer model (each surface
// runs its own event loop goroutine, but only one of the two runs in a
// given process invocation).
type app struct {
	cfg     *config.Config
	handle  transport.Handle
	tracker *operation.Tracker
	store   *store.Store
	cmd     *command.Layer
	sub     *subscription.Controller
	trustQ  *trust.Queues
	trustC  *trust.Cache
	streams *stream.Buffers
	drafts  *draft.Store
	notif   *notify.Queue
	avatars *avatarcache.Cache

	tui  *tui.Model
	repl *repl.Session
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	config.WatchForChanges(nil)

	endpoint, _ := cmd.Flags().GetString("endpoint")

	notif := notify.New()
	tracker := operation.NewTracker(int64(cfg.StaleOpWindow().Seconds()))
	st := store.New(tracker)

	var handle transport.Handle
	if endpoint != "" {
		handle = transport.NewSSEHandle(endpoint, func(transport.Command) {})
	} else {
		handle = transport.NewNullHandle()
		log.Warn("no --endpoint configured; running with an offline transport")
	}

	cmdLayer := command.New(handle, notif)
	subCtl := subscription.New(cmdLayer, st)

	trustQ := trust.New()
	trustC, err := trust.LoadCache(filepath.Join(cfg.DataDir(), "trust_cache", "trust.json"))
	if err != nil {
		return nil, fmt.Errorf("loading trust cache: %w", err)
	}

	streams := stream.New()
	drafts, err := draft.Open(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("opening draft store: %w", err)
	}
	avatars, err := avatarcache.Open(filepath.Join(cfg.DataDir(), "avatars"))
	if err != nil {
		return nil, fmt.Errorf("opening avatar cache: %w", err)
	}

	if cfg.Nsec() != "" {
		if err := cmdLayer.Connect(cfg.Nsec(), cfg.UserPubkey(), cfg.RelayURLs()); err != nil {
			return nil, fmt.Errorf("connecting: %w", err)
		}
	}

	a := &app{
		cfg:     cfg,
		handle:  handle,
		tracker: tracker,
		store:   st,
		cmd:     cmdLayer,
		sub:     subCtl,
		trustQ:  trustQ,
		trustC:  trustC,
		streams: streams,
		drafts:  drafts,
		notif:   notif,
		avatars: avatars,
	}
	a.tui = tui.New(st, cmdLayer, subCtl, tracker, trustQ, trustC, streams, drafts, notif, avatars, handle.Changes(), cfg.UserPubkey())
	a.repl = repl.New(st, cmdLayer, subCtl, trustQ)
	return a, nil
}

func (a *app) Close() {
	if err := log.Sync(); err != nil {
		log.Warn("log sync failed", zap.Error(err))
	}
}
