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
package trust

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// AutoApproveRule auto-approves future bunker requests from a given
// requester for a given event kind, without re-prompting.
type AutoApproveRule struct {
	RequesterPubkey string `json:"requester_pubkey"`
	EventKind       int    `json:"event_kind"`
}

// cacheFile is the on-disk shape of trust_cache/, one simple JSON bundle
// guarded by a per-file mutex.
type cacheFile struct {
	ApprovedBackends       []string          `json:"approved_backends"`
	BlockedBackends        []string          `json:"blocked_backends"`
	BunkerAutoApproveRules []AutoApproveRule `json:"bunker_auto_approve_rules"`
}

// Cache persists trust decisions to a single JSON file.
type Cache struct {
	mu   sync.Mutex
	path string
	data cacheFile
}

// LoadCache reads (or initializes) the trust cache at path.
func LoadCache(path string) (*Cache, error) {
	c := &Cache{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &c.data); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o600)
}

// ApproveBackend records pubkey as trusted and persists the change.
func (c *Cache) ApproveBackend(pubkey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.ApprovedBackends = appendUnique(c.data.ApprovedBackends, pubkey)
	return c.save()
}

// BlockBackend records pubkey as blocked and persists the change.
func (c *Cache) BlockBackend(pubkey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.BlockedBackends = appendUnique(c.data.BlockedBackends, pubkey)
	return c.save()
}

// IsApproved reports whether pubkey has a prior approval on record.
func (c *Cache) IsApproved(pubkey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return contains(c.data.ApprovedBackends, pubkey)
}

// IsBlocked reports whether pubkey has a prior block on record.
func (c *Cache) IsBlocked(pubkey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return contains(c.data.BlockedBackends, pubkey)
}

// AddBunkerAutoApproveRule persists a (requester, kind) rule.
func (c *Cache) AddBunkerAutoApproveRule(rule AutoApproveRule) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.data.BunkerAutoApproveRules {
		if r == rule {
			return nil
		}
	}
	c.data.BunkerAutoApproveRules = append(c.data.BunkerAutoApproveRules, rule)
	return c.save()
}

// MatchesAutoApproveRule reports whether a bunker request matches a
// previously recorded auto-approve rule.
func (c *Cache) MatchesAutoApproveRule(requesterPubkey string, eventKind int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.data.BunkerAutoApproveRules {
		if r.RequesterPubkey == requesterPubkey && r.EventKind == eventKind {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	if contains(list, v) {
		return list
	}
	return append(list, v)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
