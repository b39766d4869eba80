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
// Package avatarcache indexes content-addressed avatar blobs keyed by the
// first 8 hex characters of an author pubkey. Decoding and rendering the
// image data is out of scope; this package only manages the key scheme and
// append-only lookup.
package avatarcache

import (
	"os"
	"path/filepath"
)

// KeyFor returns the cache key for a pubkey: its first 8 hex characters.
func KeyFor(pubkey string) string {
	if len(pubkey) <= 8 {
		return pubkey
	}
	return pubkey[:8]
}

// Cache indexes avatar blobs on disk under avatars/<key>.png, eviction-free
// (blobs are never removed, only appended).
type Cache struct {
	dir string
}

// Open binds a Cache to a directory, creating it if absent.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".png")
}

// Has reports whether a blob is already cached for pubkey.
func (c *Cache) Has(pubkey string) bool {
	_, err := os.Stat(c.pathFor(KeyFor(pubkey)))
	return err == nil
}

// Store writes a blob for pubkey, keyed by its 8-char prefix. Writing an
// already-cached key is idempotent (the new bytes simply replace the old).
func (c *Cache) Store(pubkey string, blob []byte) error {
	return os.WriteFile(c.pathFor(KeyFor(pubkey)), blob, 0o600)
}

// Load reads the cached blob for pubkey, if any.
func (c *Cache) Load(pubkey string) ([]byte, bool) {
	raw, err := os.ReadFile(c.pathFor(KeyFor(pubkey)))
	if err != nil {
		return nil, false
	}
	return raw, true
}
