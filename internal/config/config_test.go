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
package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigUsesBuiltinRelays(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, DefaultRelayURLs, cfg.RelayURLs())
	assert.Equal(t, int64(DefaultStaleOpWindowSeconds), cfg.staleOpWindowSeconds)
}

func TestLoadBindsNsecFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("TENEX_NSEC", "nsec1testvalue")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "nsec1testvalue", cfg.Nsec())
}

func TestLoadFallsBackToDefaultRelaysWhenUnset(t *testing.T) {
	viper.Reset()
	t.Setenv("TENEX_NSEC", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRelayURLs, cfg.RelayURLs())
}

func TestLoadHonorsRelayEnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("TENEX_RELAY", "wss://relay.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"wss://relay.example.com"}, cfg.RelayURLs())
}

func TestIsConfiguredRequiresNsecAndRelay(t *testing.T) {
	cfg := defaultConfig()
	assert.False(t, cfg.IsConfigured())

	cfg.nsec = "nsec1x"
	assert.True(t, cfg.IsConfigured())
}

func TestSetUserPubkeyIsReadable(t *testing.T) {
	cfg := defaultConfig()
	cfg.SetUserPubkey("pub1")
	assert.Equal(t, "pub1", cfg.UserPubkey())
}
