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
// Package config loads and serves the client's configuration: the user's
// signing key, the relay set, and local data paths. It follows the
// teacher's layering: a cobra root command supplies flags, viper merges
// flags, a config file and environment variables, and a single process-wide
// Config is exposed through Get().
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tenex-go/tenex/internal/csync"
)

const (
	// EnvPrefix is the prefix viper binds environment variables under, so
	// TENEX_NSEC, TENEX_RELAY, TENEX_DATA_DIR all resolve automatically.
	EnvPrefix = "TENEX"

	// DefaultConfigFileName is the base name (without extension) viper
	// searches for.
	DefaultConfigFileName = "tenex"

	// DefaultStaleOpWindowSeconds is the default for the
	// stale_op_window_seconds key. It has the same value as
	// operation.DefaultStaleWindow; the two constants are declared
	// separately and nothing ties one to the other.
	DefaultStaleOpWindowSeconds = 90
)

// DefaultRelayURLs is the built-in relay set used when no relay list is
// configured.
var DefaultRelayURLs = []string{
	"wss://relay.damus.io",
	"wss://relay.primal.net",
	"wss://nos.lol",
}

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
)

// Config is the process-wide, mutex-guarded configuration value. Fields
// are read through accessor methods so a config-file hot-reload can
// replace them without callers racing a partially-updated struct.
type Config struct {
	mu sync.RWMutex

	nsec                 string
	userPubkey           string
	relayURLs            *csync.Slice[string]
	dataDir              string
	staleOpWindowSeconds int64
	configFileUsed       string
}

// Get returns the global Config, constructing an unloaded default the
// first time it's called. Load should be called once at startup before
// any other package calls Get; packages that call Get() before Load has
// run still receive usable defaults rather than a nil pointer.
func Get() *Config {
	globalConfigOnce.Do(func() {
		globalConfig = defaultConfig()
	})
	return globalConfig
}

// Set replaces the global Config, used by tests and by Load.
func Set(cfg *Config) {
	globalConfig = cfg
}

func defaultConfig() *Config {
	cfg := &Config{
		relayURLs:            csync.NewSlice[string](),
		dataDir:              GetDataDir(),
		staleOpWindowSeconds: DefaultStaleOpWindowSeconds,
	}
	cfg.relayURLs.Set(DefaultRelayURLs)
	return cfg
}

// BindPersistentFlags registers the flags cmd/tenex's root command exposes
// and binds each to its viper key, so flag > env > config file > default
// priority holds without cmd/tenex needing to know about viper directly.
func BindPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("nsec", "", "user signing key (nsec1...), overrides TENEX_NSEC")
	flags.StringSlice("relay", nil, "relay URL, may be repeated")
	flags.String("config", "", "path to a config file")

	_ = viper.BindPFlag("nsec", flags.Lookup("nsec"))
	_ = viper.BindPFlag("relay", flags.Lookup("relay"))
}

// Load reads configuration from flags, environment variables, and a config
// file, in that priority order over the defaults, and installs the result as the
// global Config. cfgFile, if non-empty, names an explicit config file;
// otherwise viper searches the data directory, the current directory, and
// /etc/tenex/.
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(GetDataDir())
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/tenex/")
		viper.SetConfigName(DefaultConfigFileName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	_ = viper.BindEnv("nsec", "TENEX_NSEC")
	_ = viper.BindEnv("user_pubkey", "TENEX_USER_PUBKEY")
	_ = viper.BindEnv("relay", "TENEX_RELAY")

	cfg := &Config{
		nsec:                 viper.GetString("nsec"),
		userPubkey:           viper.GetString("user_pubkey"),
		relayURLs:            csync.NewSlice[string](),
		dataDir:              GetDataDir(),
		staleOpWindowSeconds: viper.GetInt64("stale_op_window_seconds"),
		configFileUsed:       viper.ConfigFileUsed(),
	}
	relays := viper.GetStringSlice("relay")
	if len(relays) == 0 {
		relays = append([]string(nil), DefaultRelayURLs...)
	}
	cfg.relayURLs.Set(relays)
	if cfg.staleOpWindowSeconds <= 0 {
		cfg.staleOpWindowSeconds = DefaultStaleOpWindowSeconds
	}

	Set(cfg)
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("relay", DefaultRelayURLs)
	viper.SetDefault("stale_op_window_seconds", DefaultStaleOpWindowSeconds)
}

// WatchForChanges watches the config file used by the most recent Load
// call and re-reads the relay list into the global Config whenever it
// changes on disk, without requiring a restart. onChange, if non-nil, is
// invoked after each reload with the fresh Config.
func WatchForChanges(onChange func(*Config)) {
	viper.OnConfigChange(func(_ fsnotify.Event) {
		cfg := Get()
		if relays := viper.GetStringSlice("relay"); len(relays) > 0 {
			cfg.relayURLs.Set(relays)
		}
		cfg.mu.Lock()
		if w := viper.GetInt64("stale_op_window_seconds"); w > 0 {
			cfg.staleOpWindowSeconds = w
		}
		cfg.mu.Unlock()
		if onChange != nil {
			onChange(cfg)
		}
	})
	viper.WatchConfig()
}

// Nsec returns the configured signing key, empty if none is set.
func (c *Config) Nsec() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nsec
}

// UserPubkey returns the configured user pubkey, empty if derived from
// the key at runtime instead.
func (c *Config) UserPubkey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userPubkey
}

// SetUserPubkey records the pubkey derived from the signing key at
// startup, so later reads (e.g. the ask-answered check) don't need to
// re-derive it.
func (c *Config) SetUserPubkey(pubkey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userPubkey = pubkey
}

// RelayURLs returns the configured relay set. Guarded independently of the
// rest of Config by its own csync.Slice, since the fsnotify watcher
// goroutine updates it on a config-file reload while the event loop reads
// it to dial relays.
func (c *Config) RelayURLs() []string {
	return c.relayURLs.Items()
}

// DataDir returns the resolved data directory.
func (c *Config) DataDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dataDir
}

// StaleOpWindow returns the configured operation staleness window.
func (c *Config) StaleOpWindow() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.staleOpWindowSeconds) * time.Second
}

// ConfigFileUsed returns the path of the config file actually read, or
// empty if none was found.
func (c *Config) ConfigFileUsed() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configFileUsed
}

// IsConfigured reports whether enough configuration is present to
// attempt a connection: a signing key and at least one relay.
func (c *Config) IsConfigured() bool {
	c.mu.RLock()
	nsec := c.nsec
	c.mu.RUnlock()
	return nsec != "" && c.relayURLs.Len() > 0
}
