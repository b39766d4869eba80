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
	"os"
	"path/filepath"
	"strings"
)

// DataDirEnvVar is the environment variable that overrides the data
// directory used for drafts, history, the avatar cache, and the bunker
// auto-approve cache.
const DataDirEnvVar = "TENEX_DATA_DIR"

// GetDataDir returns the tenex data directory.
//
// Priority:
//  1. TENEX_DATA_DIR environment variable, if set
//  2. ~/.tenex
//
// A leading "~/" is expanded to the user's home directory and any other
// value is made absolute. When the home directory cannot be determined,
// the default falls back to the relative ".tenex" and a "~/" value is
// returned unexpanded. This reads directly from os.Getenv rather than
// viper, since it must be resolvable before the config file itself is
// located.
func GetDataDir() string {
	if dir := os.Getenv(DataDirEnvVar); dir != "" {
		return expandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tenex"
	}
	return filepath.Join(home, ".tenex")
}

// GetSubDir returns a subdirectory within the data directory, e.g.
// GetSubDir("drafts") for the draft & history store.
func GetSubDir(sub string) string {
	return filepath.Join(GetDataDir(), sub)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
