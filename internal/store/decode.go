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
package store

import (
	"encoding/json"

	"github.com/tenex-go/tenex/internal/nostrevent"
)

// profileWire is the kind-0 content payload shape.
type profileWire struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func decodeProfileName(content string) string {
	var w profileWire
	if err := json.Unmarshal([]byte(content), &w); err != nil {
		return ""
	}
	if w.DisplayName != "" {
		return w.DisplayName
	}
	return w.Name
}

// projectStatusWire is the kind-24010 content payload shape.
type projectStatusWire struct {
	Agents []struct {
		Pubkey string   `json:"pubkey"`
		Name   string   `json:"name"`
		IsPm   bool     `json:"is_pm"`
		Model  string   `json:"model"`
		Tools  []string `json:"tools"`
	} `json:"agents"`
	Models        []string `json:"models"`
	Tools         []string `json:"tools"`
	Branches      []string `json:"branches"`
	DefaultBranch string   `json:"default_branch"`
}

func decodeProjectStatus(atag string, e nostrevent.RawEvent) *ProjectStatus {
	var w projectStatusWire
	_ = json.Unmarshal([]byte(e.Content), &w)

	status := &ProjectStatus{
		ProjectATag:   atag,
		Models:        w.Models,
		Tools:         w.Tools,
		Branches:      w.Branches,
		DefaultBranch: w.DefaultBranch,
		LastSeen:      e.CreatedAt,
	}
	for _, a := range w.Agents {
		status.Agents = append(status.Agents, ProjectAgent{
			Pubkey: a.Pubkey,
			Name:   a.Name,
			IsPm:   a.IsPm,
			Model:  a.Model,
			Tools:  a.Tools,
		})
	}
	return status
}
