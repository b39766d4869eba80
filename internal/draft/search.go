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
package draft

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// historySource adapts the history log to fuzzy.Source, matching against
// each entry's content.
type historySource []Entry

func (h historySource) String(i int) string { return h[i].Content }
func (h historySource) Len() int             { return len(h) }

// Search performs reverse incremental search over the history log. An
// empty query returns every matching-scope entry ordered by recency (the
// "browse all" mode); a non-empty query keeps only the fuzzy matches and
// orders them by recency as well, newest first, with entries of equal
// CreatedAt left in fuzzy-score order.
func (s *Store) Search(query, projectATagScope string) []Entry {
	s.mu.Lock()
	scoped := make([]Entry, 0, len(s.history))
	for _, e := range s.history {
		if projectATagScope != "" && e.ProjectATag != projectATagScope {
			continue
		}
		scoped = append(scoped, e)
	}
	s.mu.Unlock()

	if query == "" {
		sort.Slice(scoped, func(i, j int) bool { return scoped[i].CreatedAt > scoped[j].CreatedAt })
		return scoped
	}

	matches := fuzzy.FindFrom(query, historySource(scoped))
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = scoped[m.Index]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}
