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
package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshCreatesOperation(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("ev1", "thread1", "31933:pub:proj", []string{"agentA"}, 100, 100)

	ops := tr.ActiveOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, "ev1", ops[0].EventID)
	assert.Equal(t, int64(100), ops[0].StartedAt)
}

func TestRefreshIsIdempotentForSameBeacon(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("ev1", "thread1", "proj", []string{"agentA"}, 100, 100)
	tr.Refresh("ev1", "thread1", "proj", []string{"agentA"}, 100, 150)

	ops := tr.ActiveOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, int64(150), ops[0].LastHeartbeatAt, "heartbeat moves forward")
}

func TestRefreshNeverMovesHeartbeatBackward(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("ev1", "thread1", "proj", nil, 100, 200)
	tr.Refresh("ev1", "thread1", "proj", nil, 100, 150)

	ops := tr.ActiveOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, int64(200), ops[0].LastHeartbeatAt)
}

func TestPruneRemovesStaleOperations(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("stale", "t1", "proj", nil, 0, 0)
	tr.Refresh("fresh", "t1", "proj", nil, 0, 50)

	removed := tr.Prune(100)
	assert.Equal(t, []string{"stale"}, removed)

	ops := tr.ActiveOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, "fresh", ops[0].EventID)
}

func TestPruneKeepsOperationsWithinWindow(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("ev1", "t1", "proj", nil, 0, 20)

	removed := tr.Prune(100)
	assert.Empty(t, removed)
	assert.Len(t, tr.ActiveOperations(), 1)
}

func TestActiveOperationsOrderedByHeartbeatDescending(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("old", "t1", "proj", nil, 0, 10)
	tr.Refresh("new", "t1", "proj", nil, 0, 50)

	ops := tr.ActiveOperations()
	require.Len(t, ops, 2)
	assert.Equal(t, "new", ops[0].EventID)
	assert.Equal(t, "old", ops[1].EventID)
}

func TestWorkingAgentsScopedToThread(t *testing.T) {
	tr := NewTracker(90)
	tr.Refresh("ev1", "thread1", "proj", []string{"agentA", "agentB"}, 0, 0)
	tr.Refresh("ev2", "thread2", "proj", []string{"agentC"}, 0, 0)

	agents := tr.WorkingAgents("thread1")
	assert.Len(t, agents, 2)
	_, hasA := agents["agentA"]
	_, hasC := agents["agentC"]
	assert.True(t, hasA)
	assert.False(t, hasC)
}

func TestIsProjectBusy(t *testing.T) {
	tr := NewTracker(90)
	assert.False(t, tr.IsProjectBusy("proj1"))

	tr.Refresh("ev1", "thread1", "proj1", nil, 0, 0)
	assert.True(t, tr.IsProjectBusy("proj1"))
	assert.False(t, tr.IsProjectBusy("proj2"))
}

func TestNewTrackerFallsBackToDefaultWindow(t *testing.T) {
	tr := NewTracker(0)
	assert.Equal(t, int64(DefaultStaleWindow), tr.staleWindow)
}
