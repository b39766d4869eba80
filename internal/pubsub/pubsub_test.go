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
package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerPublishDeliversToSubscriber(t *testing.T) {
	b := NewBroker[string]()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	b.Publish(NewCreatedEvent("thread-1"))

	select {
	case ev := <-ch:
		assert.Equal(t, CreatedEvent, ev.Type)
		assert.Equal(t, "thread-1", ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker[int]()
	ch, unsubscribe := b.Subscribe()
	unsubscribe()

	b.Publish(NewUpdatedEvent(7))

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")
}

func TestBrokerDropsOldestWhenSubscriberBufferFull(t *testing.T) {
	b := NewBroker[int]()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		b.Publish(NewUpdatedEvent(i))
	}

	// The channel never blocks the writer and always ends up holding the
	// most recent event once drained.
	var last Event[int]
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				break
			}
			last = ev
			continue
		default:
		}
		break
	}
	assert.Equal(t, subscriberBuffer+9, last.Payload)
}

func TestBrokerShutdownClosesAllSubscribers(t *testing.T) {
	b := NewBroker[string]()
	ch1, _ := b.Subscribe()
	ch2, _ := b.Subscribe()

	b.Shutdown()

	_, ok1 := <-ch1
	_, ok2 := <-ch2
	require.False(t, ok1)
	require.False(t, ok2)
}
