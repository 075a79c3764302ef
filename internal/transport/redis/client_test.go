package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/testing/suite"
)

type recorder struct {
	mu       sync.Mutex
	payloads map[string][][]byte
}

func (that *recorder) Deliver(gameID string, payload []byte) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.payloads[gameID] = append(that.payloads[gameID], payload)

	return 1
}

func (that *recorder) received(gameID string) [][]byte {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.payloads[gameID]
}

func TestClient_RelaysPublishedEvents(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a relay subscribed to the channel
	local := &recorder{payloads: make(map[string][][]byte)}
	relay := New(st.Logger, st.Storage, DefaultChannel, local)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- relay.Run(runCtx) }()

	session := entity.NewGameSession("g1", "p1", time.Now())
	event := entity.NewGameEvent(entity.EventCreated, session)

	// When: events are published until the subscription is live
	require.Eventually(t, func() bool {
		if err := relay.Publish(ctx, event); err != nil {
			return false
		}

		return len(local.received("g1")) > 0
	}, 10*time.Second, 100*time.Millisecond)

	// Then: the payload reaches local subscribers of that game unchanged
	var got entity.GameEvent
	require.NoError(t, json.Unmarshal(local.received("g1")[0], &got))
	assert.Equal(t, entity.EventCreated, got.Action)
	assert.Equal(t, "g1", got.GameID)

	cancel()
	require.NoError(t, <-done)
}

func TestClient_SkipsMalformedPayloads(t *testing.T) {
	ctx, st := suite.New(t)

	local := &recorder{payloads: make(map[string][][]byte)}
	relay := New(st.Logger, st.Storage, DefaultChannel, local)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() { _ = relay.Run(runCtx) }()

	// Given: garbage and a valid event on the channel
	require.Eventually(t, func() bool {
		_ = st.Storage.Publish(ctx, DefaultChannel, "not json").Err()
		_ = st.Storage.Publish(ctx, DefaultChannel, `{"action":"game:ready","gameId":"g2"}`).Err()

		return len(local.received("g2")) > 0
	}, 10*time.Second, 100*time.Millisecond)

	// Then: only the valid event was relayed
	local.mu.Lock()
	defer local.mu.Unlock()
	assert.Len(t, local.payloads, 1)
}
