package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

func TestFirestoreDoc_RoundTrip(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Nested array boards survive as json strings", func(t *testing.T) {
		// Given: a playing session with grid boards
		session := &entity.GameSession{
			ID:      "g1",
			Players: []string{"p1", "p2"},
			Boards: map[string]json.RawMessage{
				"p1": json.RawMessage(`[[0,1],[2,3]]`),
				"p2": json.RawMessage(`{"ships":[[5,5]]}`),
			},
			GameKey:   "abc123",
			Status:    entity.StatusPlaying,
			CreatedAt: createdAt,
		}

		// When: it is encoded and decoded
		doc := toFirestoreDoc(session)
		decoded := fromFirestoreDoc("g1", doc)

		// Then: nothing is lost
		assert.Equal(t, `[[0,1],[2,3]]`, doc.Boards["p1"])
		require.NotNil(t, doc.GameKey)
		assert.Equal(t, "abc123", *doc.GameKey)
		assert.Equal(t, session, decoded)
	})

	t.Run("A missing board is stored as null and stays marshalable", func(t *testing.T) {
		// Given: a session whose board was never sent
		session := entity.NewGameSession("g1", "p1", createdAt)
		session.Boards["p1"] = nil

		// When: it goes through the document codec
		doc := toFirestoreDoc(session)
		decoded := fromFirestoreDoc("g1", doc)

		// Then: the board is json null and the session can still be served
		assert.Equal(t, "null", doc.Boards["p1"])
		assert.Equal(t, "null", string(decoded.Boards["p1"]))

		_, err := json.Marshal(decoded)
		require.NoError(t, err)
	})

	t.Run("Empty strings already stored decode as null", func(t *testing.T) {
		doc := &firestoreDoc{
			Players:   []string{"p1"},
			Boards:    map[string]string{"p1": ""},
			Status:    entity.StatusWaiting,
			CreatedAt: createdAt,
		}

		decoded := fromFirestoreDoc("g1", doc)

		assert.Equal(t, "null", string(decoded.Boards["p1"]))

		_, err := json.Marshal(decoded)
		require.NoError(t, err)
	})

	t.Run("A session without a game key stores null", func(t *testing.T) {
		// Given: a freshly created session
		session := entity.NewGameSession("g1", "p1", createdAt)

		// When: it is encoded and decoded
		doc := toFirestoreDoc(session)
		decoded := fromFirestoreDoc("g1", doc)

		// Then: the key is null in the document and empty in the session
		assert.Nil(t, doc.GameKey)
		assert.Empty(t, decoded.GameKey)
		assert.Equal(t, []string{"p1"}, decoded.Players)
		assert.Empty(t, decoded.Boards)
	})
}
