package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// firestoreDoc - document layout. Boards are kept as JSON strings because Firestore
// does not accept nested arrays, which is how most clients encode a grid.
type firestoreDoc struct {
	Players   []string          `firestore:"players"`
	Boards    map[string]string `firestore:"boards"`
	GameKey   *string           `firestore:"gameKey"`
	Status    string            `firestore:"status"`
	CreatedAt time.Time         `firestore:"createdAt"`
}

var jsonNull = json.RawMessage("null")

type firestoreGame struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreGameRepository(client *firestore.Client, collection string) GameRepository {
	return &firestoreGame{
		client:     client,
		collection: collection,
	}
}

func (that *firestoreGame) games() *firestore.CollectionRef {
	return that.client.Collection(that.collection)
}

func (that *firestoreGame) Create(ctx context.Context, session *entity.GameSession) error {
	_, err := that.games().Doc(session.ID).Create(ctx, toFirestoreDoc(session))
	if status.Code(err) == codes.AlreadyExists {
		return fmt.Errorf("%w: game id %s", apperror.ErrAlreadyExists, session.ID)
	}

	if err != nil {
		return storeError(err, "failed to create game document")
	}

	return nil
}

func (that *firestoreGame) GetByID(ctx context.Context, id string) (*entity.GameSession, error) {
	snapshot, err := that.games().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id)
	}

	if err != nil {
		return nil, storeError(err, "failed to get game document")
	}

	return fromSnapshot(snapshot)
}

func (that *firestoreGame) FindIDByGameKey(ctx context.Context, gameKey string) (string, error) {
	docs, err := that.games().Where("gameKey", "==", gameKey).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return "", storeError(err, "failed to query game by key")
	}

	if len(docs) == 0 {
		return "", fmt.Errorf("%w: game key %s", apperror.ErrNotFound, gameKey)
	}

	return docs[0].Ref.ID, nil
}

// Update - Firestore transaction; it is retried by the client on contention.
func (that *firestoreGame) Update(ctx context.Context, id string, mutate MutateFunc) (*entity.GameSession, error) {
	ref := that.games().Doc(id)

	var updated *entity.GameSession

	err := that.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		snapshot, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return abort(fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id))
		}

		if err != nil {
			return err
		}

		session, err := fromSnapshot(snapshot)
		if err != nil {
			return abort(err)
		}

		if err = mutate(session); err != nil {
			return abort(err)
		}

		if err = tx.Set(ref, toFirestoreDoc(session)); err != nil {
			return err
		}

		updated = session

		return nil
	})
	if err != nil {
		return nil, storeError(err, "failed to update game document")
	}

	return updated, nil
}

func (that *firestoreGame) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	docs, err := that.games().Where("createdAt", "<", cutoff).Documents(ctx).GetAll()
	if err != nil {
		return 0, storeError(err, "failed to query expired games")
	}

	deleted := 0
	for _, doc := range docs {
		if _, err = doc.Ref.Delete(ctx); err != nil {
			return deleted, storeError(err, "failed to delete game document")
		}
		deleted++
	}

	return deleted, nil
}

func toFirestoreDoc(session *entity.GameSession) *firestoreDoc {
	doc := &firestoreDoc{
		Players:   session.Players,
		Boards:    make(map[string]string, len(session.Boards)),
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
	}

	if doc.Players == nil {
		doc.Players = []string{}
	}

	for playerID, board := range session.Boards {
		if len(board) == 0 {
			board = jsonNull
		}

		doc.Boards[playerID] = string(board)
	}

	if session.GameKey != "" {
		gameKey := session.GameKey
		doc.GameKey = &gameKey
	}

	return doc
}

func fromSnapshot(snapshot *firestore.DocumentSnapshot) (*entity.GameSession, error) {
	var doc firestoreDoc
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode game document: %w", err)
	}

	return fromFirestoreDoc(snapshot.Ref.ID, &doc), nil
}

// fromFirestoreDoc - boards that are not valid JSON, such as the empty string, come back as null.
func fromFirestoreDoc(id string, doc *firestoreDoc) *entity.GameSession {
	session := &entity.GameSession{
		ID:        id,
		Players:   doc.Players,
		Boards:    make(map[string]json.RawMessage, len(doc.Boards)),
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt.UTC(),
	}

	if session.Players == nil {
		session.Players = []string{}
	}

	for playerID, board := range doc.Boards {
		if !json.Valid([]byte(board)) {
			session.Boards[playerID] = jsonNull
			continue
		}

		session.Boards[playerID] = json.RawMessage(board)
	}

	if doc.GameKey != nil {
		session.GameKey = *doc.GameKey
	}

	return session
}
