package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/vimukti/vimukti-api/internal/models"
	"github.com/vimukti/vimukti-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepository interface {
	Create(ctx context.Context, s *models.ChatSession) error
	GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error)
	// UpsertForTurn creates the session with the given title if it does not
	// exist yet, otherwise only advances updated_at. Title and user_id are
	// written on insert only, so a session's title never changes after its
	// first turn.
	UpsertForTurn(ctx context.Context, sessionID, userID, title string, now time.Time) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.ChatSession, error)
}

type sessionRepo struct {
	col *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) SessionRepository {
	return &sessionRepo{col: db.Collection("chat_sessions")}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.ChatSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.col.FindOne(ctx, bson.M{"id": sessionID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *sessionRepo) UpsertForTurn(ctx context.Context, sessionID, userID, title string, now time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"id": sessionID, "user_id": userID},
		bson.M{
			"$set": bson.M{"updated_at": now.UTC()},
			"$setOnInsert": bson.M{
				"id":         sessionID,
				"user_id":    userID,
				"title":      title,
				"created_at": now.UTC(),
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.ChatSession, error) {
	if limit <= 0 {
		limit = 50
	}

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "updated_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ChatSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
