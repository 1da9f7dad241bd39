package mongo

import (
	"context"
	"time"

	"github.com/vimukti/vimukti-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository interface {
	Insert(ctx context.Context, m *models.ChatMessage) error
	// ListBySession filters by both session and owner so a guessed foreign
	// session id yields an empty result, never another user's messages.
	ListBySession(ctx context.Context, userID, sessionID string, limit int64) ([]models.ChatMessage, error)
}

type messageRepo struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepository {
	return &messageRepo{col: db.Collection("chat_messages")}
}

func (r *messageRepo) Insert(ctx context.Context, m *models.ChatMessage) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *messageRepo) ListBySession(ctx context.Context, userID, sessionID string, limit int64) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 1000
	}

	cur, err := r.col.Find(ctx,
		bson.M{"session_id": sessionID, "user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: 1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
