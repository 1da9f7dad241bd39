package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/vimukti/vimukti-api/internal/models"
	"github.com/vimukti/vimukti-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetBySessionToken(ctx context.Context, token string) (*models.User, error)
	SetSessionToken(ctx context.Context, email, token string, updatedAt time.Time) error
	UpdateFields(ctx context.Context, id string, fields bson.M) error
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) GetBySessionToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"session_token": token})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *userRepo) SetSessionToken(ctx context.Context, email, token string, updatedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"session_token": token,
			"updated_at":    updatedAt.UTC(),
		}},
	)
	return err
}

// UpdateFields applies a partial $set on a user document. Callers own the
// field whitelist.
func (r *userRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": fields},
	)
	return err
}
