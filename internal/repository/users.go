package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/entity"
)

// UserRepository stores identity records. The pipeline only consumes the
// opaque user id; everything else exists for the HTTP surface.
type UserRepository interface {
	UpsertByEmail(ctx context.Context, email, name string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type userRepo struct {
	collection *mongo.Collection
	log        *slog.Logger
}

func NewUserRepository(db *mongo.Database, log *slog.Logger) UserRepository {
	if log == nil {
		log = slog.Default()
	}
	return &userRepo{collection: db.Collection("users"), log: log}
}

func (r *userRepo) UpsertByEmail(ctx context.Context, email, name string) (*entity.User, error) {
	var existing entity.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.WrapError(err, "find user")
	}

	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		r.log.Error("user.create.failed", "email", email, "err", err)
		return nil, common.WrapError(err, "insert user")
	}
	r.log.Info("user.created", "user_id", user.ID, "email", email)
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "find user")
	}
	return &user, nil
}
