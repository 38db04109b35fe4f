package repository

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/entity"
)

// FormRepository persists published-form records.
type FormRepository interface {
	Create(ctx context.Context, form *entity.PublishedForm) error
	ListByOwner(ctx context.Context, ownerID string, limit int64) ([]*entity.PublishedForm, error)
	Delete(ctx context.Context, publishedFormID, ownerID string) error
}

type formRepo struct {
	collection *mongo.Collection
	log        *slog.Logger
}

func NewFormRepository(db *mongo.Database, log *slog.Logger) FormRepository {
	if log == nil {
		log = slog.Default()
	}
	return &formRepo{collection: db.Collection("generated_forms"), log: log}
}

func (r *formRepo) Create(ctx context.Context, form *entity.PublishedForm) error {
	form.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, form); err != nil {
		r.log.Error("form.create.failed", "published_form_id", form.PublishedFormID, "err", err)
		return common.WrapError(err, "insert published form")
	}
	r.log.Info("form.created",
		"published_form_id", form.PublishedFormID,
		"owner_id", form.OwnerID,
		"question_count", form.QuestionCount,
	)
	return nil
}

func (r *formRepo) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]*entity.PublishedForm, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, common.WrapError(err, "find published forms")
	}
	defer cursor.Close(ctx)

	var forms []*entity.PublishedForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, common.WrapError(err, "decode published forms")
	}
	return forms, nil
}

func (r *formRepo) Delete(ctx context.Context, publishedFormID, ownerID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"published_form_id": publishedFormID,
		"owner_id":          ownerID,
	})
	if err != nil {
		return common.WrapError(err, "delete published form")
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	r.log.Info("form.deleted", "published_form_id", publishedFormID, "owner_id", ownerID)
	return nil
}
