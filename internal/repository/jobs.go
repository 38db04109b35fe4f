package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/formlo/formlo/constants"
	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/entity"
)

// JobRepository persists conversion jobs. Updates are partial-field merges;
// one job is only ever written by the single pipeline run that owns it.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id, ownerID string) (*entity.Job, error)
	UpdateProgress(ctx context.Context, id string, status constants.JobStatus, progress int) error
	MarkFailed(ctx context.Context, id, message string) error
	MarkCompleted(ctx context.Context, id, publishedFormID string) error
}

type jobRepo struct {
	collection *mongo.Collection
	log        *slog.Logger
}

func NewJobRepository(db *mongo.Database, log *slog.Logger) JobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &jobRepo{collection: db.Collection("processing_jobs"), log: log}
}

func (r *jobRepo) Create(ctx context.Context, job *entity.Job) error {
	job.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, job); err != nil {
		r.log.Error("job.create.failed", "job_id", job.ID, "err", err)
		return common.WrapError(err, "insert job")
	}
	r.log.Info("job.created", "job_id", job.ID, "owner_id", job.OwnerID, "filename", job.SourceFilename)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id, ownerID string) (*entity.Job, error) {
	var job entity.Job
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "find job")
	}
	return &job, nil
}

func (r *jobRepo) UpdateProgress(ctx context.Context, id string, status constants.JobStatus, progress int) error {
	update := bson.M{"$set": bson.M{"status": status, "progress": progress}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		r.log.Error("job.update_progress.failed", "job_id", id, "status", status, "err", err)
		return common.WrapError(err, "update job progress")
	}
	r.log.Info("job.progress", "job_id", id, "status", status, "progress", progress)
	return nil
}

func (r *jobRepo) MarkFailed(ctx context.Context, id, message string) error {
	update := bson.M{"$set": bson.M{
		"status":        constants.JobStatusFailed,
		"error_message": message,
	}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		r.log.Error("job.mark_failed.failed", "job_id", id, "err", err)
		return common.WrapError(err, "mark job failed")
	}
	r.log.Warn("job.failed", "job_id", id, "error", message)
	return nil
}

func (r *jobRepo) MarkCompleted(ctx context.Context, id, publishedFormID string) error {
	update := bson.M{"$set": bson.M{
		"status":            constants.JobStatusCompleted,
		"progress":          constants.ProgressFor(constants.JobStatusCompleted),
		"published_form_id": publishedFormID,
	}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		r.log.Error("job.mark_completed.failed", "job_id", id, "err", err)
		return common.WrapError(err, "mark job completed")
	}
	r.log.Info("job.completed", "job_id", id, "published_form_id", publishedFormID)
	return nil
}
