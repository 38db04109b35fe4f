package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/formlo/formlo/constants"
	"github.com/formlo/formlo/internal/cache"
	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/entity"
	"github.com/formlo/formlo/internal/extract"
	"github.com/formlo/formlo/internal/forms"
	"github.com/formlo/formlo/internal/llm"
	"github.com/formlo/formlo/internal/repository"
)

// Processor drives one conversion job through its stages:
//
//	PROCESSING(0) -> ANALYZING(30) -> CREATING_FORM(60) -> COMPLETED(100)
//
// with FAILED reachable from any non-terminal state. Stages run strictly in
// order inside one blocking call; the job record is owned by this run alone.
type Processor struct {
	Jobs      repository.JobRepository
	Forms     repository.FormRepository
	Cache     cache.JobCache
	Extractor extract.TextExtractor
	Questions llm.QuestionExtractor
	Publisher forms.Publisher
	Logger    *slog.Logger
}

func NewProcessor(
	jobs repository.JobRepository,
	formsRepo repository.FormRepository,
	jobCache cache.JobCache,
	extractor extract.TextExtractor,
	questions llm.QuestionExtractor,
	publisher forms.Publisher,
	logger *slog.Logger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if jobCache == nil {
		jobCache = cache.Noop{}
	}
	return &Processor{
		Jobs:      jobs,
		Forms:     formsRepo,
		Cache:     jobCache,
		Extractor: extractor,
		Questions: questions,
		Publisher: publisher,
		Logger:    logger,
	}
}

// Run converts one upload end to end and returns the job's final persisted
// snapshot. Stage errors are recorded on the job record and re-raised to the
// caller as a generic processing failure; nothing is retried here.
func (p *Processor) Run(ctx context.Context, ownerID, filename string, data []byte) (*entity.Job, error) {
	if !constants.IsAllowedExt(filepath.Ext(filename)) {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filepath.Ext(filename))
	}

	start := time.Now()
	job := &entity.Job{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		SourceFilename: filename,
		Status:         constants.JobStatusProcessing,
		Progress:       constants.ProgressFor(constants.JobStatusProcessing),
	}
	if err := p.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	p.cacheJob(ctx, job)

	// Stage 1: text extraction.
	extracted, err := p.Extractor.Extract(ctx, data, filename)
	if err != nil {
		return job, p.fail(ctx, job, err)
	}
	if err := p.advance(ctx, job, constants.JobStatusAnalyzing); err != nil {
		return job, err
	}

	// Stage 2: question extraction. Degrades to the fallback question set on
	// malformed model output; never fails the job.
	result := p.Questions.ExtractQuestions(ctx, extracted.Text, job.ID)
	if err := p.advance(ctx, job, constants.JobStatusCreatingForm); err != nil {
		return job, err
	}

	// Stage 3: map and publish.
	items := forms.ToProviderItems(result)
	published, err := p.Publisher.Publish(ctx, result.FormTitle, result.FormDescription, items)
	if err != nil {
		return job, p.fail(ctx, job, err)
	}

	// Stage 4: durable record, then terminal state.
	record := &entity.PublishedForm{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		SourceFilename:  filename,
		PublishedFormID: published.FormID,
		Title:           result.FormTitle,
		URL:             published.URL,
		QuestionCount:   len(result.Questions),
	}
	if err := p.Forms.Create(ctx, record); err != nil {
		return job, p.fail(ctx, job, err)
	}
	if err := p.Jobs.MarkCompleted(ctx, job.ID, published.FormID); err != nil {
		return job, err
	}

	job.Status = constants.JobStatusCompleted
	job.Progress = constants.ProgressFor(constants.JobStatusCompleted)
	job.PublishedFormID = &published.FormID
	p.cacheJob(ctx, job)

	p.Logger.Info("pipeline.run.ok",
		"job_id", job.ID,
		"owner_id", ownerID,
		"filename", filename,
		"pages", extracted.Pages,
		"questions", len(result.Questions),
		"published_form_id", published.FormID,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return job, nil
}

func (p *Processor) advance(ctx context.Context, job *entity.Job, status constants.JobStatus) error {
	progress := constants.ProgressFor(status)
	if err := p.Jobs.UpdateProgress(ctx, job.ID, status, progress); err != nil {
		return err
	}
	job.Status = status
	job.Progress = progress
	p.cacheJob(ctx, job)
	return nil
}

// fail records the stage error on the job and re-raises it as a generic
// processing failure for the caller.
func (p *Processor) fail(ctx context.Context, job *entity.Job, cause error) error {
	message := cause.Error()
	if err := p.Jobs.MarkFailed(ctx, job.ID, message); err != nil {
		p.Logger.Error("pipeline.mark_failed.persist_error", "job_id", job.ID, "err", err)
	}
	job.Status = constants.JobStatusFailed
	job.ErrorMessage = &message
	p.cacheJob(ctx, job)

	p.Logger.Warn("pipeline.run.failed", "job_id", job.ID, "error", message)
	return fmt.Errorf("processing failed: %w", cause)
}

// cacheJob is write-through and best-effort; a cache outage never affects
// the job's durable state.
func (p *Processor) cacheJob(ctx context.Context, job *entity.Job) {
	if err := p.Cache.Set(ctx, job); err != nil && !errors.Is(err, context.Canceled) {
		p.Logger.Warn("pipeline.cache.set_failed", "job_id", job.ID, "err", err)
	}
}
