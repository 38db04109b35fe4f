package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlo/formlo/constants"
	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/entity"
	"github.com/formlo/formlo/internal/export"
	"github.com/formlo/formlo/internal/extract"
	"github.com/formlo/formlo/internal/forms"
	"github.com/formlo/formlo/internal/llm"
	"github.com/formlo/formlo/internal/pipeline"
)

type memJobRepo struct {
	jobs map[string]*entity.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*entity.Job)}
}

func (m *memJobRepo) Create(_ context.Context, job *entity.Job) error {
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *memJobRepo) GetByID(_ context.Context, id, ownerID string) (*entity.Job, error) {
	job, ok := m.jobs[id]
	if !ok || job.OwnerID != ownerID {
		return nil, common.ErrNotFound
	}
	return job, nil
}

func (m *memJobRepo) UpdateProgress(_ context.Context, id string, status constants.JobStatus, progress int) error {
	if job, ok := m.jobs[id]; ok {
		job.Status = status
		job.Progress = progress
	}
	return nil
}

func (m *memJobRepo) MarkFailed(_ context.Context, id, message string) error {
	if job, ok := m.jobs[id]; ok {
		job.Status = constants.JobStatusFailed
		job.ErrorMessage = &message
	}
	return nil
}

func (m *memJobRepo) MarkCompleted(_ context.Context, id, publishedFormID string) error {
	if job, ok := m.jobs[id]; ok {
		job.Status = constants.JobStatusCompleted
		job.Progress = 100
		job.PublishedFormID = &publishedFormID
	}
	return nil
}

type memFormRepo struct {
	forms []*entity.PublishedForm
}

func (m *memFormRepo) Create(_ context.Context, form *entity.PublishedForm) error {
	m.forms = append(m.forms, form)
	return nil
}

func (m *memFormRepo) ListByOwner(_ context.Context, ownerID string, _ int64) ([]*entity.PublishedForm, error) {
	out := []*entity.PublishedForm{}
	for _, f := range m.forms {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFormRepo) Delete(_ context.Context, publishedFormID, ownerID string) error {
	for i, f := range m.forms {
		if f.PublishedFormID == publishedFormID && f.OwnerID == ownerID {
			m.forms = append(m.forms[:i], m.forms[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) UpsertByEmail(_ context.Context, email, name string) (*entity.User, error) {
	if m.users == nil {
		m.users = make(map[string]*entity.User)
	}
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	u := &entity.User{ID: "uid-" + email, Email: email, Name: name}
	m.users[email] = u
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type stubQuestions struct {
	result llm.ExtractionResult
}

func (s stubQuestions) ExtractQuestions(_ context.Context, _, _ string) llm.ExtractionResult {
	return s.result
}

type stubPublisher struct {
	err error
}

func (s stubPublisher) Publish(_ context.Context, _, _ string, _ []forms.Item) (forms.PublishResult, error) {
	if s.err != nil {
		return forms.PublishResult{}, s.err
	}
	return forms.PublishResult{FormID: "form-1", URL: forms.FormURL("form-1")}, nil
}

type testEnv struct {
	handler http.Handler
	jobs    *memJobRepo
	forms   *memFormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jobs := newMemJobRepo()
	formsRepo := &memFormRepo{}
	questions := stubQuestions{result: llm.ExtractionResult{
		FormTitle: "Survey",
		Questions: []llm.ExtractedQuestion{{Title: "Name?", Kind: llm.KindShortAnswer}},
	}}

	processor := pipeline.NewProcessor(jobs, formsRepo, nil, extract.NewExtractor(), questions, stubPublisher{}, nil)
	handler := NewRouter(&Container{
		Processor: processor,
		Jobs:      jobs,
		Forms:     formsRepo,
		Users:     &memUserRepo{},
		Exporter:  export.NewService(formsRepo, nil),
	})
	return &testEnv{handler: handler, jobs: jobs, forms: formsRepo}
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doRequest(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := doRequest(env, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUploadRequiresIdentity(t *testing.T) {
	env := newTestEnv(t)
	body, contentType := multipartUpload(t, "notes.txt", []byte("Question?"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(env, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadCompletesJob(t *testing.T) {
	env := newTestEnv(t)
	body, contentType := multipartUpload(t, "notes.txt", []byte("What is your name?"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "owner-1")

	rec := doRequest(env, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var job entity.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, constants.JobStatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.NotNil(t, job.PublishedFormID)
	assert.Equal(t, "form-1", *job.PublishedFormID)

	require.Len(t, env.forms.forms, 1)
	assert.Equal(t, "owner-1", env.forms.forms[0].OwnerID)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	env := newTestEnv(t)
	body, contentType := multipartUpload(t, "binary.exe", []byte("MZ"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "owner-1")

	rec := doRequest(env, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not supported")
	// A rejected upload never creates a job record.
	assert.Empty(t, env.jobs.jobs)
}

func TestUploadIdentityFromEmailHeader(t *testing.T) {
	env := newTestEnv(t)
	body, contentType := multipartUpload(t, "notes.txt", []byte("What is your name?"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Email", "ada@example.com")

	rec := doRequest(env, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, env.forms.forms, 1)
	assert.Equal(t, "uid-ada@example.com", env.forms.forms[0].OwnerID)
}

func TestGetJob(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.jobs.Create(context.Background(), &entity.Job{
		ID:       "job-1",
		OwnerID:  "owner-1",
		Status:   constants.JobStatusAnalyzing,
		Progress: 30,
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec := doRequest(env, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var job entity.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, constants.JobStatusAnalyzing, job.Status)
	assert.Equal(t, 30, job.Progress)
}

func TestGetJobNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec := doRequest(env, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobOtherOwnerNotFound(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.jobs.Create(context.Background(), &entity.Job{ID: "job-1", OwnerID: "owner-1"}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil)
	req.Header.Set("X-User-ID", "owner-2")
	rec := doRequest(env, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListForms(t *testing.T) {
	env := newTestEnv(t)
	env.forms.forms = []*entity.PublishedForm{
		{ID: "1", OwnerID: "owner-1", PublishedFormID: "f-1", Title: "A"},
		{ID: "2", OwnerID: "owner-2", PublishedFormID: "f-2", Title: "B"},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec := doRequest(env, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []entity.PublishedForm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
}

func TestDeleteForm(t *testing.T) {
	env := newTestEnv(t)
	env.forms.forms = []*entity.PublishedForm{
		{ID: "1", OwnerID: "owner-1", PublishedFormID: "f-1"},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/forms/f-1", nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec := doRequest(env, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.forms.forms)
}

func TestDeleteFormNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/forms/ghost", nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec := doRequest(env, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportForms(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/forms/export", nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec := doRequest(env, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestUploadFailureReturnsServerError(t *testing.T) {
	jobs := newMemJobRepo()
	formsRepo := &memFormRepo{}
	questions := stubQuestions{result: llm.FallbackResult()}
	publisher := stubPublisher{err: errors.New("provider status 503: unavailable")}

	processor := pipeline.NewProcessor(jobs, formsRepo, nil, extract.NewExtractor(), questions, publisher, nil)
	handler := NewRouter(&Container{
		Processor: processor,
		Jobs:      jobs,
		Forms:     formsRepo,
		Users:     &memUserRepo{},
		Exporter:  export.NewService(formsRepo, nil),
	})
	env := &testEnv{handler: handler, jobs: jobs, forms: formsRepo}

	body, contentType := multipartUpload(t, "notes.txt", []byte("Question?"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "owner-1")

	rec := doRequest(env, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "processing failed")

	// The job record survives in FAILED state for status polling.
	require.Len(t, jobs.jobs, 1)
	for _, job := range jobs.jobs {
		assert.Equal(t, constants.JobStatusFailed, job.Status)
	}
}
