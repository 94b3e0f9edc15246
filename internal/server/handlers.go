package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/andrehq/vidnotes/internal/db"
	"github.com/andrehq/vidnotes/internal/pipeline"
)

// GenerateRequest represents the request body for /generate
type GenerateRequest struct {
	Reference  string `json:"reference" validate:"required"`
	Topic      string `json:"topic,omitempty"`
	UseBrowser bool   `json:"use_browser,omitempty"`
}

// GenerateResponse represents the response for /generate
type GenerateResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// decodeGenerateRequest parses and validates a generation request body.
func (s *Server) decodeGenerateRequest(r *http.Request) (GenerateRequest, error) {
	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		return req, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return req, &ErrValidation{Field: verrs[0].Field(), Message: "failed " + verrs[0].Tag() + " validation"}
		}
		return req, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return req, nil
}

// runOptions builds pipeline options for a request from the server config.
func (s *Server) runOptions(req GenerateRequest) pipeline.RunOptions {
	return pipeline.RunOptions{
		Reference:           req.Reference,
		Topic:               req.Topic,
		WorkDir:             s.appConfig.WorkDir,
		SearchAPIKey:        s.appConfig.SearchAPIKey,
		SearchCX:            s.appConfig.SearchCX,
		UseBrowser:          req.UseBrowser || s.appConfig.UseBrowser,
		OracleTimeout:       s.appConfig.OracleTimeout(),
		RepetitionThreshold: s.appConfig.RepetitionThreshold,
		SimilarityThreshold: s.appConfig.SimilarityThreshold,
		ChapterInterval:     s.appConfig.ChapterInterval(),
		MaxKeywords:         s.appConfig.MaxKeywords,
		SummaryMaxWords:     s.appConfig.SummaryMaxWords,
		MaxHashtags:         s.appConfig.MaxHashtags,
		DatabaseURL:         s.appConfig.DatabaseURL,
	}
}

// handleGenerate starts a new asynchronous generation job
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job := s.jobs.Create(req.Reference)
	log.Printf("Starting generation job %s for %s", job.ID, req.Reference)

	go s.runJob(job.ID, s.runOptions(req))

	s.jsonResponse(w, http.StatusAccepted, GenerateResponse{
		JobID:  job.ID.String(),
		Status: string(JobQueued),
	})
}

// runJob executes the pipeline for a job and records the outcome.
func (s *Server) runJob(jobID uuid.UUID, opts pipeline.RunOptions) {
	s.jobs.Start(jobID)

	result, err := pipeline.RunPipeline(context.Background(), opts)
	if err != nil {
		log.Printf("Job %s failed: %v", jobID, err)
		s.jobs.Fail(jobID, err)
		return
	}
	s.jobs.Complete(jobID, result.Description)
	log.Printf("Job %s completed", jobID)
}

// handleGenerateStream runs a generation job synchronously, streaming
// progress events over SSE.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	job := s.jobs.Create(req.Reference)
	s.jobs.Start(job.ID)

	opts := s.runOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		event.RunID = job.ID.String()
		sse.WriteEvent("progress", event) //nolint:errcheck
	}

	result, err := pipeline.RunPipeline(r.Context(), opts)
	if err != nil {
		s.jobs.Fail(job.ID, err)
		sse.WriteError(err.Error())
		return
	}

	s.jobs.Complete(job.ID, result.Description)
	sse.WriteEvent("result", result.Description) //nolint:errcheck
	sse.WriteComplete(job.ID.String(), string(JobCompleted))
}

// handleListJobs returns all jobs, newest first
func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.jobs.List())
}

// handleGetJob returns the status of a job
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobFromPath(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Status view omits the full description payload.
	job.Description = nil
	s.jsonResponse(w, http.StatusOK, job)
}

// handleJobResult returns the finished description for a job. With
// ?format=text the rendered template is returned as plain text instead of
// the structured JSON form.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobFromPath(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	switch job.Status {
	case JobCompleted:
	case JobFailed:
		s.errorResponse(w, http.StatusInternalServerError, job.Error)
		return
	default:
		err := &ErrJobNotFinished{JobID: job.ID, Status: job.Status}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(job.Description.Rendered)) //nolint:errcheck
		return
	}
	s.jsonResponse(w, http.StatusOK, job.Description)
}

// jobFromPath resolves the {id} path value to a job snapshot.
func (s *Server) jobFromPath(r *http.Request) (Job, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return Job{}, &ErrValidation{Field: "id", Message: "invalid job ID"}
	}

	job, ok := s.jobs.Get(id)
	if !ok {
		return Job{}, &ErrJobNotFound{JobID: id}
	}
	return job, nil
}

// handleListRuns returns persisted run history from the database
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleRunDescription returns the rendered description stored for a run
func (s *Server) handleRunDescription(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	text, err := s.db.GetTextArtifact(r.Context(), runID, db.StepRenderedText)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if text == "" {
		s.errorResponse(w, http.StatusNotFound, "run has no rendered description")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text)) //nolint:errcheck
}
