package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andrehq/vidnotes/internal/types"
)

// JobStatus is the lifecycle state of a generation job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one asynchronous description generation request.
type Job struct {
	ID          uuid.UUID          `json:"id"`
	Reference   string             `json:"reference"`
	Status      JobStatus          `json:"status"`
	Error       string             `json:"error,omitempty"`
	Description *types.Description `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// JobStore is the in-memory registry of generation jobs. Jobs live for the
// process lifetime; durable run history goes to the database when configured.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[uuid.UUID]*Job)}
}

// Create registers a new queued job for the given video reference.
func (s *JobStore) Create(reference string) Job {
	job := &Job{
		ID:        uuid.New(),
		Reference: reference,
		Status:    JobQueued,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return *job
}

// Start marks a job as running.
func (s *JobStore) Start(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = JobRunning
	}
}

// Complete marks a job as completed with its description.
func (s *JobStore) Complete(id uuid.UUID, description *types.Description) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = JobCompleted
		job.Description = description
		job.CompletedAt = &now
	}
}

// Fail marks a job as failed with the error message.
func (s *JobStore) Fail(id uuid.UUID, err error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = JobFailed
		job.Error = err.Error()
		job.CompletedAt = &now
	}
}

// Get returns a snapshot of a job.
func (s *JobStore) Get(id uuid.UUID) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// List returns snapshots of all jobs, newest first.
func (s *JobStore) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}
