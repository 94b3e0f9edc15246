package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrJobNotFound indicates the requested job does not exist
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrJobNotFinished indicates the job has no result yet
type ErrJobNotFinished struct {
	JobID  uuid.UUID
	Status JobStatus
}

func (e *ErrJobNotFinished) Error() string {
	return fmt.Sprintf("job %s has no result yet (status: %s)", e.JobID, e.Status)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrJobNotFound:
		return http.StatusNotFound
	case *ErrJobNotFinished:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
