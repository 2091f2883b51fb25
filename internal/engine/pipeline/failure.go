package pipeline

import (
	"fmt"
	"net/http"

	"cardbridge/internal/pkg/errors"
)

// Failure is a classified, terminal pipeline error. Each stage returns one
// instead of a bare error so the handler can map it straight onto an HTTP
// status without re-inspecting causes.
type Failure struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Code, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func badRequest(code, message string) *Failure {
	return &Failure{Code: code, Status: http.StatusBadRequest, Message: message}
}

func upstream(code, message string, err error) *Failure {
	return &Failure{Code: code, Status: http.StatusInternalServerError, Message: message, Err: err}
}

func notFound(message string) *Failure {
	return &Failure{Code: errors.ErrCodeCardNotFound, Status: http.StatusNotFound, Message: message}
}
