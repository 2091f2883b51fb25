package errors

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

const (
	ErrCodeEmptyBody        = "EMPTY_BODY"
	ErrCodeMalformedJSON    = "MALFORMED_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidHref      = "INVALID_HREF_FORMAT"
	ErrCodeTokenFailed      = "TOKEN_ACQUISITION_FAILED"
	ErrCodeTokenMissing     = "TOKEN_MISSING_IN_RESPONSE"
	ErrCodeUserFetchFailed  = "USER_FETCH_FAILED"
	ErrCodeEmailMissing     = "EMAIL_MISSING_IN_RESPONSE"
	ErrCodeCardNotFound     = "CARD_NOT_FOUND"
	ErrCodeCardUpdateFailed = "CARD_UPDATE_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
		Details: details,
	})
}
