package pipeline

import (
	"encoding/json"
	"strings"

	"cardbridge/internal/pkg/errors"
)

// userPathMarker splits the event href; the subject user id is everything
// after its first occurrence, trailing path segments included.
const userPathMarker = "users/"

type webhookEvent struct {
	Href *string `json:"href"`
}

type webhookPayload struct {
	Events []webhookEvent `json:"events"`
}

// ExtractUserID validates the raw webhook body and pulls the user id out of
// the first event's href. Pure function of the body bytes.
func ExtractUserID(body []byte) (string, *Failure) {
	if len(body) == 0 {
		return "", badRequest(errors.ErrCodeEmptyBody, "Request body cannot be empty.")
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", badRequest(errors.ErrCodeMalformedJSON, "Invalid JSON format.")
	}

	if len(payload.Events) == 0 || payload.Events[0].Href == nil {
		return "", badRequest(errors.ErrCodeMissingField, "Invalid request body. 'events[0].href' is required.")
	}

	href := *payload.Events[0].Href
	idx := strings.Index(href, userPathMarker)
	if href == "" || idx < 0 {
		return "", badRequest(errors.ErrCodeInvalidHref, "Invalid 'href' format in the request body.")
	}

	return href[idx+len(userPathMarker):], nil
}
