package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"cardbridge/internal/engine/pipeline"
	"cardbridge/internal/pkg/errors"
)

type WebhookHandler struct {
	pipeline *pipeline.Pipeline
}

func NewWebhookHandler(p *pipeline.Pipeline) *WebhookHandler {
	return &WebhookHandler{pipeline: p}
}

// ProcessCard runs the full pipeline: validate, acquire token, resolve the
// user's e-mail, look up the card number, push it back as the card secret.
func (h *WebhookHandler) ProcessCard(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to read request body", nil)
		return
	}

	result, fail := h.pipeline.Run(r.Context(), body)
	if fail != nil {
		writeFailure(w, fail)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// ResolveEmail runs the pipeline's resolve-only variant and reports the
// user's e-mail without touching the card directory or the card endpoint.
func (h *WebhookHandler) ResolveEmail(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to read request body", nil)
		return
	}

	result, fail := h.pipeline.ResolveEmail(r.Context(), body)
	if fail != nil {
		writeFailure(w, fail)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func writeFailure(w http.ResponseWriter, fail *pipeline.Failure) {
	if fail.Status >= http.StatusInternalServerError {
		log.Error().Err(fail).Str("code", fail.Code).Msg("pipeline failed")
	} else {
		log.Warn().Str("code", fail.Code).Msg("webhook rejected")
	}
	errors.WriteError(w, fail.Status, fail.Code, fail.Message, nil)
}
