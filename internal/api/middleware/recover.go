package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"cardbridge/internal/pkg/errors"
)

// Recover is the outermost boundary: anything unclassified that escapes a
// handler becomes a generic 500 instead of tearing down the connection.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", FromContext(r.Context())).
					Interface("panic", rec).
					Msg("handler panicked")
				errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Internal server error occurred.", nil)
			}
		}()

		next(w, r)
	}
}
