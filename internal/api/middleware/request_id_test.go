package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID(t *testing.T) {
	t.Run("Generates ID", func(t *testing.T) {
		var seen string
		handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
			seen = FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhook", nil))

		if seen == "" {
			t.Error("no request id in handler context")
		}
		if got := rr.Header().Get(HeaderRequestID); got != seen {
			t.Errorf("response header id = %q, want %q", got, seen)
		}
	})

	t.Run("Honors Caller ID", func(t *testing.T) {
		var seen string
		handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
			seen = FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
		req.Header.Set(HeaderRequestID, "caller-supplied")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if seen != "caller-supplied" {
			t.Errorf("context id = %q, want caller-supplied", seen)
		}
	})
}
