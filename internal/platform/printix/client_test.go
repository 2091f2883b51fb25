package printix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardbridge/internal/platform/config"
)

func newClient(authURL, apiURL string) *Client {
	return NewClient(config.PrintixConfig{
		ClientID:     "cid",
		ClientSecret: "csecret",
		TenantID:     "t1",
		AuthURL:      authURL,
		APIBaseURL:   apiURL,
	})
}

func TestAcquireToken(t *testing.T) {
	t.Run("sends client credentials as form fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			assert.Equal(t, "cid", r.PostForm.Get("client_id"))
			assert.Equal(t, "csecret", r.PostForm.Get("client_secret"))
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			json.NewEncoder(w).Encode(map[string]string{"access_token": "T"})
		}))
		defer server.Close()

		token, err := newClient(server.URL, "http://unused").AcquireToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "T", token)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newClient(server.URL, "http://unused").AcquireToken(context.Background())
		require.Error(t, err)

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	})

	t.Run("token missing from response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"token_type": "Bearer"})
		}))
		defer server.Close()

		_, err := newClient(server.URL, "http://unused").AcquireToken(context.Background())
		assert.ErrorIs(t, err, ErrTokenMissing)
	})

	t.Run("unparseable response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := newClient(server.URL, "http://unused").AcquireToken(context.Background())
		assert.Error(t, err)
	})
}

func TestGetUser(t *testing.T) {
	t.Run("resolves email from nested user object", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/tenants/t1/users/42", r.URL.Path)
			assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))

			json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"email": "a@b.com"}})
		}))
		defer server.Close()

		user, err := newClient("http://unused", server.URL).GetUser(context.Background(), "T", "42")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", user.Email)
	})

	t.Run("email missing from response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"name": "no email"}})
		}))
		defer server.Close()

		_, err := newClient("http://unused", server.URL).GetUser(context.Background(), "T", "42")
		assert.ErrorIs(t, err, ErrEmailMissing)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := newClient("http://unused", server.URL).GetUser(context.Background(), "T", "42")

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	})
}

func TestUpdateCard(t *testing.T) {
	t.Run("posts the secret as JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/tenants/t1/users/42/cards", r.URL.Path)
			assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "OTk5MTEx", payload["secret"])
		}))
		defer server.Close()

		err := newClient("http://unused", server.URL).UpdateCard(context.Background(), "T", "42", "OTk5MTEx")
		assert.NoError(t, err)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		err := newClient("http://unused", server.URL).UpdateCard(context.Background(), "T", "42", "OTk5MTEx")

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})
}
