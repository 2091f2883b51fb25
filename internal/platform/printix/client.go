package printix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"cardbridge/internal/platform/config"
)

var (
	// ErrTokenMissing means the token endpoint answered 2xx but the body
	// carried no access_token.
	ErrTokenMissing = errors.New("access token missing in response")
	// ErrEmailMissing means the user endpoint answered 2xx but the body
	// carried no user.email.
	ErrEmailMissing = errors.New("user email missing in response")
)

// StatusError reports a non-2xx answer from a Printix endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("printix: unexpected status %d", e.StatusCode)
}

// Client talks to the Printix OAuth and Cloud Print APIs for one tenant.
// Every call exchanges credentials or presents a bearer token fresh; no
// token is cached between requests.
type Client struct {
	httpClient   *http.Client
	authURL      string
	apiBaseURL   string
	clientID     string
	clientSecret string
	tenantID     string
}

func NewClient(cfg config.PrintixConfig) *Client {
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		authURL:      cfg.AuthURL,
		apiBaseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tenantID:     cfg.TenantID,
	}
}

// User is the subset of the Printix user resource the pipeline needs.
type User struct {
	Email string
}

// AcquireToken performs a client_credentials grant and returns the bearer
// token. The token itself is never logged; only its parsed expiry is.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", ErrTokenMissing
	}

	logTokenExpiry(body.AccessToken)

	return body.AccessToken, nil
}

// GetUser fetches the user resource and returns its e-mail address.
func (c *Client) GetUser(ctx context.Context, token, userID string) (*User, error) {
	endpoint := fmt.Sprintf("%s/tenants/%s/users/%s", c.apiBaseURL, c.tenantID, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	if body.User.Email == "" {
		return nil, ErrEmailMissing
	}

	return &User{Email: body.User.Email}, nil
}

// UpdateCard submits the base64-encoded card secret for the user.
func (c *Client) UpdateCard(ctx context.Context, token, userID, secret string) error {
	endpoint := fmt.Sprintf("%s/tenants/%s/users/%s/cards", c.apiBaseURL, c.tenantID, userID)

	payload, err := json.Marshal(map[string]string{"secret": secret})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	return nil
}

// logTokenExpiry surfaces the token lifetime in diagnostics without ever
// writing the token itself to the log stream. The signature is not
// verified; the claim is informational only.
func logTokenExpiry(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	log.Debug().Time("token_expires_at", exp.Time).Msg("acquired printix access token")
}
