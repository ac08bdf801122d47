package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshMargin forces a refresh slightly before the provider's expiry so a
// token never dies mid-request.
const refreshMargin = 30 * time.Second

// tokenSource holds a memoized provider bearer token and refreshes it when
// it is close to expiry. The state lives in the client instance, never in
// package-level variables.
type tokenSource struct {
	httpClient *http.Client
	tokenURL   string
	apiKey     string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenSource(httpClient *http.Client, tokenURL, apiKey string) *tokenSource {
	return &tokenSource{
		httpClient: httpClient,
		tokenURL:   tokenURL,
		apiKey:     apiKey,
	}
}

func (t *tokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Until(t.expiresAt) > refreshMargin {
		return t.token, nil
	}

	payload, err := json.Marshal(map[string]string{"api_key": t.apiKey})
	if err != nil {
		return "", fmt.Errorf("could not marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("could not create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code for POST %s: %d", t.tokenURL, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("could not decode token response: %w", err)
	}

	t.token = body.AccessToken
	t.expiresAt = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)

	return t.token, nil
}
