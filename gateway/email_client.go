package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// EmailClient talks to the transactional mail provider.
type EmailClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokenSource
}

func NewEmailClient(baseURL, apiKey string) *EmailClient {
	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &EmailClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     newTokenSource(httpClient, baseURL+"/oauth/token", apiKey),
	}
}

func (c *EmailClient) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("could not get mail provider token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"to":        recipient,
		"subject":   subject,
		"html_body": htmlBody,
	})
	if err != nil {
		return fmt.Errorf("could not marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status code for POST /v1/messages: %d", resp.StatusCode)
	}

	return nil
}
