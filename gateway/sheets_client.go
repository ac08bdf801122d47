package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"bookings/entity"
)

// LedgerStore persists the provider ids of created sheets, so that every
// process (and every restart) appends to the same sheet.
type LedgerStore interface {
	SheetID(ctx context.Context, sheetName string) (string, error)
	StoreSheetID(ctx context.Context, sheetName, sheetID string) (string, error)
}

// SheetsClient appends rows to the external spreadsheet ledger. Sheets are
// created lazily on first append; the created sheet's id is persisted
// through the LedgerStore and cached per process.
type SheetsClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     *tokenSource
	store      LedgerStore

	mu     sync.Mutex
	sheets map[string]string
}

func NewSheetsClient(baseURL, apiKey string, store LedgerStore) *SheetsClient {
	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &SheetsClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     newTokenSource(httpClient, baseURL+"/oauth/token", apiKey),
		store:      store,
		sheets:     map[string]string{},
	}
}

func (c *SheetsClient) AppendRow(ctx context.Context, sheetName string, row []string) error {
	sheetID, err := c.ensureSheet(ctx, sheetName)
	if err != nil {
		return fmt.Errorf("could not ensure sheet %s: %w", sheetName, err)
	}

	payload, err := json.Marshal(map[string]any{"columns": row})
	if err != nil {
		return fmt.Errorf("could not marshal append request: %w", err)
	}

	if err := c.post(ctx, fmt.Sprintf("/v1/sheets/%s/rows", sheetID), payload, nil); err != nil {
		return fmt.Errorf("could not append row: %w", err)
	}
	return nil
}

// ensureSheet resolves the provider id for a sheet name: process cache
// first, then the persisted pointer, then create-if-absent. Racing
// first-touch initializers are safe: StoreSheetID always returns the id
// that won the insert, and the loser's sheet is simply never used again.
func (c *SheetsClient) ensureSheet(ctx context.Context, sheetName string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sheetID, ok := c.sheets[sheetName]; ok {
		return sheetID, nil
	}

	sheetID, err := c.store.SheetID(ctx, sheetName)
	if errors.Is(err, entity.ErrNotFound) {
		sheetID, err = c.createSheet(ctx, sheetName)
		if err != nil {
			return "", err
		}
		sheetID, err = c.store.StoreSheetID(ctx, sheetName, sheetID)
	}
	if err != nil {
		return "", err
	}

	c.sheets[sheetName] = sheetID
	return sheetID, nil
}

func (c *SheetsClient) createSheet(ctx context.Context, sheetName string) (string, error) {
	payload, err := json.Marshal(map[string]string{"name": sheetName})
	if err != nil {
		return "", fmt.Errorf("could not marshal create request: %w", err)
	}

	var body struct {
		SheetID string `json:"sheet_id"`
	}
	if err := c.post(ctx, "/v1/sheets", payload, &body); err != nil {
		return "", fmt.Errorf("could not create sheet: %w", err)
	}
	return body.SheetID, nil
}

func (c *SheetsClient) post(ctx context.Context, path string, payload []byte, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("could not get sheets provider token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code for POST %s: %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}
	return nil
}
