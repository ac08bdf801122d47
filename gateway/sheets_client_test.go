package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookings/entity"
)

type memoryLedgerStore struct {
	mu     sync.Mutex
	sheets map[string]string
}

func (s *memoryLedgerStore) SheetID(_ context.Context, sheetName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sheets[sheetName]
	if !ok {
		return "", entity.ErrNotFound
	}
	return id, nil
}

func (s *memoryLedgerStore) StoreSheetID(_ context.Context, sheetName, sheetID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheets == nil {
		s.sheets = map[string]string{}
	}
	if existing, ok := s.sheets[sheetName]; ok {
		return existing, nil
	}
	s.sheets[sheetName] = sheetID
	return sheetID, nil
}

// fakeSheetsAPI is a minimal stand-in for the spreadsheet provider: an oauth
// token endpoint, sheet creation and row appends.
type fakeSheetsAPI struct {
	mu           sync.Mutex
	tokenCalls   int
	createdCount int
	rows         map[string][][]string
}

func (f *fakeSheetsAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			APIKey string `json:"api_key"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-key", body.APIKey)

		f.mu.Lock()
		f.tokenCalls++
		f.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-123",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/v1/sheets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		f.mu.Lock()
		f.createdCount++
		sheetID := fmt.Sprintf("sheet-%d", f.createdCount)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"sheet_id": sheetID})
	})

	mux.HandleFunc("/v1/sheets/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		sheetID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/sheets/"), "/rows")
		var body struct {
			Columns []string `json:"columns"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		f.mu.Lock()
		if f.rows == nil {
			f.rows = map[string][][]string{}
		}
		f.rows[sheetID] = append(f.rows[sheetID], body.Columns)
		f.mu.Unlock()
	})

	return mux
}

func (f *fakeSheetsAPI) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createdCount
}

func (f *fakeSheetsAPI) tokens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCalls
}

func (f *fakeSheetsAPI) sheetRows(sheetID string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[sheetID]
}

func TestSheetsClientAppendRow(t *testing.T) {
	ctx := context.Background()
	api := &fakeSheetsAPI{}
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	store := &memoryLedgerStore{}
	client := NewSheetsClient(server.URL, "test-key", store)

	require.NoError(t, client.AppendRow(ctx, "bookings", []string{"RRD-K7M2P9", "Asha Rao"}))
	require.NoError(t, client.AppendRow(ctx, "bookings", []string{"RRD-W4T8N2", "Tom Okello"}))

	// one lazily created sheet holds both rows
	assert.Equal(t, 1, api.created())
	assert.Equal(t, [][]string{
		{"RRD-K7M2P9", "Asha Rao"},
		{"RRD-W4T8N2", "Tom Okello"},
	}, api.sheetRows("sheet-1"))

	// the token is memoized across requests
	assert.Equal(t, 1, api.tokens())

	// the persisted pointer survives a process restart
	restarted := NewSheetsClient(server.URL, "test-key", store)
	require.NoError(t, restarted.AppendRow(ctx, "bookings", []string{"RRD-M9Q3R7", "Lena Voss"}))
	assert.Equal(t, 1, api.created())
	assert.Len(t, api.sheetRows("sheet-1"), 3)
}

func TestSheetsClientAdoptsWinningSheet(t *testing.T) {
	ctx := context.Background()
	api := &fakeSheetsAPI{}
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	// two processes share the store; the second must pick up the sheet the
	// first one created instead of creating its own
	store := &memoryLedgerStore{}
	client := NewSheetsClient(server.URL, "test-key", store)
	other := NewSheetsClient(server.URL, "test-key", store)

	require.NoError(t, client.AppendRow(ctx, "bookings", []string{"first"}))
	require.NoError(t, other.AppendRow(ctx, "bookings", []string{"second"}))

	assert.Len(t, api.sheetRows("sheet-1"), 2, "both processes must append to the winning sheet")
}

func TestEmailClientSend(t *testing.T) {
	ctx := context.Background()

	var (
		sentMu sync.Mutex
		sent   []map[string]string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-123",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		sentMu.Lock()
		sent = append(sent, body)
		sentMu.Unlock()

		w.WriteHeader(http.StatusAccepted)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewEmailClient(server.URL, "test-key")
	require.NoError(t, client.Send(ctx, "asha@example.com", "Booking RRD-K7M2P9 received", "<p>hello</p>"))

	sentMu.Lock()
	defer sentMu.Unlock()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0]["to"])
	assert.Equal(t, "Booking RRD-K7M2P9 received", sent[0]["subject"])
	assert.Equal(t, "<p>hello</p>", sent[0]["html_body"])
}
