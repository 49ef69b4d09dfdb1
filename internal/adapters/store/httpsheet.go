package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
	"github.com/tnt-robotics/sponsorscout/internal/ports"
)

const (
	rowsEndpoint  = "/v1/sheet/rows"
	resetEndpoint = "/v1/sheet/reset"
)

// rowPayload is the wire form of a sheet row.
type rowPayload struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

// HTTPSheetStore implements ports.RowStore against the spreadsheet
// service's row API. Payloads are plain (name, timestamp) pairs; the
// service enforces its own per-minute write quota, which the rate-limited
// writer stays under.
type HTTPSheetStore struct {
	client  ports.HTTPClient
	baseURL string
	authKey string
}

// NewHTTPSheetStore creates a sheet store for the service at baseURL.
func NewHTTPSheetStore(client ports.HTTPClient, baseURL, authKey string) *HTTPSheetStore {
	return &HTTPSheetStore{client: client, baseURL: baseURL, authKey: authKey}
}

// ReadAll fetches every data row from the sheet. A 404 from the service
// means the sheet has not been created yet.
func (s *HTTPSheetStore) ReadAll(ctx context.Context) ([]domain.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+rowsEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrStoreMissing
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("read rows: server returned %d: %s", resp.StatusCode, string(body))
	}

	var payload []rowPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}

	entries := make([]domain.Entry, 0, len(payload))
	for _, p := range payload {
		entries = append(entries, domain.EntryFromRow([]string{p.Name, p.Timestamp}))
	}
	return entries, nil
}

// Append posts a single row to the sheet.
func (s *HTTPSheetStore) Append(ctx context.Context, entry domain.Entry) error {
	row := entry.Row()
	body, err := json.Marshal(rowPayload{Name: row[0], Timestamp: row[1]})
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+rowsEndpoint,
		bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("append row: server returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Reset clears the sheet and reinitializes it with the header row.
func (s *HTTPSheetStore) Reset(ctx context.Context) error {
	body, err := json.Marshal(map[string][]string{"header": domain.Header})
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+resetEndpoint,
		bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("reset sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reset sheet: server returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (s *HTTPSheetStore) setHeaders(req *http.Request) {
	if s.authKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.authKey)
	}
}
