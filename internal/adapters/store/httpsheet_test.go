package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

// sheetService is an in-memory stand-in for the spreadsheet service.
type sheetService struct {
	mu      sync.Mutex
	created bool
	rows    []rowPayload
	authKey string
}

func (s *sheetService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/sheet/rows", func(w http.ResponseWriter, r *http.Request) {
		if s.authKey != "" && r.Header.Get("Authorization") != "Bearer "+s.authKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			if !s.created {
				http.Error(w, "sheet not found", http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(s.rows)
		case http.MethodPost:
			var row rowPayload
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			s.rows = append(s.rows, row)
			w.WriteHeader(http.StatusCreated)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/sheet/reset", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.created = true
		s.rows = nil
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func TestHTTPSheetStoreMissingSheet(t *testing.T) {
	service := &sheetService{}
	server := httptest.NewServer(service.handler())
	defer server.Close()

	s := NewHTTPSheetStore(server.Client(), server.URL, "")

	_, err := s.ReadAll(context.Background())
	if !errors.Is(err, domain.ErrStoreMissing) {
		t.Fatalf("expected ErrStoreMissing for 404, got %v", err)
	}
}

func TestHTTPSheetStoreRoundTrip(t *testing.T) {
	service := &sheetService{authKey: "secret"}
	server := httptest.NewServer(service.handler())
	defer server.Close()

	s := NewHTTPSheetStore(server.Client(), server.URL, "secret")
	ctx := context.Background()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	discovered := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	if err := s.Append(ctx, domain.Entry{Name: "Acme Corp", DiscoveredAt: discovered}); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Acme Corp" {
		t.Fatalf("unexpected entries: %v", entries)
	}
	if !entries[0].DiscoveredAt.Equal(discovered) {
		t.Fatalf("timestamp did not round-trip: got %v", entries[0].DiscoveredAt)
	}
}

func TestHTTPSheetStoreRejectsBadAuth(t *testing.T) {
	service := &sheetService{authKey: "secret"}
	server := httptest.NewServer(service.handler())
	defer server.Close()

	s := NewHTTPSheetStore(server.Client(), server.URL, "wrong")

	err := s.Append(context.Background(), domain.Entry{Name: "Acme Corp"})
	if err == nil {
		t.Fatal("expected error for bad auth key")
	}
}

func TestHTTPSheetStoreServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewHTTPSheetStore(server.Client(), server.URL, "")

	if err := s.Append(context.Background(), domain.Entry{Name: "Acme Corp"}); err == nil {
		t.Fatal("expected error for 500 response")
	}
	_, err := s.ReadAll(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, domain.ErrStoreMissing) {
		t.Fatal("a server error is not the same as a missing sheet")
	}
}
