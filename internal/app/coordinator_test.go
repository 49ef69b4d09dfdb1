package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	logadapter "github.com/tnt-robotics/sponsorscout/internal/adapters/log"
	"github.com/tnt-robotics/sponsorscout/internal/domain"
	"github.com/tnt-robotics/sponsorscout/internal/extract"
	"github.com/tnt-robotics/sponsorscout/internal/ledger"
)

// fakeFetcher serves canned page text per URL.
type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	text, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return text, nil
}

// recordingAppender captures appended entries and can fail chosen names.
type recordingAppender struct {
	mu        sync.Mutex
	entries   []domain.Entry
	failNames map[string]bool
}

func (a *recordingAppender) Append(ctx context.Context, entry domain.Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failNames[entry.Name] {
		return fmt.Errorf("%w: %q", domain.ErrWriteExhausted, entry.Name)
	}
	a.entries = append(a.entries, entry)
	return nil
}

func (a *recordingAppender) names() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}
	return names
}

func newTestCoordinator(fetcher *fakeFetcher, appender *recordingAppender) *Coordinator {
	return NewCoordinator(fetcher, extract.New(0), appender, logadapter.NewNoopLogger())
}

func TestRunSkipsKnownNames(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"http://a.example": "Our sponsors:\nAcme Corp\nBeta LLC",
	}}
	appender := &recordingAppender{}
	coord := newTestCoordinator(fetcher, appender)

	led := ledger.New()
	led.Seed([]domain.Entry{{Name: "Acme Corp"}})

	summary := coord.Run(context.Background(), []string{"http://a.example"}, led)

	if got := appender.names(); len(got) != 1 || got[0] != "Beta LLC" {
		t.Fatalf("expected only Beta LLC to be written, got %v", got)
	}
	if summary.Candidates != 2 || summary.Added != 1 || summary.Duplicates != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !led.Contains("Beta LLC") {
		t.Fatal("written name should be recorded in the ledger")
	}
}

func TestRunFetchFailureDoesNotAbortSiblings(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"http://a.example": "Acme Corp",
			"http://c.example": "Beta LLC",
		},
		errs: map[string]error{
			"http://b.example": errors.New("connection refused"),
		},
	}
	appender := &recordingAppender{}
	coord := newTestCoordinator(fetcher, appender)

	urls := []string{"http://a.example", "http://b.example", "http://c.example"}
	summary := coord.Run(context.Background(), urls, ledger.New())

	if summary.URLs != 3 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Added != 2 {
		t.Fatalf("expected both healthy pages to contribute, got %+v", summary)
	}
}

func TestRunConcurrentDuplicateWrittenOnce(t *testing.T) {
	const tasks = 8

	pages := make(map[string]string, tasks)
	urls := make([]string, 0, tasks)
	for i := 0; i < tasks; i++ {
		url := fmt.Sprintf("http://site%d.example", i)
		pages[url] = "Proud sponsor: Glorbo Inc"
		urls = append(urls, url)
	}

	appender := &recordingAppender{}
	coord := newTestCoordinator(&fakeFetcher{pages: pages}, appender)

	summary := coord.Run(context.Background(), urls, ledger.New())

	if got := appender.names(); len(got) != 1 || got[0] != "Glorbo Inc" {
		t.Fatalf("expected exactly one write for the shared name, got %v", got)
	}
	if summary.Added != 1 || summary.Duplicates != tasks-1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunWriteFailureReleasesName(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"http://a.example": "Acme Corp\nBeta LLC",
	}}
	appender := &recordingAppender{failNames: map[string]bool{"Beta LLC": true}}
	coord := newTestCoordinator(fetcher, appender)

	led := ledger.New()
	summary := coord.Run(context.Background(), []string{"http://a.example"}, led)

	if summary.Added != 1 || summary.WriteFails != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if led.Contains("Beta LLC") {
		t.Fatal("failed name must not be recorded")
	}
	// The dropped name stays eligible for a later run.
	if !led.Reserve("Beta LLC") {
		t.Fatal("failed name should be reservable again")
	}
}
