package hub

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/hub"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeBackend struct {
	searchCalls atomic.Int64
	topCalls    atomic.Int64

	cases    []domain.CaseSummary
	top      []domain.TopEntity
	clusters *domain.Clusters
	err      error
}

func (f *fakeBackend) SearchCases(_ context.Context, _ string) ([]domain.CaseSummary, error) {
	f.searchCalls.Add(1)
	return f.cases, f.err
}

func (f *fakeBackend) TopEntities(_ context.Context) ([]domain.TopEntity, error) {
	f.topCalls.Add(1)
	return f.top, f.err
}

func (f *fakeBackend) EntityProfile(_ context.Context, entity string) (*domain.EntityProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EntityProfile{Entity: entity}, nil
}

func (f *fakeBackend) CaseClusters(_ context.Context) (*domain.Clusters, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.clusters == nil {
		return &domain.Clusters{Clusters: [][]string{}}, nil
	}
	return f.clusters, nil
}

func TestEntityProfileRequiresEntity(t *testing.T) {
	svc := NewService(&fakeBackend{})

	for _, entity := range []string{"", "   "} {
		if _, err := svc.EntityProfile(context.Background(), entity); !errors.Is(err, cases.ErrValidation) {
			t.Errorf("entity %q: err = %v, want validation error", entity, err)
		}
	}
}

func TestEntityProfilePassesNotFoundThrough(t *testing.T) {
	svc := NewService(&fakeBackend{err: cases.ErrNotFound})

	_, err := svc.EntityProfile(context.Background(), "ghost@example.com")
	if !errors.Is(err, cases.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound passthrough", err)
	}
}

func TestRefreshOverviewAggregates(t *testing.T) {
	backend := &fakeBackend{
		cases: []domain.CaseSummary{
			{FileID: "a", Category: "phishing"},
			{FileID: "b", Category: "phishing"},
			{FileID: "c", Category: "upi_fraud"},
			{FileID: "d"}, // tanpa kategori, tidak dihitung
		},
		top: []domain.TopEntity{{Entity: "scam@example.com", Count: 3}},
	}
	svc := NewService(backend)
	svc.Clock = fixedClock{t: time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)}

	if err := svc.RefreshOverview(context.Background()); err != nil {
		t.Fatalf("RefreshOverview: %v", err)
	}

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	want := &domain.Overview{
		TotalCases:  4,
		TopEntities: []domain.TopEntity{{Entity: "scam@example.com", Count: 3}},
		Categories:  map[string]int{"phishing": 2, "upi_fraud": 1},
		RefreshedAt: "2025-11-02T10:00:00Z",
	}
	if diff := cmp.Diff(want, ov); diff != "" {
		t.Errorf("overview (-want +got):\n%s", diff)
	}
}

func TestCaseClustersPassthrough(t *testing.T) {
	want := &domain.Clusters{TotalClusters: 1, Clusters: [][]string{{"a.png", "b.png"}}}
	svc := NewService(&fakeBackend{clusters: want})

	got, err := svc.CaseClusters(context.Background())
	if err != nil {
		t.Fatalf("CaseClusters: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clusters (-want +got):\n%s", diff)
	}
}

func TestOverviewRefreshesLazilyOnce(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend)

	if _, err := svc.Overview(context.Background()); err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if _, err := svc.Overview(context.Background()); err != nil {
		t.Fatalf("second Overview: %v", err)
	}
	if backend.searchCalls.Load() != 1 {
		t.Errorf("search calls = %d, want lazy refresh exactly once", backend.searchCalls.Load())
	}
}

func TestOverviewPropagatesBackendError(t *testing.T) {
	svc := NewService(&fakeBackend{err: cases.ErrTransport})

	if _, err := svc.Overview(context.Background()); !errors.Is(err, cases.ErrTransport) {
		t.Fatalf("err = %v, want transport error", err)
	}
}
