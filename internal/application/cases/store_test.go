package cases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// memStateStore StateStore in-memory untuk test
type memStateStore struct {
	mu    sync.Mutex
	snap  *domain.Snapshot
	saves int
}

func (m *memStateStore) Save(_ context.Context, snap *domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.saves++
	return nil
}

func (m *memStateStore) Load(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func TestPutLastWriteWins(t *testing.T) {
	s := NewStore(nil, StoreConfig{})

	s.Put("e1.png", domain.AnalysisResult{FileID: "e1.png", ScamClass: &domain.ScamClassification{Category: "phishing"}})
	s.Put("e1.png", domain.AnalysisResult{FileID: "e1.png", ScamClass: &domain.ScamClassification{Category: "upi_fraud"}})

	got := s.Get("e1.png")
	if got == nil {
		t.Fatal("expected cache hit")
	}
	if got.ScamClass.Category != "upi_fraud" {
		t.Errorf("got category %q, want latest write", got.ScamClass.Category)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestGetMissReturnsNil(t *testing.T) {
	s := NewStore(nil, StoreConfig{})
	if got := s.Get("nope"); got != nil {
		t.Fatalf("expected nil on miss, got %+v", got)
	}
}

func TestClearWipesCacheAndCurrent(t *testing.T) {
	s := NewStore(nil, StoreConfig{})
	s.Put("e1.png", domain.AnalysisResult{FileID: "e1.png"})
	s.SetCurrent("e1.png")

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len = %d after clear", s.Len())
	}
	if s.Current() != "" {
		t.Errorf("current = %q after clear", s.Current())
	}
}

func TestNotificationAutoClears(t *testing.T) {
	s := NewStore(nil, StoreConfig{NotificationTTL: 30 * time.Millisecond})

	s.SetNotification("evidence uploaded")
	if got := s.Notification(); got != "evidence uploaded" {
		t.Fatalf("notification = %q", got)
	}

	waitForNotification(t, s, "")
}

// Regression: pesan baru yang masuk sebelum TTL pesan lama habis tidak boleh
// di-clear oleh timer pesan lama.
func TestNotificationNewerMessageSurvivesOldTimer(t *testing.T) {
	s := NewStore(nil, StoreConfig{NotificationTTL: 50 * time.Millisecond})

	s.SetNotification("first")
	time.Sleep(30 * time.Millisecond)
	s.SetNotification("second")

	// timer "first" expire di sini; "second" masih dalam TTL-nya sendiri
	time.Sleep(30 * time.Millisecond)
	if got := s.Notification(); got != "second" {
		t.Fatalf("notification = %q, want %q to survive the first timer", got, "second")
	}

	waitForNotification(t, s, "")
}

func TestNotificationCallbackFires(t *testing.T) {
	var (
		mu   sync.Mutex
		msgs []string
	)
	s := NewStore(nil, StoreConfig{
		NotificationTTL: time.Minute,
		OnNotification: func(msg string) {
			mu.Lock()
			msgs = append(msgs, msg)
			mu.Unlock()
		},
	})

	s.SetNotification("analysis complete")

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"analysis complete"}, msgs); diff != "" {
		t.Errorf("callback messages (-want +got):\n%s", diff)
	}
}

func TestSnapshotExcludesUIState(t *testing.T) {
	s := NewStore(nil, StoreConfig{NotificationTTL: time.Minute})
	s.Put("e1.png", domain.AnalysisResult{FileID: "e1.png"})
	s.SetCurrent("e1.png")
	s.SetLoading(true)
	s.SetNotification("busy")

	snap := s.Snapshot()
	want := &domain.Snapshot{
		CurrentCaseID: "e1.png",
		AnalysisCache: map[domain.ID]domain.AnalysisResult{
			"e1.png": {FileID: "e1.png"},
		},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("snapshot (-want +got):\n%s", diff)
	}
}

func TestMutationsPersistAndHydrateRestores(t *testing.T) {
	persist := &memStateStore{}

	s := NewStore(persist, StoreConfig{})
	s.Put("e1.png", domain.AnalysisResult{FileID: "e1.png"})
	s.SetCurrent("e1.png")

	persist.mu.Lock()
	saves := persist.saves
	persist.mu.Unlock()
	if saves != 2 {
		t.Errorf("saves = %d, want one flush per mutation", saves)
	}

	// instance baru, seolah restart
	fresh := NewStore(persist, StoreConfig{})
	if err := fresh.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if fresh.Current() != "e1.png" {
		t.Errorf("current after hydrate = %q", fresh.Current())
	}
	if got := fresh.Get("e1.png"); got == nil || got.FileID != "e1.png" {
		t.Errorf("cache after hydrate = %+v", got)
	}
}

func TestHydrateEmptyStoreIsNoop(t *testing.T) {
	s := NewStore(&memStateStore{}, StoreConfig{})
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if s.Len() != 0 || s.Current() != "" {
		t.Error("hydrate of empty state must leave store empty")
	}
}

func waitForNotification(t *testing.T, s *Store, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Notification() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notification = %q, want %q before deadline", s.Notification(), want)
}
