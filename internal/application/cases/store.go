package cases

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

const defaultNotificationTTL = 3 * time.Second

// StoreConfig konfigurasi Store, semua field optional
type StoreConfig struct {
	// NotificationTTL how long a notification stays before auto-clearing.
	NotificationTTL time.Duration
	// OnNotification dipanggil setiap notification berubah (dipakai push
	// ke dashboard lewat websocket). Boleh nil.
	OnNotification func(msg string)
}

// Store holds the most recent AnalysisResult per file id plus ephemeral UI
// signals, session-wide. It exclusively owns the file id -> result mapping;
// every other component reads through accessors only. Construct one per
// console instance, no package-level singleton, supaya test bisa bikin
// store terisolasi.
//
// The whole snapshot (cache + current case pointer) is persisted through
// the StateStore port on every mutation and rehydrated on startup. There is
// no size bound or eviction; that is an accepted scope limitation, not a
// defect to fix silently.
type Store struct {
	mu      sync.RWMutex
	current domain.ID
	cache   map[domain.ID]domain.AnalysisResult

	loading      bool
	notification string
	notifToken   string

	notifTTL time.Duration
	onNotify func(string)
	persist  domain.StateStore
}

func NewStore(persist domain.StateStore, cfg StoreConfig) *Store {
	ttl := cfg.NotificationTTL
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	return &Store{
		cache:    make(map[domain.ID]domain.AnalysisResult),
		notifTTL: ttl,
		onNotify: cfg.OnNotification,
		persist:  persist,
	}
}

// Hydrate muat snapshot terakhir dari durable storage. Dipanggil sekali
// waktu startup; snapshot kosong bukan error.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	snap, err := s.persist.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap.CurrentCaseID
	if snap.AnalysisCache != nil {
		s.cache = snap.AnalysisCache
	}
	return nil
}

// Get pure read, tidak pernah fallback ke network (keputusan itu punya
// reconciliation Service)
func (s *Store) Get(id domain.ID) *domain.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if res, ok := s.cache[id]; ok {
		return &res
	}
	return nil
}

// Put overwrite entry apapun yang sudah ada, last-write-wins. Aman dipanggil
// dari banyak request in-flight yang balapan di id yang sama.
func (s *Store) Put(id domain.ID, res domain.AnalysisResult) {
	s.mu.Lock()
	s.cache[id] = res
	s.mu.Unlock()
	s.flush()
}

// SetCurrent simpan pointer case aktif
func (s *Store) SetCurrent(id domain.ID) {
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	s.flush()
}

func (s *Store) Current() domain.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Len jumlah entry di cache (buat overview/health)
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// Clear wipe seluruh cache + pointer case aktif. Hanya untuk reset eksplisit
// dari user.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cache = make(map[domain.ID]domain.AnalysisResult)
	s.current = ""
	s.mu.Unlock()
	s.flush()
}

func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetNotification pasang pesan transient yang auto-clear setelah TTL.
// Timer dikunci ke token per pesan: kalau ada pesan baru sebelum TTL habis,
// timer lama cuma boleh clear kalau tokennya masih cocok, jadi pesan baru
// tidak pernah di-stomp timer lama.
func (s *Store) SetNotification(msg string) {
	token := uuid.New().String()

	s.mu.Lock()
	s.notification = msg
	s.notifToken = token
	s.mu.Unlock()

	if s.onNotify != nil {
		s.onNotify(msg)
	}
	if msg == "" {
		return
	}

	time.AfterFunc(s.notifTTL, func() {
		s.mu.Lock()
		if s.notifToken == token {
			s.notification = ""
			s.notifToken = ""
		}
		s.mu.Unlock()
	})
}

func (s *Store) Notification() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notification
}

// Snapshot salinan state yang layak dipersist (field UI tidak ikut)
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cache := make(map[domain.ID]domain.AnalysisResult, len(s.cache))
	for k, v := range s.cache {
		cache[k] = v
	}
	return &domain.Snapshot{
		CurrentCaseID: s.current,
		AnalysisCache: cache,
	}
}

// flush serialize snapshot ke durable storage. Gagal persist tidak
// membatalkan mutasi yang sudah jalan, cukup dicatat.
func (s *Store) flush() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(context.Background(), s.Snapshot()); err != nil {
		log.Printf("state store save error: %v", err)
	}
}
