package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/internal/errors"
	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

// ManagerConfig holds the session manager settings.
type ManagerConfig struct {
	Debounce        time.Duration // 0 commits every query immediately; negative selects DefaultDebounce
	IdleTimeout     time.Duration // sessions unused for longer are removed by the cleanup loop
	CleanupInterval time.Duration
}

// Manager owns the live search sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	latest   map[string]*model.Catalog // newest snapshot pushed per catalog id
	stopChan chan struct{}
	stopOnce sync.Once
	stopped  bool
	wg       sync.WaitGroup

	searcher  services.Searcher
	cfg       ManagerConfig
	scheduler Scheduler
	now       func() time.Time
	logger    *zap.Logger
	stats     *Stats
	listener  Listener
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerScheduler sets the scheduler handed to every new session.
func WithManagerScheduler(s Scheduler) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.scheduler = s
		}
	}
}

// WithManagerClock replaces the clock used for idle tracking.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithManagerLogger sets the manager logger.
func WithManagerLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger.OrNop(l) }
}

// WithCommitListener registers a callback invoked for every committed query of every session.
func WithCommitListener(l Listener) ManagerOption {
	return func(m *Manager) { m.listener = l }
}

// NewManager creates a session manager. Zero timeouts fall back to defaults.
func NewManager(searcher services.Searcher, cfg ManagerConfig, opts ...ManagerOption) *Manager {
	if cfg.Debounce < 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 15 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	m := &Manager{
		sessions:  make(map[string]*Session),
		latest:    make(map[string]*model.Catalog),
		stopChan:  make(chan struct{}),
		searcher:  searcher,
		cfg:       cfg,
		scheduler: SystemScheduler,
		now:       time.Now,
		logger:    zap.NewNop(),
		stats:     NewStats(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins the idle-session cleanup routine
func (m *Manager) Start() {
	m.logger.Info("session manager started",
		zap.Duration("debounce", m.cfg.Debounce),
		zap.Duration("idle_timeout", m.cfg.IdleTimeout),
	)

	m.wg.Add(1)
	go m.cleanupRoutine()
}

// Stop shuts down the cleanup routine and cancels the pending commits of every session
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.wg.Wait()

		m.mu.Lock()
		m.stopped = true
		for _, s := range m.sessions {
			s.Close()
		}
		m.mu.Unlock()

		m.logger.Info("session manager stopped")
	})
}

// Create opens a new session over catalog and returns it.
// If a newer snapshot of the same catalog was already refreshed, the session starts on that one.
func (m *Manager) Create(catalog *model.Catalog) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return nil, errors.ErrManagerStopped
	}
	if catalog != nil {
		if newer, ok := m.latest[catalog.ID]; ok && newer.Version > catalog.Version {
			catalog = newer
		}
	}

	id := uuid.New().String()
	s := New(m.searcher, catalog,
		WithID(id),
		WithDebounce(m.cfg.Debounce),
		WithScheduler(m.scheduler),
		WithClock(m.now),
		WithLogger(m.logger),
		WithListener(m.onCommit),
	)

	m.sessions[id] = s
	m.stats.RecordCreated()
	m.stats.SetActive(len(m.sessions))
	m.logger.Debug("created session", zap.String("session_id", id), zap.String("catalog_id", s.CatalogID()))
	return s, nil
}

// Get retrieves a session by ID
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[sessionID]
	if !exists {
		return nil, errors.NewSessionNotFoundError(sessionID)
	}
	return s, nil
}

// Delete closes and removes a session.
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, exists := m.sessions[sessionID]
	if !exists {
		return errors.NewSessionNotFoundError(sessionID)
	}

	s.Close()
	delete(m.sessions, sessionID)
	m.stats.RecordDeleted()
	m.stats.SetActive(len(m.sessions))
	return nil
}

// List returns the ids of all live sessions, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RefreshCatalog pushes a new catalog snapshot to every session bound to its id and returns how many were updated.
// Sessions already holding a newer version of the catalog keep it.
func (m *Manager) RefreshCatalog(catalog *model.Catalog) int {
	m.mu.Lock()
	if held, ok := m.latest[catalog.ID]; !ok || catalog.Version >= held.Version {
		m.latest[catalog.ID] = catalog
	}
	sessions := m.sessionsForCatalogLocked(catalog.ID)
	m.mu.Unlock()

	n := 0
	for _, s := range sessions {
		if s.SetCatalog(catalog) {
			n++
		}
	}

	if n > 0 {
		m.logger.Debug("refreshed sessions", zap.String("catalog_id", catalog.ID), zap.Uint64("version", catalog.Version), zap.Int("sessions", n))
	}
	return n
}

// DropCatalog removes every session bound to catalogID and returns how many were removed.
func (m *Manager) DropCatalog(catalogID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.latest, catalogID)

	dropped := 0
	for id, s := range m.sessions {
		if s.CatalogID() == catalogID {
			s.Close()
			delete(m.sessions, id)
			m.stats.RecordDeleted()
			dropped++
		}
	}
	m.stats.SetActive(len(m.sessions))
	return dropped
}

// GetStats returns the current session statistics.
func (m *Manager) GetStats() StatsData {
	return m.stats.GetStats()
}

func (m *Manager) sessionsForCatalogLocked(catalogID string) []*Session {
	var matching []*Session
	for _, s := range m.sessions {
		if s.CatalogID() == catalogID {
			matching = append(matching, s)
		}
	}
	return matching
}

func (m *Manager) onCommit(snapshot services.SearchResult) {
	m.stats.RecordCommit()
	if m.listener != nil {
		m.listener(snapshot)
	}
}

// cleanupRoutine runs periodic idle-session cleanup
func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupIdleSessions(m.cfg.IdleTimeout)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupIdleSessions removes sessions not used within maxIdle and returns how many were removed.
func (m *Manager) CleanupIdleSessions(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	cleaned := 0

	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			s.Close()
			delete(m.sessions, id)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.stats.RecordExpired(cleaned)
		m.stats.SetActive(len(m.sessions))
		m.logger.Info("cleaned up idle sessions", zap.Int("count", cleaned))
	}
	return cleaned
}
