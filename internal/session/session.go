// Package session implements debounced, per-user search sessions over a catalog snapshot.
package session

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

// DefaultDebounce is the quiet period before a non-empty query is committed.
const DefaultDebounce = 300 * time.Millisecond

// Listener is notified with the new snapshot every time the committed result changes.
// It runs without the session lock held.
type Listener func(snapshot services.SearchResult)

// Session tracks the query a user is typing and the result of the last committed query.
//
// SetQuery updates the raw query immediately and commits it after the debounce interval;
// an empty query commits without delay. Results are recomputed only when the committed
// query or the catalog version changes.
type Session struct {
	mu sync.Mutex

	id        string
	searcher  services.Searcher
	scheduler Scheduler
	debounce  time.Duration
	listener  Listener
	logger    *zap.Logger
	now       func() time.Time

	catalog    *model.Catalog
	raw        string
	committed  string
	active     bool
	timer      Timer
	generation uint64 // bumped whenever the pending timer is replaced or cancelled

	memo       *memoEntry
	recomputes int
	lastAccess time.Time
}

type memoEntry struct {
	query     string
	catalogID string
	version   uint64
	result    services.SearchResult
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) {
		if s != nil {
			sess.scheduler = s
		}
	}
}

// WithDebounce sets the debounce interval. Negative values are treated as zero.
func WithDebounce(d time.Duration) Option {
	return func(sess *Session) {
		if d < 0 {
			d = 0
		}
		sess.debounce = d
	}
}

// WithListener registers a callback for committed results.
func WithListener(l Listener) Option {
	return func(sess *Session) { sess.listener = l }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(sess *Session) { sess.logger = logger.OrNop(l) }
}

// WithID sets the session identifier.
func WithID(id string) Option {
	return func(sess *Session) { sess.id = id }
}

// WithClock replaces the clock used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(sess *Session) {
		if now != nil {
			sess.now = now
		}
	}
}

// New creates a session searching catalog with searcher.
func New(searcher services.Searcher, catalog *model.Catalog, opts ...Option) *Session {
	s := &Session{
		searcher:  searcher,
		scheduler: SystemScheduler,
		debounce:  DefaultDebounce,
		logger:    zap.NewNop(),
		now:       time.Now,
		catalog:   catalog,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = &model.Catalog{}
	}
	s.lastAccess = s.now()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// CatalogID returns the id of the catalog the session searches.
func (s *Session) CatalogID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ID
}

// SetQuery records the raw query and (re)arms the debounce timer, cancelling any pending one.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = query
	s.active = strings.TrimSpace(query) != "" || s.committed != ""
	s.lastAccess = s.now()

	s.stopTimerLocked()
	generation := s.generation

	delay := s.debounce
	if strings.TrimSpace(query) == "" {
		delay = 0
	}
	s.timer = s.scheduler.AfterFunc(delay, func() { s.commit(generation) })
}

// Clear resets the raw and committed query synchronously.
func (s *Session) Clear() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.raw = ""
	s.committed = ""
	s.active = false
	s.lastAccess = s.now()
	snapshot, changed := s.refreshLocked()
	listener := s.listener
	s.mu.Unlock()

	if changed && listener != nil {
		listener(snapshot)
	}
}

// SetCatalog replaces the catalog snapshot and recomputes the committed query against it.
// A snapshot of the same catalog older than the one held is ignored and false is returned.
func (s *Session) SetCatalog(catalog *model.Catalog) bool {
	if catalog == nil {
		catalog = &model.Catalog{}
	}

	s.mu.Lock()
	if catalog.ID == s.catalog.ID && catalog.Version < s.catalog.Version {
		held := s.catalog.Version
		s.mu.Unlock()
		s.logger.Debug("ignored stale catalog",
			zap.String("session_id", s.id),
			zap.String("catalog_id", catalog.ID),
			zap.Uint64("version", catalog.Version),
			zap.Uint64("held_version", held),
		)
		return false
	}
	s.catalog = catalog
	snapshot, changed := s.refreshLocked()
	listener := s.listener
	s.mu.Unlock()

	if changed && listener != nil {
		listener(snapshot)
	}
	return true
}

// Snapshot returns the result for the committed query together with the current raw query state.
func (s *Session) Snapshot() services.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccess = s.now()
	snapshot, _ := s.refreshLocked()
	return snapshot
}

// IsSearching reports whether a typed query has not been committed yet.
func (s *Session) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSearchingLocked()
}

// IsActive reports whether the user has started a search that was neither cleared nor committed empty.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// PopularCategories returns the catalog's most populated categories regardless of the query.
func (s *Session) PopularCategories() []model.CatalogCategory {
	s.mu.Lock()
	catalog := s.catalog
	s.mu.Unlock()
	return s.searcher.PopularCategories(catalog)
}

// Recomputes returns how many times results were computed.
func (s *Session) Recomputes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputes
}

// LastAccess returns the last time the session was used.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Close cancels any pending commit. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// commit runs when a debounce timer fires. Timers replaced after they were armed are ignored.
func (s *Session) commit(generation uint64) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.committed = strings.TrimSpace(s.raw)
	if s.committed == "" {
		s.active = false
	}
	snapshot, changed := s.refreshLocked()
	listener := s.listener
	s.mu.Unlock()

	s.logger.Debug("query committed",
		zap.String("session_id", s.id),
		zap.String("query", snapshot.DebouncedQuery),
		zap.Int("results", snapshot.ResultCount),
		zap.Bool("recomputed", changed),
	)

	if listener != nil {
		listener(snapshot)
	}
}

// refreshLocked recomputes the memoized result if its inputs changed and returns the current snapshot.
func (s *Session) refreshLocked() (services.SearchResult, bool) {
	changed := false
	if s.memo == nil || s.memo.query != s.committed || s.memo.catalogID != s.catalog.ID || s.memo.version != s.catalog.Version {
		s.memo = &memoEntry{
			query:     s.committed,
			catalogID: s.catalog.ID,
			version:   s.catalog.Version,
			result:    s.searcher.Search(s.committed, s.catalog),
		}
		s.recomputes++
		changed = true
	}

	snapshot := s.memo.result
	snapshot.Query = s.raw
	snapshot.DebouncedQuery = s.committed
	snapshot.IsSearching = s.isSearchingLocked()
	return snapshot, changed
}

func (s *Session) isSearchingLocked() bool {
	return strings.TrimSpace(s.raw) != s.committed
}

func (s *Session) stopTimerLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
