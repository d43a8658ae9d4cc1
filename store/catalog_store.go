package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/gcbaptista/catalog-search/internal/errors"
	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/internal/metrics"
	"github.com/gcbaptista/catalog-search/internal/persistence"
	"github.com/gcbaptista/catalog-search/model"
)

// CatalogsFileName is the name of the persisted catalog snapshot inside the data directory.
const CatalogsFileName = "catalogs.gob"

// CatalogStore holds the current snapshot of every catalog.
// Stored catalogs are never mutated; Put replaces the snapshot and assigns a new version.
type CatalogStore struct {
	mu          sync.RWMutex
	catalogs    map[string]*model.Catalog
	lastVersion uint64

	saveMu   sync.Mutex // orders encode and rename so the newest state is written last
	filePath string     // empty disables persistence
	logger   *zap.Logger
}

// gobCatalogStoreData is a helper struct for Gob encoding/decoding CatalogStore data.
// It excludes the mutex.
type gobCatalogStoreData struct {
	Catalogs    map[string]*model.Catalog
	LastVersion uint64
}

// NewCatalogStore creates an empty store. When dataDir is non-empty, catalogs are
// persisted to dataDir/catalogs.gob after every change.
func NewCatalogStore(dataDir string, l *zap.Logger) *CatalogStore {
	s := &CatalogStore{
		catalogs: make(map[string]*model.Catalog),
		logger:   logger.OrNop(l),
	}
	if dataDir != "" {
		s.filePath = filepath.Join(dataDir, CatalogsFileName)
	}
	return s
}

// Load restores the persisted catalogs. A missing file is a fresh start.
func (s *CatalogStore) Load() error {
	if s.filePath == "" {
		return nil
	}

	err := persistence.LoadGob(s.filePath, s)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("no persisted catalogs found, starting fresh", zap.String("path", s.filePath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load catalogs: %w", err)
	}

	s.logger.Info("loaded persisted catalogs", zap.String("path", s.filePath), zap.Int("catalogs", s.Len()))
	metrics.CatalogsStored.Set(float64(s.Len()))
	return nil
}

// Put validates catalog and stores a copy of it under its id with a new version.
func (s *CatalogStore) Put(catalog model.Catalog) (*model.Catalog, error) {
	if err := catalog.Validate(); err != nil {
		return nil, apperrors.NewValidationError("catalog", err.Error())
	}

	stored := catalog.Clone()

	s.mu.Lock()
	s.lastVersion++
	stored.Version = s.lastVersion
	s.catalogs[stored.ID] = stored
	count := len(s.catalogs)
	s.mu.Unlock()

	metrics.CatalogsStored.Set(float64(count))
	s.persist()
	s.logger.Debug("stored catalog",
		zap.String("catalog_id", stored.ID),
		zap.Uint64("version", stored.Version),
		zap.Int("items", len(stored.Items)),
		zap.Int("categories", len(stored.Categories)),
	)
	return stored, nil
}

// Get returns the current snapshot of a catalog. The snapshot must not be modified.
func (s *CatalogStore) Get(catalogID string) (*model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	catalog, exists := s.catalogs[catalogID]
	if !exists {
		return nil, apperrors.NewCatalogNotFoundError(catalogID)
	}
	return catalog, nil
}

// Delete removes a catalog.
func (s *CatalogStore) Delete(catalogID string) error {
	s.mu.Lock()
	if _, exists := s.catalogs[catalogID]; !exists {
		s.mu.Unlock()
		return apperrors.NewCatalogNotFoundError(catalogID)
	}
	delete(s.catalogs, catalogID)
	count := len(s.catalogs)
	s.mu.Unlock()

	metrics.CatalogsStored.Set(float64(count))
	s.persist()
	return nil
}

// List returns the ids of all stored catalogs, sorted.
func (s *CatalogStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.catalogs))
	for id := range s.catalogs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of stored catalogs.
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.catalogs)
}

// Save writes the catalogs to the data directory. Concurrent saves run one at a time.
func (s *CatalogStore) Save() error {
	if s.filePath == "" {
		return nil
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := persistence.SaveGob(s.filePath, s); err != nil {
		return fmt.Errorf("failed to save catalogs: %w", err)
	}
	return nil
}

// persist saves after a change. Failures are logged; the in-memory state stays authoritative.
func (s *CatalogStore) persist() {
	if err := s.Save(); err != nil {
		s.logger.Warn("failed to persist catalogs", zap.Error(err))
	}
}

// GobEncode implements the gob.GobEncoder interface for CatalogStore.
func (s *CatalogStore) GobEncode() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dataToEncode := gobCatalogStoreData{
		Catalogs:    s.catalogs,
		LastVersion: s.lastVersion,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode catalog store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for CatalogStore.
func (s *CatalogStore) GobDecode(data []byte) error {
	decodedData := gobCatalogStoreData{}

	decoder := gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode catalog store data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalogs = decodedData.Catalogs
	s.lastVersion = decodedData.LastVersion

	// Ensure the map is initialized if it was nil after decoding
	if s.catalogs == nil {
		s.catalogs = make(map[string]*model.Catalog)
	}
	return nil
}
