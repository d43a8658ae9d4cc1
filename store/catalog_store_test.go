package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/catalog-search/internal/errors"
	"github.com/gcbaptista/catalog-search/internal/testutil"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

var _ services.CatalogManager = (*CatalogStore)(nil)

func TestCatalogStore_PutGet(t *testing.T) {
	s := NewCatalogStore("", nil)
	catalog := testutil.CafeCatalog()

	stored, err := s.Put(catalog)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stored.Version)
	assert.Len(t, stored.Items, len(catalog.Items))

	got, err := s.Get(testutil.CafeCatalogID)
	require.NoError(t, err)
	assert.Same(t, stored, got)
}

func TestCatalogStore_PutCopiesInput(t *testing.T) {
	s := NewCatalogStore("", nil)
	catalog := testutil.CafeCatalog()

	stored, err := s.Put(catalog)
	require.NoError(t, err)

	catalog.Items[0].Title = "Changed"
	catalog.Items[0].Tags[0] = "changed"
	assert.Equal(t, "Latte", stored.Items[0].Title)
	assert.Equal(t, "bestseller", stored.Items[0].Tags[0])
}

func TestCatalogStore_PutReplacesSnapshot(t *testing.T) {
	s := NewCatalogStore("", nil)
	catalog := testutil.CafeCatalog()

	first, err := s.Put(catalog)
	require.NoError(t, err)

	catalog.Items = catalog.Items[:1]
	second, err := s.Put(catalog)
	require.NoError(t, err)

	assert.Greater(t, second.Version, first.Version)
	assert.Len(t, first.Items, 12, "previous snapshot must stay intact")
	assert.Len(t, second.Items, 1)
}

func TestCatalogStore_PutInvalid(t *testing.T) {
	s := NewCatalogStore("", nil)

	_, err := s.Put(model.Catalog{ID: "menu", Items: []model.CatalogItem{{ID: "1"}}})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Zero(t, s.Len())
}

func TestCatalogStore_DeleteAndList(t *testing.T) {
	s := NewCatalogStore("", nil)
	for _, id := range []string{"b", "a", "c"} {
		_, err := s.Put(model.Catalog{ID: id})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a", "b", "c"}, s.List())

	require.NoError(t, s.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, s.List())

	err := s.Delete("b")
	assert.True(t, errors.Is(err, apperrors.ErrCatalogNotFound))

	_, err = s.Get("b")
	assert.True(t, errors.Is(err, apperrors.ErrCatalogNotFound))
}

func TestCatalogStore_VersionsNeverRepeat(t *testing.T) {
	s := NewCatalogStore("", nil)

	first, err := s.Put(model.Catalog{ID: "menu"})
	require.NoError(t, err)
	require.NoError(t, s.Delete("menu"))
	second, err := s.Put(model.Catalog{ID: "menu"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Version, second.Version)
}

func TestCatalogStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	s := NewCatalogStore(dir, nil)
	require.NoError(t, s.Load(), "missing file is a fresh start")

	stored, err := s.Put(testutil.CafeCatalog())
	require.NoError(t, err)
	_, err = s.Put(model.Catalog{ID: "bakery", Categories: []model.CatalogCategory{{ID: "bread", Name: "Bread"}}})
	require.NoError(t, err)
	require.NoError(t, s.Delete("bakery"))

	_, err = os.Stat(filepath.Join(dir, CatalogsFileName))
	require.NoError(t, err)

	reloaded := NewCatalogStore(dir, nil)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, []string{testutil.CafeCatalogID}, reloaded.List())
	got, err := reloaded.Get(testutil.CafeCatalogID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	next, err := reloaded.Put(model.Catalog{ID: "bakery"})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), next.Version)
}

func TestCatalogStore_ConcurrentPutsPersistNewestState(t *testing.T) {
	dir := t.TempDir()
	s := NewCatalogStore(dir, nil)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Put(model.Catalog{ID: fmt.Sprintf("catalog-%02d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	reloaded := NewCatalogStore(dir, nil)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.List(), reloaded.List())
	assert.Len(t, reloaded.List(), writers)

	next, err := reloaded.Put(model.Catalog{ID: "late"})
	require.NoError(t, err)
	assert.Equal(t, uint64(writers+1), next.Version)
}

func TestCatalogStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogsFileName), []byte("garbage"), 0600))

	s := NewCatalogStore(dir, nil)
	assert.Error(t, s.Load())
}

func TestCatalogStore_SaveWithoutDataDir(t *testing.T) {
	s := NewCatalogStore("", nil)
	assert.NoError(t, s.Save())
	assert.NoError(t, s.Load())
}
