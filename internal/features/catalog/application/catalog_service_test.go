package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

type memoryRepo struct {
	store   domain.Store
	saves   int
	loadErr error
}

func (m *memoryRepo) Load() (*domain.Store, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	copied := m.store
	return &copied, nil
}

func (m *memoryRepo) Save(store *domain.Store) error {
	m.store = *store
	m.saves++
	return nil
}

func TestUpdateListsCleansItems(t *testing.T) {
	repo := &memoryRepo{store: domain.DefaultStore()}
	svc := NewCatalogService(repo)

	err := svc.UpdateLists(map[string][]string{
		" sector ": {" retail ", "", "  ", "health"},
		"mood":     nil,
	})
	require.NoError(t, err)

	lists, err := svc.Lists()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"sector": {"retail", "health"},
		"mood":   {},
	}, lists)
	assert.Equal(t, 1, repo.saves)
}

func TestUpdateListsRejectsBlankName(t *testing.T) {
	repo := &memoryRepo{store: domain.DefaultStore()}
	err := NewCatalogService(repo).UpdateLists(map[string][]string{"  ": {"x"}})
	require.Error(t, err)
	assert.True(t, validation.Is(err))
	assert.Zero(t, repo.saves)
}

func TestUpdateListsRejectsNamesThatCollideAfterTrim(t *testing.T) {
	repo := &memoryRepo{store: domain.DefaultStore()}
	err := NewCatalogService(repo).UpdateLists(map[string][]string{"sector": {"a"}, "sector ": {"b"}})
	require.Error(t, err)
	assert.True(t, validation.Is(err))
}

func TestUpdateLanguagesNormalizes(t *testing.T) {
	repo := &memoryRepo{store: domain.DefaultStore()}
	svc := NewCatalogService(repo)

	require.NoError(t, svc.UpdateLanguages([]string{" EN", "es", "en", "", "pt"}))
	langs, err := svc.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es", "pt"}, langs)
}

func TestUpdateLanguagesRequiresOne(t *testing.T) {
	repo := &memoryRepo{store: domain.DefaultStore()}
	err := NewCatalogService(repo).UpdateLanguages([]string{" ", ""})
	require.Error(t, err)
	assert.True(t, validation.Is(err))
}

func TestListsPropagatesLoadError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := NewCatalogService(&memoryRepo{loadErr: boom}).Lists()
	assert.ErrorIs(t, err, boom)
}
