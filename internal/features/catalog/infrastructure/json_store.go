package infrastructure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
)

// StoreRepository reads and replaces the persisted lists file.
type StoreRepository interface {
	Load() (*domain.Store, error)
	Save(store *domain.Store) error
}

// jsonStore is the file-backed implementation of StoreRepository.
type jsonStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates a store bound to path. Nothing touches the disk until
// the first Load or Save.
func NewJSONStore(path string) StoreRepository {
	return &jsonStore{path: path}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the store, creating it with defaults when the file does not
// exist and writing back any repaired fields.
func (s *jsonStore) Load() (*domain.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.path, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, os.ErrNotExist) {
		store := domain.DefaultStore()
		log.Info().Str("path", absPath).Msg("store file missing, writing defaults")
		if err := s.write(absPath, &store); err != nil {
			return nil, err
		}
		return &store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", absPath, err)
	}

	var store domain.Store
	if err := json.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &store); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store from %s: %w", absPath, err)
	}

	if store.Repair() {
		log.Info().Str("path", absPath).Msg("store file repaired with default lists")
		if err := s.write(absPath, &store); err != nil {
			return nil, err
		}
	}
	return &store, nil
}

// Save replaces the whole store file.
func (s *jsonStore) Save(store *domain.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.path, err)
	}
	return s.write(absPath, store)
}

func (s *jsonStore) write(absPath string, store *domain.Store) error {
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store to file %s: %w", absPath, err)
	}
	return nil
}
