package application

import (
	"fmt"
	"strings"

	"github.com/IAnMove/ideagenerator/internal/features/catalog/infrastructure"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

// CatalogService defines the interface for list and language management.
type CatalogService interface {
	Lists() (map[string][]string, error)
	UpdateLists(lists map[string][]string) error
	Languages() ([]string, error)
	UpdateLanguages(languages []string) error
}

// catalogService is the implementation of CatalogService.
type catalogService struct {
	repo infrastructure.StoreRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(repo infrastructure.StoreRepository) CatalogService {
	return &catalogService{repo: repo}
}

// Lists returns every stored category list.
func (s *catalogService) Lists() (map[string][]string, error) {
	store, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	return store.Lists, nil
}

// UpdateLists replaces the stored lists. Keys and items are trimmed and
// blank items dropped.
func (s *catalogService) UpdateLists(lists map[string][]string) error {
	cleaned := make(map[string][]string, len(lists))
	for key, items := range lists {
		key = strings.TrimSpace(key)
		if key == "" {
			return validation.Errorf("list names must not be empty")
		}
		if _, dup := cleaned[key]; dup {
			return validation.Errorf("duplicate list name: %s", key)
		}
		cleaned[key] = cleanItems(items)
	}

	store, err := s.repo.Load()
	if err != nil {
		return err
	}
	store.Lists = cleaned
	if err := s.repo.Save(store); err != nil {
		return fmt.Errorf("failed to save lists: %w", err)
	}
	return nil
}

// Languages returns the supported UI languages.
func (s *catalogService) Languages() ([]string, error) {
	store, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	return store.Languages, nil
}

// UpdateLanguages replaces the language list with a trimmed, lowercased,
// de-duplicated copy.
func (s *catalogService) UpdateLanguages(languages []string) error {
	seen := make(map[string]struct{}, len(languages))
	cleaned := make([]string, 0, len(languages))
	for _, lang := range languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		cleaned = append(cleaned, lang)
	}
	if len(cleaned) == 0 {
		return validation.Errorf("at least one language is required")
	}

	store, err := s.repo.Load()
	if err != nil {
		return err
	}
	store.Languages = cleaned
	if err := s.repo.Save(store); err != nil {
		return fmt.Errorf("failed to save languages: %w", err)
	}
	return nil
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
