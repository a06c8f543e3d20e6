package domain

// Built-in category keys. Anything else is a user-defined category.
const (
	ListSector      = "sector"
	ListAudience    = "audience"
	ListProblem     = "problem"
	ListProductType = "productType"
	ListChannel     = "channel"
	ListPattern     = "pattern"
	ListStack       = "stack"
)

// BuiltinLists is the ordered set of categories shipped with the defaults.
var BuiltinLists = []string{
	ListSector,
	ListAudience,
	ListProblem,
	ListProductType,
	ListChannel,
	ListPattern,
	ListStack,
}

// Store is the persisted shape of the lists file.
type Store struct {
	Lists     map[string][]string `json:"lists"`
	Languages []string            `json:"languages"`
}

// DefaultStore returns a fresh copy of the built-in lists and languages.
func DefaultStore() Store {
	return Store{
		Lists: map[string][]string{
			ListSector:      {"finanzas", "salud", "educacion"},
			ListAudience:    {"nomadas digitales", "freelancers", "pymes"},
			ListProblem:     {"gestion de ingresos", "organizacion de tareas"},
			ListProductType: {"saas", "mobile app"},
			ListChannel:     {"seo", "comunidades"},
			ListPattern:     {"ddd", "hexagonal", "mvc"},
			ListStack:       {"typescript", "go", "python"},
		},
		Languages: []string{"es", "en"},
	}
}

// Repair fills whatever newer defaults introduced and the stored copy lacks.
// It reports whether anything changed.
func (s *Store) Repair() bool {
	defaults := DefaultStore()
	changed := false
	if s.Lists == nil {
		s.Lists = map[string][]string{}
		changed = true
	}
	for _, name := range BuiltinLists {
		if list, ok := s.Lists[name]; !ok || list == nil {
			s.Lists[name] = defaults.Lists[name]
			changed = true
		}
	}
	if len(s.Languages) == 0 {
		s.Languages = defaults.Languages
		changed = true
	}
	return changed
}
