package memory

import (
	"sync"

	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/domain/swipes"
)

// Store es un store en proceso para dev y tests. Todas las tablas comparten
// un mutex para que las restricciones (UNIQUE, FK) se evalúen atómicamente.
// Solo se usa con STORE_DRIVER=memory; nunca como fallback.
type Store struct {
	mu sync.RWMutex

	pets  map[string]pets.Pet
	prefs map[string]preferences.Preferences

	swipes     []swipes.Swipe
	swipeByKey map[string]int // user|pet -> índice en swipes

	matches    map[string]matches.Match
	matchByKey map[string]string // pet|adopter|owner -> id
}

func NewStore() *Store {
	return &Store{
		pets:       make(map[string]pets.Pet),
		prefs:      make(map[string]preferences.Preferences),
		swipeByKey: make(map[string]int),
		matches:    make(map[string]matches.Match),
		matchByKey: make(map[string]string),
	}
}

// Repositories devuelve todos los repos respaldados por este Store.
func (s *Store) Repositories() storage.Repositories {
	return storage.Repositories{
		Pets:        &PetsRepo{s: s},
		Preferences: &PreferencesRepo{s: s},
		Candidates:  &CandidatesRepo{s: s},
		Swipes:      &SwipesRepo{s: s},
		Matches:     &MatchesRepo{s: s},
	}
}

// New es atajo para NewStore().Repositories().
func New() storage.Repositories {
	return NewStore().Repositories()
}
