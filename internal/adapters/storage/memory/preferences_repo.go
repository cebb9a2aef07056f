package memory

import (
	"context"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/ports/datastore"
)

type PreferencesRepo struct {
	s *Store
}

func (r *PreferencesRepo) Get(ctx context.Context, userID string) (preferences.Preferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.prefs[userID]
	if !ok {
		return preferences.Preferences{}, datastore.ErrNotFound
	}
	return clonePrefs(p), nil
}

func (r *PreferencesRepo) Upsert(ctx context.Context, p preferences.Preferences) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.prefs[p.UserID] = clonePrefs(p)
	return nil
}

func clonePrefs(p preferences.Preferences) preferences.Preferences {
	if p.Species != nil {
		p.Species = append([]pets.Species(nil), p.Species...)
	}
	if p.Sizes != nil {
		p.Sizes = append([]pets.Size(nil), p.Sizes...)
	}
	p.AgeMin = cloneInt(p.AgeMin)
	p.AgeMax = cloneInt(p.AgeMax)
	p.MaxDistanceKm = cloneInt(p.MaxDistanceKm)
	return p
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
