package memory

import (
	"context"
	"slices"

	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/pets"
)

type CandidatesRepo struct {
	s *Store
}

// ListCandidates emula el anti-join de SQL: los swipes del usuario se
// consultan dentro del mismo lock que el recorrido de mascotas.
func (r *CandidatesRepo) ListCandidates(ctx context.Context, f candidates.Filter) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.Status != pets.StatusAvailable || p.OwnerUserID == f.UserID {
			continue
		}
		if _, swiped := r.s.swipeByKey[swipeKey(f.UserID, p.ID)]; swiped {
			continue
		}
		if len(f.Species) > 0 && !slices.Contains(f.Species, p.Species) {
			continue
		}
		if len(f.Sizes) > 0 && !slices.Contains(f.Sizes, p.Size) {
			continue
		}
		if f.AgeMin != nil && p.AgeMonths < *f.AgeMin {
			continue
		}
		if f.AgeMax != nil && p.AgeMonths > *f.AgeMax {
			continue
		}
		out = append(out, clonePet(p))
	}

	sortNewestFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
