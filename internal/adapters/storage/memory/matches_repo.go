package memory

import (
	"context"
	"sort"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/ports/datastore"
)

type MatchesRepo struct {
	s *Store
}

func matchKey(petID, adopterID, ownerID string) string {
	return petID + "|" + adopterID + "|" + ownerID
}

func (r *MatchesRepo) Find(ctx context.Context, petID, adopterID, ownerID string) (matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.matchByKey[matchKey(petID, adopterID, ownerID)]
	if !ok {
		return matches.Match{}, datastore.ErrNotFound
	}
	return r.s.matches[id], nil
}

func (r *MatchesRepo) Insert(ctx context.Context, m matches.Match) (matches.Match, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[m.PetID]; !ok {
		return matches.Match{}, false, datastore.ErrNotFound
	}
	k := matchKey(m.PetID, m.AdopterID, m.OwnerID)
	if id, ok := r.s.matchByKey[k]; ok {
		return r.s.matches[id], false, nil
	}
	r.s.matches[m.ID] = m
	r.s.matchByKey[k] = m.ID
	return m, true, nil
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.matches[id]
	if !ok {
		return matches.Match{}, datastore.ErrNotFound
	}
	return m, nil
}

func (r *MatchesRepo) ListForUser(ctx context.Context, userID string) ([]matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]matches.Match, 0)
	for _, m := range r.s.matches {
		if m.IsParticipant(userID) {
			out = append(out, m)
		}
	}
	sortMatchesNewestFirst(out)
	return out, nil
}

func (r *MatchesRepo) ListByPetOwner(ctx context.Context, petID, ownerID string) ([]matches.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]matches.Match, 0)
	for _, m := range r.s.matches {
		if m.PetID == petID && m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	sortMatchesNewestFirst(out)
	return out, nil
}

func (r *MatchesRepo) UpdateStatus(ctx context.Context, id string, status matches.Status, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.matches[id]
	if !ok {
		return datastore.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = updatedAt
	r.s.matches[id] = m
	return nil
}

func sortMatchesNewestFirst(items []matches.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].MatchedAt.Equal(items[j].MatchedAt) {
			return items[i].MatchedAt.After(items[j].MatchedAt)
		}
		return items[i].ID > items[j].ID
	})
}
