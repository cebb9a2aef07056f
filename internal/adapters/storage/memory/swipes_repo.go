package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/ports/datastore"
)

type SwipesRepo struct {
	s *Store
}

func swipeKey(userID, petID string) string {
	return userID + "|" + petID
}

func (r *SwipesRepo) Insert(ctx context.Context, sw swipes.Swipe) (swipes.Swipe, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// FK swipes.pet_id -> pets.id
	if _, ok := r.s.pets[sw.PetID]; !ok {
		return swipes.Swipe{}, false, datastore.ErrNotFound
	}
	k := swipeKey(sw.UserID, sw.PetID)
	if idx, ok := r.s.swipeByKey[k]; ok {
		return r.s.swipes[idx], false, nil
	}
	r.s.swipes = append(r.s.swipes, sw)
	r.s.swipeByKey[k] = len(r.s.swipes) - 1
	return sw, true, nil
}

func (r *SwipesRepo) ListByUser(ctx context.Context, userID string) ([]swipes.Swipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]swipes.Swipe, 0)
	for _, sw := range r.s.swipes {
		if sw.UserID == userID {
			out = append(out, sw)
		}
	}
	sortSwipesNewestFirst(out)
	return out, nil
}

func (r *SwipesRepo) ListLikesByPet(ctx context.Context, petID string) ([]swipes.Swipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]swipes.Swipe, 0)
	for _, sw := range r.s.swipes {
		if sw.PetID == petID && sw.Direction == swipes.DirectionRight {
			out = append(out, sw)
		}
	}
	sortSwipesNewestFirst(out)
	return out, nil
}

func sortSwipesNewestFirst(items []swipes.Swipe) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].SwipedAt.Equal(items[j].SwipedAt) {
			return items[i].SwipedAt.After(items[j].SwipedAt)
		}
		return items[i].ID > items[j].ID
	})
}
