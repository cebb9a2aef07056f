package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/datastore"
)

type PetsRepo struct {
	s *Store
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.pets[p.ID] = clonePet(p)
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, datastore.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, clonePet(p))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *PetsRepo) UpdateStatus(ctx context.Context, id string, status pets.Status, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok {
		return datastore.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = updatedAt
	r.s.pets[id] = p
	return nil
}

func (r *PetsRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	breed := strings.ToLower(f.Breed)
	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.Status != pets.StatusAvailable {
			continue
		}
		if f.Species != "" && p.Species != f.Species {
			continue
		}
		if breed != "" && !strings.Contains(strings.ToLower(p.Breed), breed) {
			continue
		}
		if len(f.Sizes) > 0 && !slices.Contains(f.Sizes, p.Size) {
			continue
		}
		out = append(out, clonePet(p))
	}
	sortNewestFirst(out)
	return out, nil
}

// sortNewestFirst ordena created_at DESC, id DESC (mismo orden que SQL).
func sortNewestFirst(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func clonePet(p pets.Pet) pets.Pet {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
