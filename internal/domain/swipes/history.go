package swipes

import (
	"context"
	"errors"
	"strings"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
)

// PetReader resuelve mascotas por id (pets.Service).
type PetReader interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// MatchLister lista los matches de un usuario (matches.Service).
type MatchLister interface {
	ListForUser(ctx context.Context, userID string) ([]matches.Match, error)
}

// History sirve las vistas de lectura del adoptante: historial y likes.
type History struct {
	repo    Repository
	pets    PetReader
	matches MatchLister
}

func NewHistory(repo Repository, petReader PetReader, matchLister MatchLister) *History {
	return &History{repo: repo, pets: petReader, matches: matchLister}
}

// Swipes devuelve el historial del usuario, más recientes primero.
func (h *History) Swipes(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	items, err := h.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntry, 0, len(items))
	for _, s := range items {
		entry := HistoryEntry{Swipe: s}
		p, err := h.pets.GetByID(ctx, s.PetID)
		switch {
		case err == nil:
			entry.Pet = &p
		case errors.Is(err, pets.ErrNotFound):
		default:
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Liked devuelve las mascotas con right-swipe del usuario que todavía no
// tienen match donde él sea el adoptante.
func (h *History) Liked(ctx context.Context, userID string) ([]pets.Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	items, err := h.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ms, err := h.matches.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := make(map[string]struct{}, len(ms))
	for _, m := range ms {
		if m.AdopterID == userID {
			matched[m.PetID] = struct{}{}
		}
	}

	out := make([]pets.Pet, 0)
	for _, s := range items {
		if s.Direction != DirectionRight {
			continue
		}
		if _, ok := matched[s.PetID]; ok {
			continue
		}
		p, err := h.pets.GetByID(ctx, s.PetID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
