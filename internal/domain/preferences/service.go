package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/datastore"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Resolve devuelve las preferencias del usuario. found=false es el caso
// "sin preferencias" y no es error. Fallas del store se propagan.
func (s *Service) Resolve(ctx context.Context, userID string) (Preferences, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return Preferences{}, false, ErrUnauthorized
	}
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return Preferences{}, false, nil
		}
		return Preferences{}, false, err
	}
	return p, true, nil
}

// Get es Resolve para el endpoint: sin preferencias => valor vacío.
func (s *Service) Get(ctx context.Context, userID string) (Preferences, error) {
	p, found, err := s.Resolve(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	if !found {
		return Preferences{UserID: userID}, nil
	}
	return p, nil
}

type UpsertInput struct {
	Species       []string
	AgeMin        *int
	AgeMax        *int
	Sizes         []string
	MaxDistanceKm *int
}

func (s *Service) Upsert(ctx context.Context, userID string, in UpsertInput) (Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return Preferences{}, ErrUnauthorized
	}

	species := make([]pets.Species, 0, len(in.Species))
	seenSpecies := map[pets.Species]struct{}{}
	for _, raw := range in.Species {
		sp, ok := pets.ParseSpecies(raw)
		if !ok {
			return Preferences{}, fmt.Errorf("%w: unknown species %q", ErrInvalidInput, raw)
		}
		if _, dup := seenSpecies[sp]; dup {
			continue
		}
		seenSpecies[sp] = struct{}{}
		species = append(species, sp)
	}

	sizes := make([]pets.Size, 0, len(in.Sizes))
	seenSizes := map[pets.Size]struct{}{}
	for _, raw := range in.Sizes {
		sz, ok := pets.ParseSize(raw)
		if !ok {
			return Preferences{}, fmt.Errorf("%w: unknown size %q", ErrInvalidInput, raw)
		}
		if _, dup := seenSizes[sz]; dup {
			continue
		}
		seenSizes[sz] = struct{}{}
		sizes = append(sizes, sz)
	}

	if in.AgeMin != nil && *in.AgeMin < 0 {
		return Preferences{}, fmt.Errorf("%w: age_min must be >= 0", ErrInvalidInput)
	}
	if in.AgeMax != nil && *in.AgeMax < 0 {
		return Preferences{}, fmt.Errorf("%w: age_max must be >= 0", ErrInvalidInput)
	}
	if in.AgeMin != nil && in.AgeMax != nil && *in.AgeMin > *in.AgeMax {
		return Preferences{}, fmt.Errorf("%w: age_min must be <= age_max", ErrInvalidInput)
	}
	if in.MaxDistanceKm != nil && *in.MaxDistanceKm <= 0 {
		return Preferences{}, fmt.Errorf("%w: max_distance_km must be > 0", ErrInvalidInput)
	}

	p := Preferences{
		UserID:        userID,
		Species:       species,
		AgeMin:        in.AgeMin,
		AgeMax:        in.AgeMax,
		Sizes:         sizes,
		MaxDistanceKm: in.MaxDistanceKm,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}
