package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/ports/datastore"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("pet not found")
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

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Gender      string
	Size        string
	AgeMonths   int
	Description string
	Images      []string
	City        string
	State       string
}

// Create publica un anuncio. Reglas de normalización:
// - species/gender/size en minúsculas; size acepta "extra-large"
// - gender inválido => male, size inválido => medium
// - species fuera del enum => ErrInvalidInput
// - al menos una imagen no vacía
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrUnauthorized
	}

	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	if name == "" || breed == "" || in.AgeMonths < 0 {
		return Pet{}, fmt.Errorf("%w: name, species, breed, age (>= 0), gender and size are required", ErrInvalidInput)
	}

	species, ok := ParseSpecies(in.Species)
	if !ok {
		return Pet{}, fmt.Errorf("%w: species must be one of dog, cat, bird, rabbit, other", ErrInvalidInput)
	}

	rawGender := strings.ToLower(strings.TrimSpace(in.Gender))
	rawSize := strings.TrimSpace(in.Size)
	if rawGender == "" || rawSize == "" {
		return Pet{}, fmt.Errorf("%w: name, species, breed, age (>= 0), gender and size are required", ErrInvalidInput)
	}
	gender := Gender(rawGender)
	if !gender.Valid() {
		gender = GenderMale
	}
	size, ok := ParseSize(rawSize)
	if !ok {
		size = SizeMedium
	}

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if v := strings.TrimSpace(img); v != "" {
			images = append(images, v)
		}
	}
	if len(images) == 0 {
		return Pet{}, fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	}

	var location string
	city, state := strings.TrimSpace(in.City), strings.TrimSpace(in.State)
	if city != "" && state != "" {
		location = city + ", " + state
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Species:     species,
		Breed:       breed,
		Gender:      gender,
		Size:        size,
		AgeMonths:   in.AgeMonths,
		Description: strings.TrimSpace(in.Description),
		Status:      StatusAvailable,
		Images:      images,
		Location:    location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, mapStoreErr(err)
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type SearchInput struct {
	Species string
	Breed   string
	Sizes   []string
}

// Search busca anuncios disponibles de cualquier dueño. species y size se
// normalizan igual que en Create pero un valor inválido es ErrInvalidInput.
func (s *Service) Search(ctx context.Context, callerID string, in SearchInput) ([]Pet, error) {
	if strings.TrimSpace(callerID) == "" {
		return nil, ErrUnauthorized
	}

	var f SearchFilter
	if raw := strings.TrimSpace(in.Species); raw != "" {
		species, ok := ParseSpecies(raw)
		if !ok {
			return nil, fmt.Errorf("%w: species must be one of dog, cat, bird, rabbit, other", ErrInvalidInput)
		}
		f.Species = species
	}
	f.Breed = strings.TrimSpace(in.Breed)

	seen := make(map[Size]struct{}, len(in.Sizes))
	for _, raw := range in.Sizes {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		size, ok := ParseSize(raw)
		if !ok {
			return nil, fmt.Errorf("%w: size must be one of small, medium, large, extra_large", ErrInvalidInput)
		}
		if _, dup := seen[size]; dup {
			continue
		}
		seen[size] = struct{}{}
		f.Sizes = append(f.Sizes, size)
	}

	return s.repo.Search(ctx, f)
}

// UpdateStatus cambia el estado del anuncio. Solo el dueño.
func (s *Service) UpdateStatus(ctx context.Context, petID, callerID string, status Status) (Pet, error) {
	if strings.TrimSpace(callerID) == "" {
		return Pet{}, ErrUnauthorized
	}
	status = Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return Pet{}, fmt.Errorf("%w: status must be one of available, pending, adopted, removed", ErrInvalidInput)
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != callerID {
		return Pet{}, ErrForbidden
	}
	if p.Status == status {
		return p, nil
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, petID, status, now); err != nil {
		return Pet{}, mapStoreErr(err)
	}
	p.Status = status
	p.UpdatedAt = now
	return p, nil
}

// OwnerOf expone el ownerUserID de una mascota.
// Lo usan matches y ownerview sin importar el Service completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, datastore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
