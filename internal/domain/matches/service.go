package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/datastore"
	"pet-adoption/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	// ErrSelfMatch: el dueño le dio like a su propia mascota; no se forma match.
	ErrSelfMatch = errors.New("owner cannot match own pet")
)

// PetOwnerLookup resuelve el dueño de una mascota (pets.Service lo implementa).
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo     Repository
	pets     PetOwnerLookup
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, petsLookup PetOwnerLookup, notifier notify.Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		pets:     petsLookup,
		notifier: notifier,
		log:      log.With(map[string]any{"component": "matches"}),
		now:      time.Now,
	}
}

// FormFromSwipe forma (o recupera) el match tras un right-swipe.
// ErrNotFound y ErrSelfMatch son fallas "blandas" para el recorder.
func (s *Service) FormFromSwipe(ctx context.Context, petID, adopterID string) (Match, bool, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(adopterID) == "" {
		return Match{}, false, ErrInvalidInput
	}

	ownerID, err := s.ownerOf(ctx, petID)
	if err != nil {
		return Match{}, false, err
	}
	if ownerID == adopterID {
		return Match{}, false, ErrSelfMatch
	}

	return s.findOrCreate(ctx, petID, adopterID, ownerID, notify.SourceSwipe)
}

// CreateFromLike: el dueño confirma un like desde su vista de mascotas.
// Idempotente con FormFromSwipe (misma clave natural).
func (s *Service) CreateFromLike(ctx context.Context, callerID, petID, adopterID string) (Match, bool, error) {
	if strings.TrimSpace(callerID) == "" {
		return Match{}, false, ErrUnauthorized
	}
	if strings.TrimSpace(petID) == "" {
		return Match{}, false, ErrNotFound
	}
	adopterID = strings.TrimSpace(adopterID)
	if adopterID == "" {
		return Match{}, false, fmt.Errorf("%w: adopter_id is required", ErrInvalidInput)
	}

	ownerID, err := s.ownerOf(ctx, petID)
	if err != nil {
		return Match{}, false, err
	}
	if ownerID != callerID {
		return Match{}, false, ErrForbidden
	}
	if adopterID == ownerID {
		return Match{}, false, fmt.Errorf("%w: adopter cannot be the owner", ErrInvalidInput)
	}

	return s.findOrCreate(ctx, petID, adopterID, ownerID, notify.SourceLike)
}

func (s *Service) findOrCreate(ctx context.Context, petID, adopterID, ownerID string, source notify.Source) (Match, bool, error) {
	existing, err := s.repo.Find(ctx, petID, adopterID, ownerID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, datastore.ErrNotFound) {
		return Match{}, false, err
	}

	now := s.now().UTC()
	stored, created, err := s.repo.Insert(ctx, Match{
		ID:        uuid.NewString(),
		PetID:     petID,
		AdopterID: adopterID,
		OwnerID:   ownerID,
		Status:    StatusMatched,
		MatchedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			// FK: la mascota desapareció entre el lookup y el insert.
			return Match{}, false, ErrNotFound
		}
		return Match{}, false, err
	}

	if created {
		s.publish(ctx, stored, source)
	}
	return stored, created, nil
}

func (s *Service) publish(ctx context.Context, m Match, source notify.Source) {
	if s.notifier == nil {
		return
	}
	ev := notify.MatchCreated{
		MatchID:   m.ID,
		PetID:     m.PetID,
		AdopterID: m.AdopterID,
		OwnerID:   m.OwnerID,
		Source:    source,
		MatchedAt: m.MatchedAt,
	}
	if err := s.notifier.MatchCreated(ctx, ev); err != nil {
		s.log.Warn("match created event not published", map[string]any{
			"match_id": m.ID,
			"error":    err,
		})
	}
}

// Get devuelve el match si callerID participa en él.
func (s *Service) Get(ctx context.Context, callerID, id string) (Match, error) {
	if strings.TrimSpace(callerID) == "" {
		return Match{}, ErrUnauthorized
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Match{}, mapStoreErr(err)
	}
	if !m.IsParticipant(callerID) {
		return Match{}, ErrForbidden
	}
	return m, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Match, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListForUser(ctx, userID)
}

// ListByPetOwner: matches de una mascota para su dueño (vista del dueño).
func (s *Service) ListByPetOwner(ctx context.Context, petID, ownerID string) ([]Match, error) {
	return s.repo.ListByPetOwner(ctx, petID, ownerID)
}

func (s *Service) UpdateStatus(ctx context.Context, callerID, id string, status Status) (Match, error) {
	status = Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return Match{}, fmt.Errorf("%w: status must be one of matched, chatting, adopted, closed", ErrInvalidInput)
	}

	m, err := s.Get(ctx, callerID, id)
	if err != nil {
		return Match{}, err
	}
	if m.Status == status {
		return m, nil
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return Match{}, mapStoreErr(err)
	}
	m.Status = status
	m.UpdatedAt = now
	return m, nil
}

func (s *Service) ownerOf(ctx context.Context, petID string) (string, error) {
	ownerID, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) || errors.Is(err, datastore.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return ownerID, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, datastore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
