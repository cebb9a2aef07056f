package swipes

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// Policy decide si un right-swipe forma match directamente.
type Policy string

const (
	// PolicyAuto: un right-swipe forma el match con el dueño.
	PolicyAuto Policy = "auto"
	// PolicyOwnerConfirms: el right-swipe es solo un like; el dueño crea el
	// match desde su vista de mascotas.
	PolicyOwnerConfirms Policy = "owner_confirms"
)

// MatchFormer es el contrato que el recorder usa para formar matches.
// matches.Service lo implementa.
type MatchFormer interface {
	FormFromSwipe(ctx context.Context, petID, adopterID string) (matches.Match, bool, error)
}

type Recorder struct {
	repo   Repository
	former MatchFormer
	policy Policy
	log    logger.Logger
	now    func() time.Time
}

func NewRecorder(repo Repository, former MatchFormer, policy Policy, log logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	if policy != PolicyOwnerConfirms {
		policy = PolicyAuto
	}
	return &Recorder{
		repo:   repo,
		former: former,
		policy: policy,
		log:    log.With(map[string]any{"component": "swipes"}),
		now:    time.Now,
	}
}

// Record guarda la decisión de userID sobre petID.
// Solo devuelve error por input inválido (ErrUnauthorized/ErrInvalidInput).
// Fallas del store o de la formación del match se loguean y se tragan:
// la UI ya avanzó y el próximo like sobre la misma mascota reintenta el match.
func (r *Recorder) Record(ctx context.Context, userID, petID string, dir Direction) (Outcome, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" {
		return Outcome{}, ErrUnauthorized
	}
	if petID == "" {
		return Outcome{}, ErrInvalidInput
	}
	dir, ok := ParseDirection(string(dir))
	if !ok {
		return Outcome{}, ErrInvalidInput
	}

	s := Swipe{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		Direction: dir,
		SwipedAt:  r.now().UTC(),
	}
	out := Outcome{Swipe: s}

	stored, created, err := r.repo.Insert(ctx, s)
	if err != nil {
		r.log.Warn("swipe not persisted", map[string]any{
			"user_id":   userID,
			"pet_id":    petID,
			"direction": string(dir),
			"error":     err,
		})
		return out, nil
	}
	out.Swipe = stored
	out.Recorded = true
	out.Duplicate = !created

	// Gana la dirección guardada: un segundo swipe no cambia la decisión.
	if stored.Direction != DirectionRight || r.policy != PolicyAuto || r.former == nil {
		return out, nil
	}

	m, _, err := r.former.FormFromSwipe(ctx, petID, userID)
	if err != nil {
		if errors.Is(err, matches.ErrSelfMatch) {
			r.log.Debug("self like skipped", map[string]any{"user_id": userID, "pet_id": petID})
			return out, nil
		}
		r.log.Warn("match not formed", map[string]any{
			"user_id": userID,
			"pet_id":  petID,
			"error":   err,
		})
		return out, nil
	}
	out.Match = &m
	return out, nil
}
