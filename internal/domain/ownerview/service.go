package ownerview

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/swipes"

	"golang.org/x/sync/errgroup"
)

var ErrUnauthorized = errors.New("unauthorized")

// Concurrencia por defecto al agregar mascotas.
const DefaultConcurrency = 4

type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type LikeLister interface {
	ListLikesByPet(ctx context.Context, petID string) ([]swipes.Swipe, error)
}

type MatchLister interface {
	ListByPetOwner(ctx context.Context, petID, ownerID string) ([]matches.Match, error)
}

// Like es un right-swipe visto desde el dueño.
type Like struct {
	UserID   string
	SwipedAt time.Time
}

// PetSummary es una mascota del dueño con sus likes y matches.
// PotentialContacts = usuarios que dieron like y aún no tienen match.
type PetSummary struct {
	Pet               pets.Pet
	LikeCount         int
	Likes             []Like
	Matches           []matches.Match
	PotentialContacts []string
}

type Service struct {
	pets        PetLister
	likes       LikeLister
	matches     MatchLister
	concurrency int
}

func NewService(petLister PetLister, likeLister LikeLister, matchLister MatchLister) *Service {
	return &Service{
		pets:        petLister,
		likes:       likeLister,
		matches:     matchLister,
		concurrency: DefaultConcurrency,
	}
}

// MyPets arma la vista del dueño. El orden de las mascotas es el del store
// (más recientes primero); la agregación por mascota corre en paralelo.
func (s *Service) MyPets(ctx context.Context, ownerID string) ([]PetSummary, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrUnauthorized
	}

	items, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]PetSummary, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, p := range items {
		g.Go(func() error {
			summary, err := s.summarize(gctx, ownerID, p)
			if err != nil {
				return err
			}
			out[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) summarize(ctx context.Context, ownerID string, p pets.Pet) (PetSummary, error) {
	likes, err := s.likes.ListLikesByPet(ctx, p.ID)
	if err != nil {
		return PetSummary{}, err
	}
	ms, err := s.matches.ListByPetOwner(ctx, p.ID, ownerID)
	if err != nil {
		return PetSummary{}, err
	}

	matched := make(map[string]struct{}, len(ms))
	for _, m := range ms {
		matched[m.AdopterID] = struct{}{}
	}

	summary := PetSummary{
		Pet:               p,
		LikeCount:         len(likes),
		Likes:             make([]Like, 0, len(likes)),
		Matches:           ms,
		PotentialContacts: make([]string, 0),
	}
	if summary.Matches == nil {
		summary.Matches = []matches.Match{}
	}
	for _, l := range likes {
		summary.Likes = append(summary.Likes, Like{UserID: l.UserID, SwipedAt: l.SwipedAt})
		if _, ok := matched[l.UserID]; !ok {
			summary.PotentialContacts = append(summary.PotentialContacts, l.UserID)
		}
	}
	return summary, nil
}
