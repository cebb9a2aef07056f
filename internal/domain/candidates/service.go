package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/ports/datastore"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PreferenceResolver es el contrato mínimo que el selector necesita.
// preferences.Service y el cache de redis lo implementan.
type PreferenceResolver interface {
	Resolve(ctx context.Context, userID string) (preferences.Preferences, bool, error)
}

type Selector struct {
	repo  Repository
	prefs PreferenceResolver

	defaultPageSize int
	maxPageSize     int
}

type Option func(*Selector)

// WithPageSizes sobreescribe default y máximo (valores <= 0 se ignoran).
func WithPageSizes(def, max int) Option {
	return func(s *Selector) {
		if def > 0 {
			s.defaultPageSize = def
		}
		if max > 0 {
			s.maxPageSize = max
		}
	}
}

func NewSelector(repo Repository, prefs PreferenceResolver, opts ...Option) *Selector {
	s := &Selector{
		repo:            repo,
		prefs:           prefs,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}
	return s
}

// NextCandidates arma el próximo lote del feed para userID.
// Resultado vacío no es error. Fallas del store o de preferencias vuelven
// como datastore.ErrUnavailable (retryable): nunca se ignoran los filtros.
func (s *Selector) NextCandidates(ctx context.Context, userID string, pageSize int) (Page, error) {
	if strings.TrimSpace(userID) == "" {
		return Page{}, ErrUnauthorized
	}
	pageSize = s.clamp(pageSize)

	f := Filter{UserID: userID, Limit: pageSize + 1}

	prefs, found, err := s.prefs.Resolve(ctx, userID)
	if err != nil {
		if datastore.IsTransient(err) {
			return Page{}, err
		}
		return Page{}, fmt.Errorf("%w: resolve preferences: %v", datastore.ErrUnavailable, err)
	}
	if found {
		f.Species = prefs.Species
		f.Sizes = prefs.Sizes
		f.AgeMin = prefs.AgeMin
		f.AgeMax = prefs.AgeMax
	}

	items, err := s.repo.ListCandidates(ctx, f)
	if err != nil {
		return Page{}, datastore.Unavailable("list candidates", err)
	}

	page := Page{Pets: items}
	if len(items) > pageSize {
		page.Pets = items[:pageSize]
		page.HasMore = true
	}
	return page, nil
}

func (s *Selector) clamp(pageSize int) int {
	if pageSize <= 0 {
		return s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		return s.maxPageSize
	}
	return pageSize
}
