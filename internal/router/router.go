package router

import (
	"errors"
	"net/http"

	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/ownerview"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/notify"

	_ "pet-adoption/internal/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

var ErrMissingStore = errors.New("router: repositories are required")

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Repos es obligatorio: el driver lo elige cmd/api. No hay fallback.
	Repos storage.Repositories

	Logger   logger.Logger
	Notifier notify.Notifier // nil: los matches no se publican

	// SwipeLimiter (opcional) limita POST /swipes.
	SwipeLimiter middleware.Limiter

	MatchPolicy     swipes.Policy
	DefaultPageSize int
	MaxPageSize     int
}

func (o Options) complete() bool {
	r := o.Repos
	return r.Pets != nil && r.Preferences != nil && r.Candidates != nil && r.Swipes != nil && r.Matches != nil
}

func NewRouter(opts Options) (http.Handler, error) {
	if !opts.complete() {
		return nil, ErrMissingStore
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	petsSvc := pets.NewService(opts.Repos.Pets)
	prefsSvc := preferences.NewService(opts.Repos.Preferences)
	selector := candidates.NewSelector(opts.Repos.Candidates, prefsSvc,
		candidates.WithPageSizes(opts.DefaultPageSize, opts.MaxPageSize))
	matchesSvc := matches.NewService(opts.Repos.Matches, petsSvc, opts.Notifier, log)
	recorder := swipes.NewRecorder(opts.Repos.Swipes, matchesSvc, opts.MatchPolicy, log)
	history := swipes.NewHistory(opts.Repos.Swipes, petsSvc, matchesSvc)
	ownerSvc := ownerview.NewService(petsSvc, opts.Repos.Swipes, matchesSvc)

	var swipeLimit func(http.Handler) http.Handler
	if opts.SwipeLimiter != nil {
		swipeLimit = middleware.RateLimit(opts.SwipeLimiter, "swipes", log)
	}

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	preferences.RegisterRoutes(r, prefsSvc)
	candidates.RegisterRoutes(r, selector)
	swipes.RegisterRoutes(r, recorder, history, swipeLimit)
	matches.RegisterRoutes(r, matchesSvc)
	ownerview.RegisterRoutes(r, ownerSvc)

	return r, nil
}
