package preferences

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/ports/datastore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/preferences", getPreferencesHandler(svc))
	r.Put("/me/preferences", putPreferencesHandler(svc))
}

type preferencesRequest struct {
	Species       []string `json:"species"`
	AgeMin        *int     `json:"age_min"`
	AgeMax        *int     `json:"age_max"`
	Sizes         []string `json:"sizes"`
	MaxDistanceKm *int     `json:"max_distance_km"`
}

type preferencesResponse struct {
	UserID        string         `json:"user_id"`
	Species       []pets.Species `json:"species"`
	AgeMin        *int           `json:"age_min"`
	AgeMax        *int           `json:"age_max"`
	Sizes         []pets.Size    `json:"sizes"`
	MaxDistanceKm *int           `json:"max_distance_km"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

// getPreferencesHandler godoc
// @Summary Ver mis preferencias de búsqueda
// @Description Sin preferencias guardadas devuelve filtros vacíos.
// @Tags preferences
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} preferencesResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "store unavailable"
// @Router /me/preferences [get]
func getPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(p))
	}
}

// putPreferencesHandler godoc
// @Summary Guardar mis preferencias de búsqueda
// @Description Reemplaza las preferencias. Edades en meses, inclusivas. max_distance_km se guarda pero no filtra.
// @Tags preferences
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body preferencesRequest true "Filtros"
// @Success 200 {object} preferencesResponse
// @Failure 400 {string} string "invalid json / filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /me/preferences [put]
func putPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req preferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Upsert(r.Context(), claims.UserID, UpsertInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(p))
	}
}

func toResponse(p Preferences) preferencesResponse {
	out := preferencesResponse{
		UserID:        p.UserID,
		Species:       p.Species,
		AgeMin:        p.AgeMin,
		AgeMax:        p.AgeMax,
		Sizes:         p.Sizes,
		MaxDistanceKm: p.MaxDistanceKm,
	}
	if out.Species == nil {
		out.Species = []pets.Species{}
	}
	if out.Sizes == nil {
		out.Sizes = []pets.Size{}
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case datastore.IsTransient(err):
		http.Error(w, "store unavailable, retry later", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
