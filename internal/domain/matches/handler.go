package matches

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/ports/datastore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// El dueño confirma un like
	r.Post("/pets/{petID}/matches", createFromLikeHandler(svc))

	r.Get("/me/matches", listMyMatchesHandler(svc))
	r.Route("/matches/{matchID}", func(mr chi.Router) {
		mr.Get("/", getMatchHandler(svc))
		mr.Put("/status", updateStatusHandler(svc))
	})
}

type createFromLikeRequest struct {
	AdopterID string `json:"adopter_id"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// MatchResponse es la representación pública de un match.
type MatchResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	AdopterID string    `json:"adopter_id"`
	OwnerID   string    `json:"owner_id"`
	Status    Status    `json:"status"`
	MatchedAt time.Time `json:"matched_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createFromLikeHandler godoc
// @Summary Crear match desde un like
// @Description Solo el dueño de la mascota. Si el match ya existe lo devuelve con 200; si se crea, 201.
// @Tags matches
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createFromLikeRequest true "Adoptante que dio like"
// @Success 200 {object} MatchResponse "match existente"
// @Success 201 {object} MatchResponse "match creado"
// @Failure 400 {string} string "invalid json / adopter_id inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/matches [post]
func createFromLikeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createFromLikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, created, err := svc.CreateFromLike(r.Context(), claims.UserID, chi.URLParam(r, "petID"), req.AdopterID)
		if err != nil {
			writeError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, ToResponse(m))
	}
}

// listMyMatchesHandler godoc
// @Summary Mis matches
// @Description Matches donde soy adoptante o dueño, más recientes primero.
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} MatchResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/matches [get]
func listMyMatchesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

// getMatchHandler godoc
// @Summary Detalle de match
// @Tags matches
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param matchID path string true "ID del match"
// @Success 200 {object} MatchResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "match not found"
// @Router /matches/{matchID} [get]
func getMatchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "matchID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado del match
// @Description Solo participantes. Estados: matched, chatting, adopted, closed.
// @Tags matches
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param matchID path string true "ID del match"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} MatchResponse
// @Failure 400 {string} string "invalid json / estado inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "match not found"
// @Router /matches/{matchID}/status [put]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.UpdateStatus(r.Context(), claims.UserID, chi.URLParam(r, "matchID"), Status(req.Status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(m))
	}
}

func ToResponse(m Match) MatchResponse {
	return MatchResponse{
		ID:        m.ID,
		PetID:     m.PetID,
		AdopterID: m.AdopterID,
		OwnerID:   m.OwnerID,
		Status:    m.Status,
		MatchedAt: m.MatchedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToResponses(items []Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToResponse(m))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
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
