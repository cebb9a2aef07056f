package candidates

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/ports/datastore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, sel *Selector) {
	r.Get("/swipe/candidates", listCandidatesHandler(sel))
}

type pageResponse struct {
	Pets    []pets.PetResponse `json:"pets"`
	HasMore bool               `json:"has_more"`
}

// listCandidatesHandler godoc
// @Summary Próximo lote de mascotas para swipear
// @Description Excluye mascotas propias y ya swipeadas y aplica las preferencias guardadas. Orden: más recientes primero. 503 indica falla transitoria (reintentar).
// @Tags swipe
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Tamaño del lote (default 20, máx 100)"
// @Success 200 {object} pageResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "store unavailable, retry later"
// @Router /swipe/candidates [get]
func listCandidatesHandler(sel *Selector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 0
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		page, err := sel.NextCandidates(r.Context(), claims.UserID, limit)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnauthorized):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case datastore.IsTransient(err):
				http.Error(w, "store unavailable, retry later", http.StatusServiceUnavailable)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, pageResponse{
			Pets:    pets.ToResponses(page.Pets),
			HasMore: page.HasMore,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
