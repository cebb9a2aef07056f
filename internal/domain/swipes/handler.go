package swipes

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

// RegisterRoutes monta los endpoints de swipes. limit (opcional) se aplica
// solo a POST /swipes.
func RegisterRoutes(r chi.Router, rec *Recorder, hist *History, limit func(http.Handler) http.Handler) {
	r.Group(func(gr chi.Router) {
		if limit != nil {
			gr.Use(limit)
		}
		gr.Post("/swipes", recordSwipeHandler(rec))
	})

	r.Get("/me/swipes", swipeHistoryHandler(hist))
	r.Get("/me/liked", likedPetsHandler(hist))
}

type recordSwipeRequest struct {
	PetID     string `json:"pet_id"`
	Direction string `json:"direction"`
}

type recordSwipeResponse struct {
	Recorded  bool   `json:"recorded"`
	Duplicate bool   `json:"duplicate"`
	MatchID   string `json:"match_id,omitempty"`
}

type swipeResponse struct {
	ID        string            `json:"id"`
	PetID     string            `json:"pet_id"`
	Direction Direction         `json:"direction"`
	SwipedAt  time.Time         `json:"swiped_at"`
	Pet       *pets.PetResponse `json:"pet,omitempty"`
}

// recordSwipeHandler godoc
// @Summary Registrar un swipe
// @Description Registra left/right sobre una mascota. Es fire-and-forget: responde 202 aunque el store falle (se loguea). Un segundo swipe sobre la misma mascota no cambia el primero.
// @Tags swipe
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body recordSwipeRequest true "pet_id y direction (left|right)"
// @Success 202 {object} recordSwipeResponse
// @Failure 400 {string} string "invalid json / pet_id o direction inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 429 {string} string "too many requests"
// @Router /swipes [post]
func recordSwipeHandler(rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req recordSwipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		out, err := rec.Record(r.Context(), claims.UserID, req.PetID, Direction(req.Direction))
		if err != nil {
			switch {
			case errors.Is(err, ErrUnauthorized):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "pet_id is required and direction must be left or right", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := recordSwipeResponse{Recorded: out.Recorded, Duplicate: out.Duplicate}
		if out.Match != nil {
			resp.MatchID = out.Match.ID
		}
		writeJSON(w, http.StatusAccepted, resp)
	}
}

// swipeHistoryHandler godoc
// @Summary Historial de swipes
// @Description Mis swipes con la mascota asociada, más recientes primero.
// @Tags swipe
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} swipeResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/swipes [get]
func swipeHistoryHandler(hist *History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := hist.Swipes(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]swipeResponse, 0, len(items))
		for _, e := range items {
			resp := swipeResponse{
				ID:        e.Swipe.ID,
				PetID:     e.Swipe.PetID,
				Direction: e.Swipe.Direction,
				SwipedAt:  e.Swipe.SwipedAt,
			}
			if e.Pet != nil {
				p := pets.ToResponse(*e.Pet)
				resp.Pet = &p
			}
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// likedPetsHandler godoc
// @Summary Mascotas que me gustaron
// @Description Right-swipes que todavía no tienen match.
// @Tags swipe
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} pets.PetResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/liked [get]
func likedPetsHandler(hist *History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := hist.Liked(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pets.ToResponses(items))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
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
