package ownerview

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/ports/datastore"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/pets", myPetsHandler(svc))
}

type likeResponse struct {
	UserID   string    `json:"user_id"`
	SwipedAt time.Time `json:"swiped_at"`
}

type petSummaryResponse struct {
	pets.PetResponse
	LikeCount         int                     `json:"like_count"`
	Likes             []likeResponse          `json:"likes"`
	Matches           []matches.MatchResponse `json:"matches"`
	PotentialContacts []string                `json:"potential_contacts"`
}

// myPetsHandler godoc
// @Summary Mis mascotas con likes y matches
// @Description Para cada mascota del dueño: cantidad de likes, quién dio like, matches creados y contactos potenciales (likes sin match).
// @Tags owner
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petSummaryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "store unavailable, retry later"
// @Router /me/pets [get]
func myPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.MyPets(r.Context(), claims.UserID)
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

		out := make([]petSummaryResponse, 0, len(items))
		for _, s := range items {
			likes := make([]likeResponse, 0, len(s.Likes))
			for _, l := range s.Likes {
				likes = append(likes, likeResponse{UserID: l.UserID, SwipedAt: l.SwipedAt})
			}
			out = append(out, petSummaryResponse{
				PetResponse:       pets.ToResponse(s.Pet),
				LikeCount:         s.LikeCount,
				Likes:             likes,
				Matches:           matches.ToResponses(s.Matches),
				PotentialContacts: s.PotentialContacts,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
