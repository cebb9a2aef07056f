package candidates

import (
	"context"

	"pet-adoption/internal/domain/pets"
)

type Repository interface {
	// ListCandidates devuelve mascotas available, de otro dueño y sin swipe
	// del usuario, ordenadas created_at DESC, id DESC, hasta f.Limit filas.
	ListCandidates(ctx context.Context, f Filter) ([]pets.Pet, error)
}
