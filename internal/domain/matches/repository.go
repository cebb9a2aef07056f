package matches

import (
	"context"
	"time"
)

type Repository interface {
	// Find busca por la clave natural; datastore.ErrNotFound si no existe.
	Find(ctx context.Context, petID, adopterID, ownerID string) (Match, error)
	// Insert es insert-or-get: ante conflicto de unicidad devuelve la fila
	// existente con created=false. Llamadas concurrentes ven el mismo registro.
	Insert(ctx context.Context, m Match) (stored Match, created bool, err error)
	GetByID(ctx context.Context, id string) (Match, error)
	// ListForUser: matches donde userID es adoptante o dueño, más recientes primero.
	ListForUser(ctx context.Context, userID string) ([]Match, error)
	ListByPetOwner(ctx context.Context, petID, ownerID string) ([]Match, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}
