package pets

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner devuelve las mascotas del dueño, más recientes primero.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
	// Search lista anuncios available que cumplen el filtro, más recientes primero.
	Search(ctx context.Context, f SearchFilter) ([]Pet, error)
}
