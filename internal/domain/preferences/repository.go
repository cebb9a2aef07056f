package preferences

import "context"

type Repository interface {
	// Get devuelve datastore.ErrNotFound si el usuario no guardó preferencias.
	Get(ctx context.Context, userID string) (Preferences, error)
	Upsert(ctx context.Context, p Preferences) error
}
