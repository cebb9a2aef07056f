package swipes

import "context"

type Repository interface {
	// Insert es insert-or-get sobre UNIQUE(user_id, pet_id): si ya existía
	// devuelve la fila guardada con created=false. Mascota inexistente =>
	// datastore.ErrNotFound.
	Insert(ctx context.Context, s Swipe) (stored Swipe, created bool, err error)
	// ListByUser: swipes del usuario, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Swipe, error)
	// ListLikesByPet: right-swipes sobre la mascota, más recientes primero.
	ListLikesByPet(ctx context.Context, petID string) ([]Swipe, error)
}
