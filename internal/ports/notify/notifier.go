package notify

import (
	"context"
	"time"
)

// Source indica qué camino formó el match.
type Source string

const (
	SourceSwipe Source = "swipe"
	SourceLike  Source = "like"
)

// MatchCreated se emite una sola vez por match, cuando el insert realmente creó la fila.
type MatchCreated struct {
	MatchID   string    `json:"match_id"`
	PetID     string    `json:"pet_id"`
	AdopterID string    `json:"adopter_id"`
	OwnerID   string    `json:"owner_id"`
	Source    Source    `json:"source"`
	MatchedAt time.Time `json:"matched_at"`
}

// Notifier publica eventos de dominio hacia afuera (chat, emails, push).
type Notifier interface {
	MatchCreated(ctx context.Context, ev MatchCreated) error
}
