package swipes

import (
	"strings"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
)

// Direction de un swipe.
// @Enum left, right
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	return d, d == DirectionLeft || d == DirectionRight
}

// Swipe es la decisión de un usuario sobre una mascota.
// Como mucho uno por (UserID, PetID); nunca se modifica ni se borra.
type Swipe struct {
	ID        string
	UserID    string
	PetID     string
	Direction Direction
	SwipedAt  time.Time
}

// Outcome describe lo que pasó al registrar un swipe. Es informativo:
// los callers pueden ignorarlo.
type Outcome struct {
	Swipe     Swipe
	Recorded  bool // el store confirmó la fila (nueva o existente)
	Duplicate bool // ya existía un swipe para (user, pet)
	Match     *matches.Match
}

// HistoryEntry es un swipe con la mascota resuelta (nil si ya no existe).
type HistoryEntry struct {
	Swipe Swipe
	Pet   *pets.Pet
}
