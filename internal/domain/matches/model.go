package matches

import "time"

// Status del match. Se crea en "matched"; los participantes lo avanzan.
// @Enum matched, chatting, adopted, closed
type Status string

const (
	StatusMatched  Status = "matched"
	StatusChatting Status = "chatting"
	StatusAdopted  Status = "adopted"
	StatusClosed   Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusMatched, StatusChatting, StatusAdopted, StatusClosed:
		return true
	}
	return false
}

// Match une a un adoptante con el dueño de una mascota.
// Único por (PetID, AdopterID, OwnerID).
type Match struct {
	ID        string
	PetID     string
	AdopterID string
	OwnerID   string
	Status    Status
	MatchedAt time.Time
	UpdatedAt time.Time
}

// IsParticipant indica si userID es adoptante o dueño del match.
func (m Match) IsParticipant(userID string) bool {
	return userID != "" && (m.AdopterID == userID || m.OwnerID == userID)
}
