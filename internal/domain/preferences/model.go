package preferences

import (
	"time"

	"pet-adoption/internal/domain/pets"
)

// Preferences son los filtros guardados de un adoptante.
// Campos vacíos/nil = sin filtro. MaxDistanceKm se guarda pero no se aplica.
type Preferences struct {
	UserID        string
	Species       []pets.Species
	AgeMin        *int // meses, inclusivo
	AgeMax        *int
	Sizes         []pets.Size
	MaxDistanceKm *int
	UpdatedAt     time.Time
}

// IsEmpty indica que ningún filtro aplicable está definido.
func (p Preferences) IsEmpty() bool {
	return len(p.Species) == 0 && len(p.Sizes) == 0 && p.AgeMin == nil && p.AgeMax == nil
}
