package pets

import (
	"strings"
	"time"
)

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	}
	return false
}

// ParseSpecies normaliza a minúsculas y valida.
func ParseSpecies(s string) (Species, bool) {
	sp := Species(strings.ToLower(strings.TrimSpace(s)))
	return sp, sp.Valid()
}

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Size define el tamaño.
// @Enum small, medium, large, extra_large
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// ParseSize acepta "Extra Large", "extra-large" y "extra_large".
func ParseSize(s string) (Size, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.Join(strings.Fields(v), "_")
	v = strings.ReplaceAll(v, "-", "_")
	sz := Size(v)
	return sz, sz.Valid()
}

// Status del anuncio. Solo "available" aparece en el feed.
// @Enum available, pending, adopted, removed
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
	StatusRemoved   Status = "removed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted, StatusRemoved:
		return true
	}
	return false
}

// SearchFilter: campos vacíos = sin filtro. Breed es coincidencia parcial
// sin distinguir mayúsculas. Solo se buscan anuncios available.
type SearchFilter struct {
	Species Species
	Breed   string
	Sizes   []Size
}

// Pet es un anuncio de adopción. Tiene exactamente un dueño y nunca se borra
// físicamente ("removed" es el estado blando).
type Pet struct {
	ID          string
	OwnerUserID string

	Name      string
	Species   Species
	Breed     string
	Gender    Gender
	Size      Size
	AgeMonths int

	Description string
	Status      Status
	Images      []string
	Location    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
