package candidates

import "pet-adoption/internal/domain/pets"

// Filter es lo que el store necesita para armar la consulta de candidatos.
// La exclusión de mascotas ya swipeadas por UserID la resuelve el store
// (anti-join), no se pasa una lista de ids.
type Filter struct {
	UserID  string
	Species []pets.Species
	Sizes   []pets.Size
	AgeMin  *int
	AgeMax  *int
	Limit   int
}

// Page es un lote de candidatos. HasMore indica que el store tenía más filas.
type Page struct {
	Pets    []pets.Pet
	HasMore bool
}
