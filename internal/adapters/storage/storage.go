// Package storage agrupa los repositorios que expone cada driver
// (postgres, sqlite, memory) para que el router los reciba juntos.
package storage

import (
	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/domain/swipes"
)

type Repositories struct {
	Pets        pets.Repository
	Preferences preferences.Repository
	Candidates  candidates.Repository
	Swipes      swipes.Repository
	Matches     matches.Repository
}
