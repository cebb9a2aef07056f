package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/pets"
)

type CandidatesRepo struct {
	db *sql.DB
}

func NewCandidatesRepo(db *sql.DB) *CandidatesRepo {
	return &CandidatesRepo{db: db}
}

// ListCandidates excluye lo ya swipeado con un anti-join (NOT EXISTS) en la
// misma consulta, sin pasar listas de ids.
func (r *CandidatesRepo) ListCandidates(ctx context.Context, f candidates.Filter) ([]pets.Pet, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + petColumns + `
		FROM pets p
		WHERE p.status = $1
		  AND p.owner_user_id <> $2
		  AND NOT EXISTS (
			SELECT 1 FROM swipes s
			WHERE s.user_id = $2 AND s.pet_id = p.id
		  )
	`)

	args := []any{string(pets.StatusAvailable), f.UserID}
	argN := 3

	if len(f.Species) > 0 {
		placeholders := make([]string, 0, len(f.Species))
		for _, s := range f.Species {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(s))
			argN++
		}
		sb.WriteString(" AND p.species IN (" + strings.Join(placeholders, ",") + ")")
	}

	if len(f.Sizes) > 0 {
		placeholders := make([]string, 0, len(f.Sizes))
		for _, s := range f.Sizes {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(s))
			argN++
		}
		sb.WriteString(" AND p.size IN (" + strings.Join(placeholders, ",") + ")")
	}

	if f.AgeMin != nil {
		sb.WriteString(fmt.Sprintf(" AND p.age_months >= $%d", argN))
		args = append(args, *f.AgeMin)
		argN++
	}
	if f.AgeMax != nil {
		sb.WriteString(fmt.Sprintf(" AND p.age_months <= $%d", argN))
		args = append(args, *f.AgeMax)
		argN++
	}

	sb.WriteString(" ORDER BY p.created_at DESC, p.id DESC")
	if f.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, storeErr("candidates.list", err)
	}
	defer rows.Close()

	return collectPets(rows, "candidates.list")
}
