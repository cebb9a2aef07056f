package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/pets"
)

type CandidatesRepo struct {
	db *sql.DB
}

func (r *CandidatesRepo) ListCandidates(ctx context.Context, f candidates.Filter) ([]pets.Pet, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + petColumns + `
		FROM pets p
		WHERE p.status = ?
		  AND p.owner_user_id <> ?
		  AND NOT EXISTS (SELECT 1 FROM swipes s WHERE s.user_id = ? AND s.pet_id = p.id)`)
	args := []any{string(pets.StatusAvailable), f.UserID, f.UserID}

	if len(f.Species) > 0 {
		sb.WriteString(" AND p.species IN (" + placeholders(len(f.Species)) + ")")
		for _, s := range f.Species {
			args = append(args, string(s))
		}
	}
	if len(f.Sizes) > 0 {
		sb.WriteString(" AND p.size IN (" + placeholders(len(f.Sizes)) + ")")
		for _, s := range f.Sizes {
			args = append(args, string(s))
		}
	}
	if f.AgeMin != nil {
		sb.WriteString(" AND p.age_months >= ?")
		args = append(args, *f.AgeMin)
	}
	if f.AgeMax != nil {
		sb.WriteString(" AND p.age_months <= ?")
		args = append(args, *f.AgeMax)
	}

	sb.WriteString(" ORDER BY p.created_at DESC, p.id DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, storeErr("candidates.list", err)
	}
	defer rows.Close()
	return collectPets(rows, "candidates.list")
}
