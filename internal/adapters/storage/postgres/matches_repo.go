package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/ports/datastore"
)

const matchColumns = `id, pet_id, adopter_id, owner_id, status, matched_at, updated_at`

type MatchesRepo struct {
	db *sql.DB
}

func NewMatchesRepo(db *sql.DB) *MatchesRepo {
	return &MatchesRepo{db: db}
}

func (r *MatchesRepo) Find(ctx context.Context, petID, adopterID, ownerID string) (matches.Match, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE pet_id = $1 AND adopter_id = $2 AND owner_id = $3
	`, petID, adopterID, ownerID)

	m, err := scanMatch(row)
	if err != nil {
		return matches.Match{}, storeErr("matches.find", err)
	}
	return m, nil
}

// Insert es insert-or-get sobre UNIQUE(pet_id, adopter_id, owner_id).
func (r *MatchesRepo) Insert(ctx context.Context, m matches.Match) (matches.Match, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		WITH ins AS (
			INSERT INTO matches (`+matchColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (pet_id, adopter_id, owner_id) DO NOTHING
			RETURNING `+matchColumns+`
		)
		SELECT `+matchColumns+`, true FROM ins
		UNION ALL
		SELECT m.id, m.pet_id, m.adopter_id, m.owner_id, m.status, m.matched_at, m.updated_at, false
		FROM matches m
		WHERE NOT EXISTS (SELECT 1 FROM ins) AND m.pet_id = $2 AND m.adopter_id = $3 AND m.owner_id = $4
		LIMIT 1
	`, m.ID, m.PetID, m.AdopterID, m.OwnerID, string(m.Status), m.MatchedAt, m.UpdatedAt)

	var created bool
	stored, err := scanMatch(row, &created)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		// El ganador confirmó después de nuestro snapshot.
		stored, err = r.Find(ctx, m.PetID, m.AdopterID, m.OwnerID)
		if err != nil {
			return matches.Match{}, false, err
		}
		return stored, false, nil
	}
	if err != nil {
		return matches.Match{}, false, storeErr("matches.insert", err)
	}
	return stored, created, nil
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.Match, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		return matches.Match{}, storeErr("matches.get", err)
	}
	return m, nil
}

func (r *MatchesRepo) ListForUser(ctx context.Context, userID string) ([]matches.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE adopter_id = $1 OR owner_id = $1
		ORDER BY matched_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, storeErr("matches.list_for_user", err)
	}
	defer rows.Close()

	return collectMatches(rows, "matches.list_for_user")
}

func (r *MatchesRepo) ListByPetOwner(ctx context.Context, petID, ownerID string) ([]matches.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE pet_id = $1 AND owner_id = $2
		ORDER BY matched_at DESC, id DESC
	`, petID, ownerID)
	if err != nil {
		return nil, storeErr("matches.list_by_pet_owner", err)
	}
	defer rows.Close()

	return collectMatches(rows, "matches.list_by_pet_owner")
}

func (r *MatchesRepo) UpdateStatus(ctx context.Context, id string, status matches.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE matches
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), updatedAt)
	if err != nil {
		return storeErr("matches.update_status", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return datastore.ErrNotFound
	}
	return nil
}

func scanMatch(s scanner, extra ...any) (matches.Match, error) {
	var (
		m      matches.Match
		status string
	)
	dest := append([]any{&m.ID, &m.PetID, &m.AdopterID, &m.OwnerID, &status, &m.MatchedAt, &m.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return matches.Match{}, err
	}
	m.Status = matches.Status(status)
	return m, nil
}

func collectMatches(rows *sql.Rows, op string) ([]matches.Match, error) {
	out := make([]matches.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}
