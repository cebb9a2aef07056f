package sqlite

import (
	"context"
	"database/sql"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/ports/datastore"
)

const matchColumns = `id, pet_id, adopter_id, owner_id, status, matched_at, updated_at`

type MatchesRepo struct {
	db *sql.DB
}

func (r *MatchesRepo) Find(ctx context.Context, petID, adopterID, ownerID string) (matches.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE pet_id = ? AND adopter_id = ? AND owner_id = ?`, petID, adopterID, ownerID))
	if err != nil {
		return matches.Match{}, storeErr("matches.find", err)
	}
	return m, nil
}

func (r *MatchesRepo) Insert(ctx context.Context, m matches.Match) (matches.Match, bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (pet_id, adopter_id, owner_id) DO NOTHING`,
		m.ID, m.PetID, m.AdopterID, m.OwnerID, string(m.Status), toMillis(m.MatchedAt), toMillis(m.UpdatedAt))
	if err != nil {
		return matches.Match{}, false, storeErr("matches.insert", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return m, true, nil
	}

	stored, err := r.Find(ctx, m.PetID, m.AdopterID, m.OwnerID)
	if err != nil {
		return matches.Match{}, false, err
	}
	return stored, false, nil
}

func (r *MatchesRepo) GetByID(ctx context.Context, id string) (matches.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id))
	if err != nil {
		return matches.Match{}, storeErr("matches.get", err)
	}
	return m, nil
}

func (r *MatchesRepo) ListForUser(ctx context.Context, userID string) ([]matches.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE adopter_id = ? OR owner_id = ?
		ORDER BY matched_at DESC, id DESC`, userID, userID)
	if err != nil {
		return nil, storeErr("matches.list_for_user", err)
	}
	defer rows.Close()
	return collectMatches(rows, "matches.list_for_user")
}

func (r *MatchesRepo) ListByPetOwner(ctx context.Context, petID, ownerID string) ([]matches.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE pet_id = ? AND owner_id = ?
		ORDER BY matched_at DESC, id DESC`, petID, ownerID)
	if err != nil {
		return nil, storeErr("matches.list_by_pet_owner", err)
	}
	defer rows.Close()
	return collectMatches(rows, "matches.list_by_pet_owner")
}

func (r *MatchesRepo) UpdateStatus(ctx context.Context, id string, status matches.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), toMillis(updatedAt), id)
	if err != nil {
		return storeErr("matches.update_status", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return datastore.ErrNotFound
	}
	return nil
}

func scanMatch(s scanner) (matches.Match, error) {
	var (
		m                    matches.Match
		status               string
		matchedAt, updatedAt int64
	)
	if err := s.Scan(&m.ID, &m.PetID, &m.AdopterID, &m.OwnerID, &status, &matchedAt, &updatedAt); err != nil {
		return matches.Match{}, err
	}
	m.Status = matches.Status(status)
	m.MatchedAt = fromMillis(matchedAt)
	m.UpdatedAt = fromMillis(updatedAt)
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
