package sqlite

import (
	"context"
	"database/sql"

	"pet-adoption/internal/domain/swipes"
)

const swipeColumns = `id, user_id, pet_id, direction, swiped_at`

type SwipesRepo struct {
	db *sql.DB
}

func (r *SwipesRepo) Insert(ctx context.Context, sw swipes.Swipe) (swipes.Swipe, bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO swipes (`+swipeColumns+`) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, pet_id) DO NOTHING`,
		sw.ID, sw.UserID, sw.PetID, string(sw.Direction), toMillis(sw.SwipedAt))
	if err != nil {
		return swipes.Swipe{}, false, storeErr("swipes.insert", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return sw, true, nil
	}

	stored, err := scanSwipe(r.db.QueryRowContext(ctx,
		`SELECT `+swipeColumns+` FROM swipes WHERE user_id = ? AND pet_id = ?`, sw.UserID, sw.PetID))
	if err != nil {
		return swipes.Swipe{}, false, storeErr("swipes.insert", err)
	}
	return stored, false, nil
}

func (r *SwipesRepo) ListByUser(ctx context.Context, userID string) ([]swipes.Swipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+swipeColumns+` FROM swipes
		WHERE user_id = ?
		ORDER BY swiped_at DESC, id DESC`, userID)
	if err != nil {
		return nil, storeErr("swipes.list_by_user", err)
	}
	defer rows.Close()
	return collectSwipes(rows, "swipes.list_by_user")
}

func (r *SwipesRepo) ListLikesByPet(ctx context.Context, petID string) ([]swipes.Swipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+swipeColumns+` FROM swipes
		WHERE pet_id = ? AND direction = ?
		ORDER BY swiped_at DESC, id DESC`, petID, string(swipes.DirectionRight))
	if err != nil {
		return nil, storeErr("swipes.list_likes_by_pet", err)
	}
	defer rows.Close()
	return collectSwipes(rows, "swipes.list_likes_by_pet")
}

func scanSwipe(s scanner) (swipes.Swipe, error) {
	var (
		sw       swipes.Swipe
		dir      string
		swipedAt int64
	)
	if err := s.Scan(&sw.ID, &sw.UserID, &sw.PetID, &dir, &swipedAt); err != nil {
		return swipes.Swipe{}, err
	}
	sw.Direction = swipes.Direction(dir)
	sw.SwipedAt = fromMillis(swipedAt)
	return sw, nil
}

func collectSwipes(rows *sql.Rows, op string) ([]swipes.Swipe, error) {
	out := make([]swipes.Swipe, 0)
	for rows.Next() {
		sw, err := scanSwipe(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}
