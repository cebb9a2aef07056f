package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption/internal/domain/swipes"
)

const swipeColumns = `id, user_id, pet_id, direction, swiped_at`

type SwipesRepo struct {
	db *sql.DB
}

func NewSwipesRepo(db *sql.DB) *SwipesRepo {
	return &SwipesRepo{db: db}
}

// Insert intenta el insert; ante conflicto (user_id, pet_id) devuelve la fila
// existente. Si la fila en conflicto la confirmó otra transacción después del
// snapshot de la sentencia, el CTE no la ve y se relee aparte.
func (r *SwipesRepo) Insert(ctx context.Context, sw swipes.Swipe) (swipes.Swipe, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		WITH ins AS (
			INSERT INTO swipes (`+swipeColumns+`)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, pet_id) DO NOTHING
			RETURNING `+swipeColumns+`
		)
		SELECT `+swipeColumns+`, true FROM ins
		UNION ALL
		SELECT s.id, s.user_id, s.pet_id, s.direction, s.swiped_at, false
		FROM swipes s
		WHERE NOT EXISTS (SELECT 1 FROM ins) AND s.user_id = $2 AND s.pet_id = $3
		LIMIT 1
	`, sw.ID, sw.UserID, sw.PetID, string(sw.Direction), sw.SwipedAt)

	var created bool
	stored, err := scanSwipe(row, &created)
	if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
		stored, err = r.find(ctx, sw.UserID, sw.PetID)
		created = false
	}
	if err != nil {
		return swipes.Swipe{}, false, storeErr("swipes.insert", err)
	}
	return stored, created, nil
}

func (r *SwipesRepo) find(ctx context.Context, userID, petID string) (swipes.Swipe, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+swipeColumns+`
		FROM swipes
		WHERE user_id = $1 AND pet_id = $2
	`, userID, petID)
	return scanSwipe(row)
}

func (r *SwipesRepo) ListByUser(ctx context.Context, userID string) ([]swipes.Swipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+swipeColumns+`
		FROM swipes
		WHERE user_id = $1
		ORDER BY swiped_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, storeErr("swipes.list_by_user", err)
	}
	defer rows.Close()

	return collectSwipes(rows, "swipes.list_by_user")
}

func (r *SwipesRepo) ListLikesByPet(ctx context.Context, petID string) ([]swipes.Swipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+swipeColumns+`
		FROM swipes
		WHERE pet_id = $1 AND direction = $2
		ORDER BY swiped_at DESC, id DESC
	`, petID, string(swipes.DirectionRight))
	if err != nil {
		return nil, storeErr("swipes.list_likes_by_pet", err)
	}
	defer rows.Close()

	return collectSwipes(rows, "swipes.list_likes_by_pet")
}

// scanSwipe lee las columnas base y, si se pasan, columnas extra al final.
func scanSwipe(s scanner, extra ...any) (swipes.Swipe, error) {
	var (
		sw  swipes.Swipe
		dir string
	)
	dest := append([]any{&sw.ID, &sw.UserID, &sw.PetID, &dir, &sw.SwipedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return swipes.Swipe{}, err
	}
	sw.Direction = swipes.Direction(dir)
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
