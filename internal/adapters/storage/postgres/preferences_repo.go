package postgres

import (
	"context"
	"database/sql"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

func (r *PreferencesRepo) Get(ctx context.Context, userID string) (preferences.Preferences, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, species, sizes, age_min, age_max, max_distance_km, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`, userID)

	var (
		p                     preferences.Preferences
		species, sizes        []byte
		ageMin, ageMax, maxKm sql.NullInt64
	)
	if err := row.Scan(&p.UserID, &species, &sizes, &ageMin, &ageMax, &maxKm, &p.UpdatedAt); err != nil {
		return preferences.Preferences{}, storeErr("preferences.get", err)
	}

	var err error
	if p.Species, err = parseJSONList[pets.Species](species); err != nil {
		return preferences.Preferences{}, storeErr("preferences.get", err)
	}
	if p.Sizes, err = parseJSONList[pets.Size](sizes); err != nil {
		return preferences.Preferences{}, storeErr("preferences.get", err)
	}
	p.AgeMin = fromNullInt(ageMin)
	p.AgeMax = fromNullInt(ageMax)
	p.MaxDistanceKm = fromNullInt(maxKm)
	return p, nil
}

func (r *PreferencesRepo) Upsert(ctx context.Context, p preferences.Preferences) error {
	species, err := jsonList(p.Species)
	if err != nil {
		return err
	}
	sizes, err := jsonList(p.Sizes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, species, sizes, age_min, age_max, max_distance_km, updated_at)
		VALUES ($1, $2::jsonb, $3::jsonb, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			species = EXCLUDED.species,
			sizes = EXCLUDED.sizes,
			age_min = EXCLUDED.age_min,
			age_max = EXCLUDED.age_max,
			max_distance_km = EXCLUDED.max_distance_km,
			updated_at = EXCLUDED.updated_at
	`,
		p.UserID,
		species,
		sizes,
		toNullInt(p.AgeMin),
		toNullInt(p.AgeMax),
		toNullInt(p.MaxDistanceKm),
		p.UpdatedAt,
	)
	return storeErr("preferences.upsert", err)
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
