package sqlite

import (
	"context"
	"database/sql"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func (r *PreferencesRepo) Get(ctx context.Context, userID string) (preferences.Preferences, error) {
	var (
		p                     preferences.Preferences
		species, sizes        string
		ageMin, ageMax, maxKm sql.NullInt64
		updatedAt             int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, species, sizes, age_min, age_max, max_distance_km, updated_at
		FROM user_preferences
		WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &species, &sizes, &ageMin, &ageMax, &maxKm, &updatedAt)
	if err != nil {
		return preferences.Preferences{}, storeErr("preferences.get", err)
	}

	if p.Species, err = parseJSONList[pets.Species](species); err != nil {
		return preferences.Preferences{}, storeErr("preferences.get", err)
	}
	if p.Sizes, err = parseJSONList[pets.Size](sizes); err != nil {
		return preferences.Preferences{}, storeErr("preferences.get", err)
	}
	p.AgeMin = fromNullInt(ageMin)
	p.AgeMax = fromNullInt(ageMax)
	p.MaxDistanceKm = fromNullInt(maxKm)
	p.UpdatedAt = fromMillis(updatedAt)
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			species = excluded.species,
			sizes = excluded.sizes,
			age_min = excluded.age_min,
			age_max = excluded.age_max,
			max_distance_km = excluded.max_distance_km,
			updated_at = excluded.updated_at`,
		p.UserID, species, sizes,
		toNullInt(p.AgeMin), toNullInt(p.AgeMax), toNullInt(p.MaxDistanceKm),
		toMillis(p.UpdatedAt),
	)
	return storeErr("preferences.upsert", err)
}
