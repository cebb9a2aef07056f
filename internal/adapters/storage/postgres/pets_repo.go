package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/datastore"
)

const petColumns = `
	id, owner_user_id,
	name, species, breed, gender, size,
	age_months, description, status,
	images, location,
	created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	images, err := jsonList(p.Images)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11::jsonb,$12,$13,$14)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Gender),
		string(p.Size),
		p.AgeMonths,
		p.Description,
		string(p.Status),
		images,
		p.Location,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return storeErr("pets.create", err)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, datastore.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, storeErr("pets.get", err)
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerUserID)
	if err != nil {
		return nil, storeErr("pets.list_by_owner", err)
	}
	defer rows.Close()

	return collectPets(rows, "pets.list_by_owner")
}

func (r *PetsRepo) UpdateStatus(ctx context.Context, id string, status pets.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), updatedAt)
	if err != nil {
		return storeErr("pets.update_status", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return datastore.ErrNotFound
	}
	return nil
}

// Search usa ILIKE; el patrón escapa % y _ del texto buscado.
func (r *PetsRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + petColumns + `
		FROM pets
		WHERE status = $1`)
	args := []any{string(pets.StatusAvailable)}
	argN := 2

	if f.Species != "" {
		sb.WriteString(fmt.Sprintf(" AND species = $%d", argN))
		args = append(args, string(f.Species))
		argN++
	}
	if f.Breed != "" {
		sb.WriteString(fmt.Sprintf(" AND breed ILIKE $%d", argN))
		args = append(args, containsPattern(f.Breed))
		argN++
	}
	if len(f.Sizes) > 0 {
		placeholders := make([]string, 0, len(f.Sizes))
		for _, s := range f.Sizes {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(s))
			argN++
		}
		sb.WriteString(" AND size IN (" + strings.Join(placeholders, ",") + ")")
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, storeErr("pets.search", err)
	}
	defer rows.Close()

	return collectPets(rows, "pets.search")
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                           pets.Pet
		species, gender, size, stat string
		images                      []byte
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&gender,
		&size,
		&p.AgeMonths,
		&p.Description,
		&stat,
		&images,
		&p.Location,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Gender = pets.Gender(gender)
	p.Size = pets.Size(size)
	p.Status = pets.Status(stat)

	imgs, err := parseJSONList[string](images)
	if err != nil {
		return pets.Pet{}, err
	}
	p.Images = imgs
	return p, nil
}

func collectPets(rows *sql.Rows, op string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}
