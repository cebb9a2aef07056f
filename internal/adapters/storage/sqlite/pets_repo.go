package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/datastore"
)

const petColumns = `id, owner_user_id, name, species, breed, gender, size,
	age_months, description, status, images, location, created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	images, err := jsonList(p.Images)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pets (`+petColumns+`) VALUES (`+placeholders(14)+`)`,
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
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	)
	return storeErr("pets.create", err)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, datastore.ErrNotFound
	}
	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id))
	if err != nil {
		return pets.Pet{}, storeErr("pets.get", err)
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = ?
		ORDER BY created_at DESC, id DESC`, ownerUserID)
	if err != nil {
		return nil, storeErr("pets.list_by_owner", err)
	}
	defer rows.Close()
	return collectPets(rows, "pets.list_by_owner")
}

func (r *PetsRepo) UpdateStatus(ctx context.Context, id string, status pets.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pets SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), toMillis(updatedAt), id)
	if err != nil {
		return storeErr("pets.update_status", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return datastore.ErrNotFound
	}
	return nil
}

// Search compara breed con lower() en ambos lados; LIKE en SQLite no tiene
// escape por defecto, se declara '\'.
func (r *PetsRepo) Search(ctx context.Context, f pets.SearchFilter) ([]pets.Pet, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + petColumns + `
		FROM pets
		WHERE status = ?`)
	args := []any{string(pets.StatusAvailable)}

	if f.Species != "" {
		sb.WriteString(" AND species = ?")
		args = append(args, string(f.Species))
	}
	if f.Breed != "" {
		sb.WriteString(` AND lower(breed) LIKE lower(?) ESCAPE '\'`)
		args = append(args, containsPattern(f.Breed))
	}
	if len(f.Sizes) > 0 {
		sb.WriteString(" AND size IN (" + placeholders(len(f.Sizes)) + ")")
		for _, s := range f.Sizes {
			args = append(args, string(s))
		}
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
		p                                   pets.Pet
		species, gender, size, stat, images string
		createdAt, updatedAt                int64
	)
	if err := s.Scan(
		&p.ID, &p.OwnerUserID, &p.Name,
		&species, &p.Breed, &gender, &size,
		&p.AgeMonths, &p.Description, &stat,
		&images, &p.Location,
		&createdAt, &updatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	imgs, err := parseJSONList[string](images)
	if err != nil {
		return pets.Pet{}, err
	}
	p.Species = pets.Species(species)
	p.Gender = pets.Gender(gender)
	p.Size = pets.Size(size)
	p.Status = pets.Status(stat)
	p.Images = imgs
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
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
