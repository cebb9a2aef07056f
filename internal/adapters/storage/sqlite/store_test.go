package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/adapters/storage/sqlite"
	"pet-adoption/internal/adapters/storage/storagetest"
	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/ports/datastore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "adoption.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Repositories {
		return sqlite.New(openTemp(t))
	})
}

func TestSQLite_OpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "adoption.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	p := storagetest.NewPet("owner", 1)
	require.NoError(t, sqlite.New(db).Pets.Create(ctx, p))
	require.NoError(t, db.Close())

	// Reabrir vuelve a correr goose sin aplicar nada nuevo.
	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := sqlite.New(db).Pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
}

func TestSQLite_ForeignKeysEnforced(t *testing.T) {
	repos := sqlite.New(openTemp(t))

	_, _, err := repos.Swipes.Insert(context.Background(), swipes.Swipe{
		ID:        uuid.NewString(),
		UserID:    "u1",
		PetID:     "does-not-exist",
		Direction: swipes.DirectionRight,
	})
	assert.ErrorIs(t, err, datastore.ErrNotFound)
}
