package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/adapters/storage/postgres/migrations"
	"pet-adoption/internal/ports/datastore"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// SQLSTATE que se traducen a errores de dominio.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate aplica las migraciones embebidas con goose.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// New arma los repositorios sobre una conexión ya migrada.
func New(db *sql.DB) storage.Repositories {
	return storage.Repositories{
		Pets:        NewPetsRepo(db),
		Preferences: NewPreferencesRepo(db),
		Candidates:  NewCandidatesRepo(db),
		Swipes:      NewSwipesRepo(db),
		Matches:     NewMatchesRepo(db),
	}
}

// storeErr traduce errores del driver: sin filas o FK rota => ErrNotFound,
// el resto es transitorio.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return datastore.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return datastore.ErrNotFound
	}
	return datastore.Unavailable(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// jsonList serializa listas para columnas JSONB; nil se guarda como [].
func jsonList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parseJSONList[T any](raw []byte) ([]T, error) {
	out := make([]T, 0)
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma '%texto%' escapando los comodines de LIKE con '\'.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
