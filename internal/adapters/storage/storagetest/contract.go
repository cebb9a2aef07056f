// Package storagetest tiene la batería de tests que todo driver de storage
// debe pasar. Cada adapter la invoca desde su propio _test.go.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/ports/datastore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory devuelve repos sobre un store vacío.
type Factory func(t *testing.T) storage.Repositories

// Run ejecuta todos los casos contra el driver.
func Run(t *testing.T, newRepos Factory) {
	t.Run("PetsCRUD", func(t *testing.T) { testPetsCRUD(t, newRepos(t)) })
	t.Run("PetsSearch", func(t *testing.T) { testPetsSearch(t, newRepos(t)) })
	t.Run("PreferencesUpsert", func(t *testing.T) { testPreferences(t, newRepos(t)) })
	t.Run("CandidatesExclusion", func(t *testing.T) { testCandidatesExclusion(t, newRepos(t)) })
	t.Run("CandidatesFilters", func(t *testing.T) { testCandidatesFilters(t, newRepos(t)) })
	t.Run("SwipesInsertOrGet", func(t *testing.T) { testSwipesInsertOrGet(t, newRepos(t)) })
	t.Run("MatchesInsertOrGet", func(t *testing.T) { testMatchesInsertOrGet(t, newRepos(t)) })
	t.Run("MatchesConcurrent", func(t *testing.T) { testMatchesConcurrent(t, newRepos(t)) })
}

var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// NewPet arma una mascota válida; offset ordena por created_at.
func NewPet(owner string, offset int, mutate ...func(p *pets.Pet)) pets.Pet {
	at := base.Add(time.Duration(offset) * time.Minute)
	p := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        fmt.Sprintf("pet-%d", offset),
		Species:     pets.SpeciesDog,
		Breed:       "mixed",
		Gender:      pets.GenderFemale,
		Size:        pets.SizeMedium,
		AgeMonths:   12,
		Status:      pets.StatusAvailable,
		Images:      []string{"https://img/" + fmt.Sprint(offset)},
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	for _, m := range mutate {
		m(&p)
	}
	return p
}

func mustCreate(t *testing.T, repos storage.Repositories, p pets.Pet) pets.Pet {
	t.Helper()
	require.NoError(t, repos.Pets.Create(context.Background(), p))
	return p
}

func ids(items []pets.Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func testPetsCRUD(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()
	older := mustCreate(t, repos, NewPet("owner", 1))
	newer := mustCreate(t, repos, NewPet("owner", 2, func(p *pets.Pet) {
		p.Images = []string{"a", "b"}
		p.Location = "Lima, LIM"
	}))
	mustCreate(t, repos, NewPet("other", 3))

	got, err := repos.Pets.GetByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.Name, got.Name)
	assert.Equal(t, []string{"a", "b"}, got.Images)
	assert.Equal(t, "Lima, LIM", got.Location)
	assert.True(t, newer.CreatedAt.Equal(got.CreatedAt))

	_, err = repos.Pets.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	mine, err := repos.Pets.ListByOwner(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{newer.ID, older.ID}, ids(mine))

	require.NoError(t, repos.Pets.UpdateStatus(ctx, older.ID, pets.StatusAdopted, base.Add(time.Hour)))
	got, err = repos.Pets.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, got.Status)

	assert.ErrorIs(t, repos.Pets.UpdateStatus(ctx, uuid.NewString(), pets.StatusAdopted, base), datastore.ErrNotFound)
}

func testPetsSearch(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()

	golden := mustCreate(t, repos, NewPet("o1", 1, func(p *pets.Pet) { p.Breed = "Golden Retriever"; p.Size = pets.SizeSmall }))
	lab := mustCreate(t, repos, NewPet("o2", 2, func(p *pets.Pet) { p.Breed = "Labrador Retriever"; p.Size = pets.SizeLarge }))
	mustCreate(t, repos, NewPet("o1", 3, func(p *pets.Pet) { p.Breed = "Golden mix"; p.Status = pets.StatusAdopted }))
	siamese := mustCreate(t, repos, NewPet("o2", 4, func(p *pets.Pet) { p.Species = pets.SpeciesCat; p.Breed = "Siamese"; p.Size = pets.SizeSmall }))
	odd := mustCreate(t, repos, NewPet("o3", 5, func(p *pets.Pet) { p.Breed = "50% poodle_mix" }))

	got, err := repos.Pets.Search(ctx, pets.SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{odd.ID, siamese.ID, lab.ID, golden.ID}, ids(got))

	got, err = repos.Pets.Search(ctx, pets.SearchFilter{Species: pets.SpeciesDog, Breed: "RETRIEVER"})
	require.NoError(t, err)
	assert.Equal(t, []string{lab.ID, golden.ID}, ids(got))

	got, err = repos.Pets.Search(ctx, pets.SearchFilter{Breed: "retr", Sizes: []pets.Size{pets.SizeSmall, pets.SizeMedium}})
	require.NoError(t, err)
	assert.Equal(t, []string{golden.ID}, ids(got))

	got, err = repos.Pets.Search(ctx, pets.SearchFilter{Species: pets.SpeciesCat})
	require.NoError(t, err)
	assert.Equal(t, []string{siamese.ID}, ids(got))

	// Los comodines de LIKE se buscan literales.
	got, err = repos.Pets.Search(ctx, pets.SearchFilter{Breed: "%"})
	require.NoError(t, err)
	assert.Equal(t, []string{odd.ID}, ids(got))
	got, err = repos.Pets.Search(ctx, pets.SearchFilter{Breed: "_"})
	require.NoError(t, err)
	assert.Equal(t, []string{odd.ID}, ids(got))

	got, err = repos.Pets.Search(ctx, pets.SearchFilter{Breed: "golden", Sizes: []pets.Size{pets.SizeLarge}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func testPreferences(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()

	_, err := repos.Preferences.Get(ctx, "u1")
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	minAge, dist := 3, 25
	p := preferences.Preferences{
		UserID:        "u1",
		Species:       []pets.Species{pets.SpeciesDog, pets.SpeciesCat},
		Sizes:         []pets.Size{pets.SizeSmall},
		AgeMin:        &minAge,
		MaxDistanceKm: &dist,
		UpdatedAt:     base,
	}
	require.NoError(t, repos.Preferences.Upsert(ctx, p))

	got, err := repos.Preferences.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p.Species, got.Species)
	assert.Equal(t, p.Sizes, got.Sizes)
	require.NotNil(t, got.AgeMin)
	assert.Equal(t, 3, *got.AgeMin)
	assert.Nil(t, got.AgeMax)
	require.NotNil(t, got.MaxDistanceKm)
	assert.Equal(t, 25, *got.MaxDistanceKm)

	// Upsert reemplaza.
	p2 := preferences.Preferences{UserID: "u1", UpdatedAt: base.Add(time.Minute)}
	require.NoError(t, repos.Preferences.Upsert(ctx, p2))
	got, err = repos.Preferences.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Species)
	assert.Nil(t, got.AgeMin)
}

func testCandidatesExclusion(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()

	own := mustCreate(t, repos, NewPet("u1", 1))
	swiped := mustCreate(t, repos, NewPet("owner", 2))
	adopted := mustCreate(t, repos, NewPet("owner", 3, func(p *pets.Pet) { p.Status = pets.StatusAdopted }))
	a := mustCreate(t, repos, NewPet("owner", 4))
	b := mustCreate(t, repos, NewPet("owner", 5))

	_, _, err := repos.Swipes.Insert(ctx, swipes.Swipe{
		ID: uuid.NewString(), UserID: "u1", PetID: swiped.ID, Direction: swipes.DirectionLeft, SwipedAt: base,
	})
	require.NoError(t, err)

	got, err := repos.Candidates.ListCandidates(ctx, candidates.Filter{UserID: "u1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, ids(got))
	for _, p := range got {
		assert.NotEqual(t, own.ID, p.ID)
		assert.NotEqual(t, adopted.ID, p.ID)
	}

	// Otro usuario sí ve la mascota swipeada por u1.
	got, err = repos.Candidates.ListCandidates(ctx, candidates.Filter{UserID: "u2", Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, ids(got), swiped.ID)

	got, err = repos.Candidates.ListCandidates(ctx, candidates.Filter{UserID: "u1", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(got))
}

func testCandidatesFilters(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()

	smallDog := mustCreate(t, repos, NewPet("owner", 1, func(p *pets.Pet) { p.Size = pets.SizeSmall; p.AgeMonths = 6 }))
	mediumDog := mustCreate(t, repos, NewPet("owner", 2, func(p *pets.Pet) { p.Size = pets.SizeMedium; p.AgeMonths = 40 }))
	mustCreate(t, repos, NewPet("owner", 3, func(p *pets.Pet) { p.Size = pets.SizeLarge }))
	mustCreate(t, repos, NewPet("owner", 4, func(p *pets.Pet) { p.Species = pets.SpeciesCat; p.Size = pets.SizeSmall }))

	got, err := repos.Candidates.ListCandidates(ctx, candidates.Filter{
		UserID:  "u1",
		Species: []pets.Species{pets.SpeciesDog},
		Sizes:   []pets.Size{pets.SizeSmall, pets.SizeMedium},
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{mediumDog.ID, smallDog.ID}, ids(got))
	for _, p := range got {
		assert.Equal(t, pets.SpeciesDog, p.Species)
	}

	minAge, maxAge := 6, 24
	got, err = repos.Candidates.ListCandidates(ctx, candidates.Filter{
		UserID: "u1",
		Sizes:  []pets.Size{pets.SizeSmall, pets.SizeMedium},
		AgeMin: &minAge,
		AgeMax: &maxAge,
		Limit:  10,
	})
	require.NoError(t, err)
	// El gato pequeño tiene 12 meses y entra; el perro de 40 queda fuera.
	assert.Len(t, got, 2)
	assert.NotContains(t, ids(got), mediumDog.ID)
	assert.Contains(t, ids(got), smallDog.ID)
}

func testSwipesInsertOrGet(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()
	p := mustCreate(t, repos, NewPet("owner", 1))
	q := mustCreate(t, repos, NewPet("owner", 2))

	first := swipes.Swipe{ID: uuid.NewString(), UserID: "u1", PetID: p.ID, Direction: swipes.DirectionRight, SwipedAt: base}
	stored, created, err := repos.Swipes.Insert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, first.ID, stored.ID)

	again := swipes.Swipe{ID: uuid.NewString(), UserID: "u1", PetID: p.ID, Direction: swipes.DirectionLeft, SwipedAt: base.Add(time.Minute)}
	stored, created, err = repos.Swipes.Insert(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, swipes.DirectionRight, stored.Direction)

	_, _, err = repos.Swipes.Insert(ctx, swipes.Swipe{
		ID: uuid.NewString(), UserID: "u1", PetID: q.ID, Direction: swipes.DirectionLeft, SwipedAt: base.Add(2 * time.Minute),
	})
	require.NoError(t, err)
	_, _, err = repos.Swipes.Insert(ctx, swipes.Swipe{
		ID: uuid.NewString(), UserID: "u2", PetID: p.ID, Direction: swipes.DirectionRight, SwipedAt: base.Add(3 * time.Minute),
	})
	require.NoError(t, err)

	// FK: mascota inexistente.
	_, _, err = repos.Swipes.Insert(ctx, swipes.Swipe{
		ID: uuid.NewString(), UserID: "u1", PetID: uuid.NewString(), Direction: swipes.DirectionLeft, SwipedAt: base,
	})
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	mine, err := repos.Swipes.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, q.ID, mine[0].PetID)

	likes, err := repos.Swipes.ListLikesByPet(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, "u2", likes[0].UserID)
	assert.Equal(t, "u1", likes[1].UserID)
}

func newMatch(petID, adopter, owner string, offset int) matches.Match {
	at := base.Add(time.Duration(offset) * time.Minute)
	return matches.Match{
		ID:        uuid.NewString(),
		PetID:     petID,
		AdopterID: adopter,
		OwnerID:   owner,
		Status:    matches.StatusMatched,
		MatchedAt: at,
		UpdatedAt: at,
	}
}

func testMatchesInsertOrGet(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()
	p := mustCreate(t, repos, NewPet("owner", 1))
	q := mustCreate(t, repos, NewPet("owner", 2))

	_, err := repos.Matches.Find(ctx, p.ID, "u1", "owner")
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	m1 := newMatch(p.ID, "u1", "owner", 1)
	stored, created, err := repos.Matches.Insert(ctx, m1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, m1.ID, stored.ID)

	stored, created, err = repos.Matches.Insert(ctx, newMatch(p.ID, "u1", "owner", 2))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m1.ID, stored.ID)

	found, err := repos.Matches.Find(ctx, p.ID, "u1", "owner")
	require.NoError(t, err)
	assert.Equal(t, m1.ID, found.ID)

	m2 := newMatch(q.ID, "u2", "owner", 3)
	_, _, err = repos.Matches.Insert(ctx, m2)
	require.NoError(t, err)

	_, _, err = repos.Matches.Insert(ctx, newMatch(uuid.NewString(), "u1", "owner", 4))
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	forOwner, err := repos.Matches.ListForUser(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, forOwner, 2)
	assert.Equal(t, m2.ID, forOwner[0].ID)

	forU1, err := repos.Matches.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, forU1, 1)

	byPet, err := repos.Matches.ListByPetOwner(ctx, p.ID, "owner")
	require.NoError(t, err)
	require.Len(t, byPet, 1)

	require.NoError(t, repos.Matches.UpdateStatus(ctx, m1.ID, matches.StatusChatting, base.Add(time.Hour)))
	got, err := repos.Matches.GetByID(ctx, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, matches.StatusChatting, got.Status)

	_, err = repos.Matches.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, datastore.ErrNotFound)
	assert.ErrorIs(t, repos.Matches.UpdateStatus(ctx, uuid.NewString(), matches.StatusClosed, base), datastore.ErrNotFound)
}

func testMatchesConcurrent(t *testing.T, repos storage.Repositories) {
	ctx := context.Background()
	p := mustCreate(t, repos, NewPet("owner", 1))

	const workers = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		seen    = map[string]struct{}{}
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, c, err := repos.Matches.Insert(ctx, newMatch(p.ID, "u1", "owner", i))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			seen[m.ID] = struct{}{}
			if c {
				created++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, seen, 1)

	all, err := repos.Matches.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
