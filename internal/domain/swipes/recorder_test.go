package swipes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/domain/matches"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/datastore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// -------------------------
// Test repo (in-memory, UNIQUE(user, pet))
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	rows []Swipe
	pets map[string]bool // nil = todas existen
	err  error
}

func (r *testRepo) Insert(ctx context.Context, s Swipe) (Swipe, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Swipe{}, false, r.err
	}
	if r.pets != nil && !r.pets[s.PetID] {
		return Swipe{}, false, datastore.ErrNotFound
	}
	for _, existing := range r.rows {
		if existing.UserID == s.UserID && existing.PetID == s.PetID {
			return existing, false, nil
		}
	}
	r.rows = append(r.rows, s)
	return s, true, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Swipe, 0)
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *testRepo) ListLikesByPet(ctx context.Context, petID string) ([]Swipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Swipe, 0)
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].PetID == petID && r.rows[i].Direction == DirectionRight {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

type mockFormer struct {
	mock.Mock
}

func (m *mockFormer) FormFromSwipe(ctx context.Context, petID, adopterID string) (matches.Match, bool, error) {
	args := m.Called(ctx, petID, adopterID)
	return args.Get(0).(matches.Match), args.Bool(1), args.Error(2)
}

func TestRecord_RejectsInvalidInput(t *testing.T) {
	rec := NewRecorder(&testRepo{}, nil, PolicyAuto, logger.Nop())
	ctx := context.Background()

	_, err := rec.Record(ctx, "", "pet-1", DirectionLeft)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = rec.Record(ctx, "u1", " ", DirectionLeft)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = rec.Record(ctx, "u1", "pet-1", "up")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecord_NoDuplicateSwipes(t *testing.T) {
	repo := &testRepo{}
	rec := NewRecorder(repo, nil, PolicyOwnerConfirms, logger.Nop())
	ctx := context.Background()

	first, err := rec.Record(ctx, "u1", "pet-1", DirectionLeft)
	require.NoError(t, err)
	assert.True(t, first.Recorded)
	assert.False(t, first.Duplicate)

	second, err := rec.Record(ctx, "u1", "pet-1", DirectionRight)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Swipe.ID, second.Swipe.ID)
	assert.Equal(t, DirectionLeft, second.Swipe.Direction)

	assert.Len(t, repo.rows, 1)
}

func TestRecord_ConcurrentSameDecision(t *testing.T) {
	repo := &testRepo{}
	rec := NewRecorder(repo, nil, PolicyOwnerConfirms, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rec.Record(context.Background(), "u1", "pet-1", DirectionRight)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, repo.rows, 1)
}

func TestRecord_RightSwipeFormsMatchUnderAutoPolicy(t *testing.T) {
	ctx := context.Background()
	former := new(mockFormer)
	m := matches.Match{ID: "m-1", PetID: "pet-1", AdopterID: "u1", OwnerID: "o1", Status: matches.StatusMatched}
	// Dos llamadas: la del swipe nuevo y la del duplicado (reintento idempotente).
	former.On("FormFromSwipe", ctx, "pet-1", "u1").Return(m, true, nil).Twice()

	rec := NewRecorder(&testRepo{}, former, PolicyAuto, logger.Nop())

	out, err := rec.Record(ctx, "u1", "pet-1", DirectionRight)
	require.NoError(t, err)
	require.NotNil(t, out.Match)
	assert.Equal(t, "m-1", out.Match.ID)

	_, err = rec.Record(ctx, "u1", "pet-1", DirectionRight)
	require.NoError(t, err)

	former.AssertExpectations(t)
}

func TestRecord_LeftOrOwnerConfirmsNeverForms(t *testing.T) {
	ctx := context.Background()
	former := new(mockFormer)

	_, err := NewRecorder(&testRepo{}, former, PolicyAuto, logger.Nop()).Record(ctx, "u1", "pet-1", DirectionLeft)
	require.NoError(t, err)

	_, err = NewRecorder(&testRepo{}, former, PolicyOwnerConfirms, logger.Nop()).Record(ctx, "u1", "pet-2", DirectionRight)
	require.NoError(t, err)

	former.AssertNotCalled(t, "FormFromSwipe", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecord_SwallowsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))
	ctx := context.Background()

	// Store caído: no error, Recorded=false, warn logueado.
	repo := &testRepo{err: datastore.Unavailable("insert swipe", errors.New("conn refused"))}
	out, err := NewRecorder(repo, nil, PolicyAuto, log).Record(ctx, "u1", "pet-1", DirectionRight)
	require.NoError(t, err)
	assert.False(t, out.Recorded)
	assert.Equal(t, 1, logs.FilterMessage("swipe not persisted").Len())

	// Mascota inexistente (FK): también blando.
	repo = &testRepo{pets: map[string]bool{}}
	_, err = NewRecorder(repo, nil, PolicyAuto, log).Record(ctx, "u1", "ghost", DirectionLeft)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("swipe not persisted").Len())

	// Former falla: swipe queda, match no.
	former := new(mockFormer)
	former.On("FormFromSwipe", ctx, "pet-1", "u1").Return(matches.Match{}, false, errors.New("boom"))
	out, err = NewRecorder(&testRepo{}, former, PolicyAuto, log).Record(ctx, "u1", "pet-1", DirectionRight)
	require.NoError(t, err)
	assert.True(t, out.Recorded)
	assert.Nil(t, out.Match)
	assert.Equal(t, 1, logs.FilterMessage("match not formed").Len())

	// Like propio: se omite sin warn.
	former = new(mockFormer)
	former.On("FormFromSwipe", ctx, "pet-9", "u1").Return(matches.Match{}, false, matches.ErrSelfMatch)
	_, err = NewRecorder(&testRepo{}, former, PolicyAuto, log).Record(ctx, "u1", "pet-9", DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("match not formed").Len())
}

// -------------------------
// History
// -------------------------

type petsStub map[string]pets.Pet

func (p petsStub) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	pet, ok := p[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return pet, nil
}

type matchesStub []matches.Match

func (m matchesStub) ListForUser(ctx context.Context, userID string) ([]matches.Match, error) {
	return m, nil
}

func TestHistory_LikedExcludesMatched(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &testRepo{rows: []Swipe{
		{ID: "s1", UserID: "u1", PetID: "a", Direction: DirectionRight, SwipedAt: base},
		{ID: "s2", UserID: "u1", PetID: "b", Direction: DirectionLeft, SwipedAt: base.Add(time.Minute)},
		{ID: "s3", UserID: "u1", PetID: "c", Direction: DirectionRight, SwipedAt: base.Add(2 * time.Minute)},
		{ID: "s4", UserID: "u1", PetID: "gone", Direction: DirectionRight, SwipedAt: base.Add(3 * time.Minute)},
	}}
	stub := petsStub{"a": {ID: "a"}, "b": {ID: "b"}, "c": {ID: "c"}}
	h := NewHistory(repo, stub, matchesStub{{PetID: "c", AdopterID: "u1", OwnerID: "o"}})

	liked, err := h.Liked(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "a", liked[0].ID)

	entries, err := h.Swipes(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "s4", entries[0].Swipe.ID)
	assert.Nil(t, entries[0].Pet)
	assert.NotNil(t, entries[3].Pet)

	_, err = h.Liked(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
