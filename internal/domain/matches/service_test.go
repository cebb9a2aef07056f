package matches

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/datastore"
	"pet-adoption/internal/ports/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// -------------------------
// Test repo (in-memory, unique por clave natural)
// -------------------------

type testRepo struct {
	mu    sync.Mutex
	byID  map[string]Match
	byKey map[string]string
	// findMiss fuerza a Find a fallar para ejercitar la carrera en Insert.
	findMiss bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Match{}, byKey: map[string]string{}}
}

func key(petID, adopterID, ownerID string) string {
	return petID + "|" + adopterID + "|" + ownerID
}

func (r *testRepo) Find(ctx context.Context, petID, adopterID, ownerID string) (Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findMiss {
		return Match{}, datastore.ErrNotFound
	}
	id, ok := r.byKey[key(petID, adopterID, ownerID)]
	if !ok {
		return Match{}, datastore.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) Insert(ctx context.Context, m Match) (Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(m.PetID, m.AdopterID, m.OwnerID)
	if id, ok := r.byKey[k]; ok {
		return r.byID[id], false, nil
	}
	r.byKey[k] = m.ID
	r.byID[m.ID] = m
	return m, true, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return Match{}, datastore.ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListForUser(ctx context.Context, userID string) ([]Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Match, 0)
	for _, m := range r.byID {
		if m.IsParticipant(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) ListByPetOwner(ctx context.Context, petID, ownerID string) ([]Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Match, 0)
	for _, m := range r.byID {
		if m.PetID == petID && m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return datastore.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = updatedAt
	r.byID[id] = m
	return nil
}

type ownersStub map[string]string

func (o ownersStub) OwnerOf(ctx context.Context, petID string) (string, error) {
	owner, ok := o[petID]
	if !ok {
		return "", pets.ErrNotFound
	}
	return owner, nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) MatchCreated(ctx context.Context, ev notify.MatchCreated) error {
	return m.Called(ctx, ev).Error(0)
}

func newTestService(t *testing.T) (*Service, *testRepo, *mockNotifier) {
	t.Helper()
	repo := newTestRepo()
	n := new(mockNotifier)
	svc := NewService(repo, ownersStub{"pet-1": "owner-1"}, n, logger.Nop())
	return svc, repo, n
}

func TestFormFromSwipe_CreatesOnceAndNotifies(t *testing.T) {
	svc, _, n := newTestService(t)
	ctx := context.Background()

	n.On("MatchCreated", ctx, mock.MatchedBy(func(ev notify.MatchCreated) bool {
		return ev.PetID == "pet-1" && ev.AdopterID == "adopter-1" && ev.OwnerID == "owner-1" && ev.Source == notify.SourceSwipe
	})).Return(nil).Once()

	m1, created, err := svc.FormFromSwipe(ctx, "pet-1", "adopter-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, StatusMatched, m1.Status)

	m2, created, err := svc.FormFromSwipe(ctx, "pet-1", "adopter-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m1.ID, m2.ID)

	n.AssertExpectations(t)
}

func TestFormFromSwipe_SoftFailures(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.FormFromSwipe(ctx, "missing", "adopter-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.FormFromSwipe(ctx, "pet-1", "owner-1")
	assert.ErrorIs(t, err, ErrSelfMatch)
}

func TestFormFromSwipe_ConcurrentCallersSeeSameMatch(t *testing.T) {
	svc, repo, n := newTestService(t)
	repo.findMiss = true // todos llegan a Insert
	n.On("MatchCreated", mock.Anything, mock.Anything).Return(nil).Once()

	const workers = 16
	ids := make([]string, workers)
	createdCount := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, created, err := svc.FormFromSwipe(context.Background(), "pet-1", "adopter-1")
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			ids[i] = m.ID
			if created {
				createdCount++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, repo.byID, 1)
	n.AssertExpectations(t)
}

func TestCreateFromLike(t *testing.T) {
	svc, _, n := newTestService(t)
	ctx := context.Background()
	n.On("MatchCreated", mock.Anything, mock.MatchedBy(func(ev notify.MatchCreated) bool {
		return ev.Source == notify.SourceLike
	})).Return(nil).Once()

	_, _, err := svc.CreateFromLike(ctx, "", "pet-1", "adopter-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.CreateFromLike(ctx, "owner-1", "missing", "adopter-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.CreateFromLike(ctx, "adopter-1", "pet-1", "adopter-1")
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.CreateFromLike(ctx, "owner-1", "pet-1", " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = svc.CreateFromLike(ctx, "owner-1", "pet-1", "owner-1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	m1, created, err := svc.CreateFromLike(ctx, "owner-1", "pet-1", "adopter-1")
	require.NoError(t, err)
	assert.True(t, created)

	// Idempotente con el camino del swipe.
	m2, created, err := svc.FormFromSwipe(ctx, "pet-1", "adopter-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m1.ID, m2.ID)

	n.AssertExpectations(t)
}

func TestPublishFailureIsLoggedOnly(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := new(mockNotifier)
	n.On("MatchCreated", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := NewService(newTestRepo(), ownersStub{"pet-1": "owner-1"}, n, logger.FromZap(zap.New(core)))

	m, created, err := svc.FormFromSwipe(context.Background(), "pet-1", "adopter-1")
	require.NoError(t, err)
	assert.True(t, created)

	entries := logs.FilterMessage("match created event not published").All()
	require.Len(t, entries, 1)
	assert.Equal(t, m.ID, entries[0].ContextMap()["match_id"])
}

func TestGetAndUpdateStatus_ParticipantsOnly(t *testing.T) {
	svc, _, n := newTestService(t)
	ctx := context.Background()
	n.On("MatchCreated", mock.Anything, mock.Anything).Return(nil)

	m, _, err := svc.FormFromSwipe(ctx, "pet-1", "adopter-1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "stranger", m.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, "owner-1", "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(ctx, "adopter-1", m.ID, "engaged")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, "stranger", m.ID, StatusChatting)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateStatus(ctx, "adopter-1", m.ID, "Chatting")
	require.NoError(t, err)
	assert.Equal(t, StatusChatting, updated.Status)

	got, err := svc.Get(ctx, "owner-1", m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusChatting, got.Status)

	mine, err := svc.ListForUser(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
