package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/swipes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func petsN(prefix string, n int) []pets.Pet {
	out := make([]pets.Pet, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, pets.Pet{ID: fmt.Sprintf("%s%d", prefix, i)})
	}
	return out
}

// gatedSource bloquea cada fetch hasta que el test lo libera.
type gatedSource struct {
	mu      sync.Mutex
	calls   int
	limits  []int
	pages   []candidates.Page
	errs    []error
	release chan struct{}
}

func newGatedSource() *gatedSource {
	return &gatedSource{release: make(chan struct{}, 16)}
}

func (s *gatedSource) NextCandidates(ctx context.Context, limit int) (candidates.Page, error) {
	<-s.release
	if err := ctx.Err(); err != nil {
		return candidates.Page{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	s.limits = append(s.limits, limit)
	if i < len(s.errs) && s.errs[i] != nil {
		return candidates.Page{}, s.errs[i]
	}
	if i < len(s.pages) {
		return s.pages[i], nil
	}
	return candidates.Page{}, nil
}

func (s *gatedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordedSwipe struct {
	petID string
	dir   swipes.Direction
}

type recorderStub struct {
	mu   sync.Mutex
	got  []recordedSwipe
	fail error
}

func (r *recorderStub) RecordSwipe(ctx context.Context, petID string, dir swipes.Direction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, recordedSwipe{petID: petID, dir: dir})
	return r.fail
}

func ids(items []pets.Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestSwipe_RefillTriggersOncePerCrossing(t *testing.T) {
	src := newGatedSource()
	src.pages = []candidates.Page{{Pets: petsN("n", 3), HasMore: true}}
	rec := &recorderStub{}
	c := New(src, rec, petsN("p", 3), Options{Threshold: 2, PageSize: 5})
	ctx := context.Background()

	// 3 -> 2 cruza el umbral; 2 -> 1 con la recarga en vuelo no dispara otra.
	_, err := c.Swipe(ctx, swipes.DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, StateFetching, c.State())
	_, err = c.Swipe(ctx, swipes.DirectionLeft)
	require.NoError(t, err)

	src.release <- struct{}{}
	c.Wait()

	assert.Equal(t, 1, src.Calls())
	assert.Equal(t, []int{5}, src.limits)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"p3", "n1", "n2", "n3"}, ids(c.Queue()))
	assert.ElementsMatch(t, []recordedSwipe{
		{petID: "p1", dir: swipes.DirectionRight},
		{petID: "p2", dir: swipes.DirectionLeft},
	}, rec.got)
}

func TestRefill_DropsQueuedAndSwipedIDs(t *testing.T) {
	src := newGatedSource()
	src.pages = []candidates.Page{{Pets: []pets.Pet{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "n1"}}, HasMore: true}}
	c := New(src, &recorderStub{}, petsN("p", 3), Options{Threshold: 2})

	_, err := c.Swipe(context.Background(), swipes.DirectionLeft)
	require.NoError(t, err)
	src.release <- struct{}{}
	c.Wait()

	// p1 ya se swipeó y p2/p3 siguen en cola.
	assert.Equal(t, []string{"p2", "p3", "n1"}, ids(c.Queue()))
}

func TestRefill_EmptyPageExhausts(t *testing.T) {
	src := newGatedSource()
	c := New(src, &recorderStub{}, nil, Options{Threshold: 2})

	c.EnsureFilled(context.Background())
	src.release <- struct{}{}
	c.Wait()
	assert.Equal(t, StateExhausted, c.State())

	// En Exhausted no se vuelve a pedir.
	c.EnsureFilled(context.Background())
	c.Wait()
	assert.Equal(t, 1, src.Calls())

	// Pull-to-refresh.
	src.pages = []candidates.Page{{}, {Pets: petsN("n", 1), HasMore: false}}
	c.Reset(context.Background())
	src.release <- struct{}{}
	c.Wait()
	assert.Equal(t, 2, src.Calls())
	assert.Equal(t, StateExhausted, c.State())
	assert.Equal(t, []string{"n1"}, ids(c.Queue()))
}

func TestRefill_FailureKeepsQueueAndRetries(t *testing.T) {
	src := newGatedSource()
	boom := errors.New("store unavailable, retry later")
	src.errs = []error{boom}
	src.pages = []candidates.Page{{}, {Pets: petsN("n", 2), HasMore: true}}

	var (
		mu       sync.Mutex
		reported []error
	)
	c := New(src, &recorderStub{}, petsN("p", 3), Options{
		Threshold: 2,
		OnError: func(err error) {
			mu.Lock()
			defer mu.Unlock()
			reported = append(reported, err)
		},
	})
	ctx := context.Background()

	_, err := c.Swipe(ctx, swipes.DirectionLeft)
	require.NoError(t, err)
	src.release <- struct{}{}
	c.Wait()

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"p2", "p3"}, ids(c.Queue()))
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)

	// El siguiente cruce reintenta.
	_, err = c.Swipe(ctx, swipes.DirectionLeft)
	require.NoError(t, err)
	src.release <- struct{}{}
	c.Wait()
	assert.Equal(t, 2, src.Calls())
	assert.Equal(t, []string{"p3", "n1", "n2"}, ids(c.Queue()))
}

func TestUndo_SingleLevel(t *testing.T) {
	src := newGatedSource()
	rec := &recorderStub{}
	c := New(src, rec, petsN("p", 5), Options{Threshold: 1})
	ctx := context.Background()

	_, ok := c.Undo()
	assert.False(t, ok)

	_, err := c.Swipe(ctx, swipes.DirectionLeft)
	require.NoError(t, err)
	_, err = c.Swipe(ctx, swipes.DirectionRight)
	require.NoError(t, err)

	p, ok := c.Undo()
	require.True(t, ok)
	assert.Equal(t, "p2", p.ID)
	after := ids(c.Queue())
	assert.Equal(t, []string{"p2", "p3", "p4", "p5"}, after)

	_, ok = c.Undo()
	assert.False(t, ok)
	assert.Equal(t, after, ids(c.Queue()))

	c.Wait()
	// El undo no borra lo registrado.
	assert.Len(t, rec.got, 2)
	assert.Zero(t, src.Calls())
}

func TestSwipe_EmptyQueueAndRecorderFailure(t *testing.T) {
	src := newGatedSource()
	rec := &recorderStub{fail: errors.New("network down")}
	c := New(src, rec, petsN("p", 1), Options{Threshold: 0})
	ctx := context.Background()

	head, ok := c.Head()
	require.True(t, ok)
	assert.Equal(t, "p1", head.ID)

	// La falla al registrar no frena al usuario.
	got, err := c.Swipe(ctx, swipes.DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = c.Swipe(ctx, swipes.DirectionRight)
	assert.ErrorIs(t, err, ErrEmptyQueue)

	src.release <- struct{}{}
	c.Wait()
	assert.Len(t, rec.got, 1)
}

func TestSwipe_RefillOutlivesCallerContext(t *testing.T) {
	src := newGatedSource()
	src.pages = []candidates.Page{{Pets: petsN("n", 3), HasMore: true}}

	var (
		mu       sync.Mutex
		reported []error
	)
	c := New(src, &recorderStub{}, petsN("p", 3), Options{
		Threshold: 2,
		OnError: func(err error) {
			mu.Lock()
			defer mu.Unlock()
			reported = append(reported, err)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	_, err := c.Swipe(ctx, swipes.DirectionRight)
	require.NoError(t, err)
	cancel()

	src.release <- struct{}{}
	c.Wait()

	assert.Empty(t, reported)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"p2", "p3", "n1", "n2", "n3"}, ids(c.Queue()))
}

func TestRefill_ChainsWhileBelowThreshold(t *testing.T) {
	src := newGatedSource()
	src.pages = []candidates.Page{
		{Pets: petsN("a", 1), HasMore: true},
		{Pets: petsN("b", 3), HasMore: true},
	}
	c := New(src, &recorderStub{}, nil, Options{Threshold: 2})

	src.release <- struct{}{}
	src.release <- struct{}{}
	c.EnsureFilled(context.Background())
	c.Wait()

	// La primera página deja la cola en 1: se encadena otra sin swipe.
	assert.Equal(t, 2, src.Calls())
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, []string{"a1", "b1", "b2", "b3"}, ids(c.Queue()))
}

func TestRefill_OnlyDuplicatesWaitsForEnsureFilled(t *testing.T) {
	src := newGatedSource()
	src.pages = []candidates.Page{
		{Pets: []pets.Pet{{ID: "p2"}, {ID: "p3"}}, HasMore: true},
		{Pets: petsN("n", 2), HasMore: false},
	}
	c := New(src, &recorderStub{}, petsN("p", 3), Options{Threshold: 2})
	ctx := context.Background()

	_, err := c.Swipe(ctx, swipes.DirectionLeft)
	require.NoError(t, err)
	src.release <- struct{}{}
	c.Wait()

	// Nada nuevo: no se pide otra página hasta el próximo EnsureFilled.
	assert.Equal(t, 1, src.Calls())
	assert.Equal(t, StateIdle, c.State())

	src.release <- struct{}{}
	c.EnsureFilled(ctx)
	c.Wait()
	assert.Equal(t, 2, src.Calls())
	assert.Equal(t, StateExhausted, c.State())
	assert.Equal(t, []string{"p2", "p3", "n1", "n2"}, ids(c.Queue()))
}
