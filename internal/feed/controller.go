// Package feed mantiene la cola local de candidatos del lado cliente: saca
// cartas de forma optimista, registra swipes en segundo plano y pide más
// mascotas cuando la cola baja del umbral.
//
// La cola es una copia descartable; la verdad está en el servidor.
package feed

import (
	"context"
	"errors"
	"sync"

	"pet-adoption/internal/domain/candidates"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/platform/logger"
)

const (
	DefaultThreshold = 2
	DefaultPageSize  = candidates.DefaultPageSize
)

var ErrEmptyQueue = errors.New("feed: queue is empty")

type State int

const (
	StateIdle State = iota
	StateFetching
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Source entrega páginas de candidatos.
type Source interface {
	NextCandidates(ctx context.Context, limit int) (candidates.Page, error)
}

// Recorder persiste un swipe. El controller no espera el resultado.
type Recorder interface {
	RecordSwipe(ctx context.Context, petID string, dir swipes.Direction) error
}

type Options struct {
	// Threshold: con len(cola) <= Threshold se pide otra página.
	Threshold int
	PageSize  int

	// OnError recibe las fallas de recarga (para mostrar un aviso).
	OnError func(error)
	Logger  logger.Logger
}

type Controller struct {
	src  Source
	rec  Recorder
	opts Options
	log  logger.Logger

	mu          sync.Mutex
	state       State
	queue       []pets.Pet
	swiped      map[string]struct{}
	lastRemoved *pets.Pet

	wg sync.WaitGroup
}

// New arranca en Idle con la cola inicial.
func New(src Source, rec Recorder, initial []pets.Pet, opts Options) *Controller {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	q := make([]pets.Pet, len(initial))
	copy(q, initial)

	return &Controller{
		src:    src,
		rec:    rec,
		opts:   opts,
		log:    log.With(map[string]any{"component": "feed"}),
		state:  StateIdle,
		queue:  q,
		swiped: make(map[string]struct{}),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Queue devuelve una copia de la cola actual.
func (c *Controller) Queue() []pets.Pet {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]pets.Pet, len(c.queue))
	copy(out, c.queue)
	return out
}

// Head es la carta visible, si hay.
func (c *Controller) Head() (pets.Pet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return pets.Pet{}, false
	}
	return c.queue[0], true
}

// Swipe saca la carta de arriba, dispara el registro en segundo plano y
// evalúa el umbral de recarga. Devuelve la mascota swipeada.
func (c *Controller) Swipe(ctx context.Context, dir swipes.Direction) (pets.Pet, error) {
	c.mu.Lock()
	if len(c.queue) == 0 {
		c.mu.Unlock()
		return pets.Pet{}, ErrEmptyQueue
	}
	head := c.queue[0]
	c.queue = c.queue[1:]
	c.swiped[head.ID] = struct{}{}
	removed := head
	c.lastRemoved = &removed
	c.ensureFilledLocked(ctx)
	c.wg.Add(1)
	c.mu.Unlock()

	go c.record(context.WithoutCancel(ctx), head.ID, dir)

	return head, nil
}

func (c *Controller) record(ctx context.Context, petID string, dir swipes.Direction) {
	defer c.wg.Done()
	if c.rec == nil {
		return
	}
	if err := c.rec.RecordSwipe(ctx, petID, dir); err != nil {
		c.log.Warn("swipe not recorded", map[string]any{
			"pet_id":    petID,
			"direction": string(dir),
			"error":     err,
		})
	}
}

// Undo devuelve la última carta a la cabeza. Un solo nivel: el segundo
// Undo seguido no hace nada. El swipe ya registrado no se borra.
func (c *Controller) Undo() (pets.Pet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastRemoved == nil {
		return pets.Pet{}, false
	}
	p := *c.lastRemoved
	c.lastRemoved = nil
	delete(c.swiped, p.ID)
	c.queue = append([]pets.Pet{p}, c.queue...)
	return p, true
}

// EnsureFilled dispara una recarga si la cola está en el umbral y no hay
// otra en curso. Una recarga fallida o una página sin mascotas nuevas no se
// reintenta sola: la UI llama a EnsureFilled al quedar la cola vacía (y al
// arrancar con New sin cola inicial).
func (c *Controller) EnsureFilled(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureFilledLocked(ctx)
}

// Reset saca al controller de Exhausted (pull-to-refresh) y reintenta.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateExhausted {
		c.state = StateIdle
	}
	c.ensureFilledLocked(ctx)
}

// Wait bloquea hasta que terminen las recargas y registros pendientes.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) ensureFilledLocked(ctx context.Context) {
	if c.state != StateIdle || len(c.queue) > c.opts.Threshold {
		return
	}
	c.state = StateFetching
	c.wg.Add(1)
	// La recarga sobrevive al ctx del llamador; no se cancela a mitad.
	go c.refill(context.WithoutCancel(ctx))
}

func (c *Controller) refill(ctx context.Context) {
	defer c.wg.Done()

	page, err := c.src.NextCandidates(ctx, c.opts.PageSize)

	c.mu.Lock()
	if err != nil {
		// La cola queda como estaba; se reintenta en el próximo cruce.
		c.state = StateIdle
		c.mu.Unlock()

		c.log.Warn("feed refill failed", map[string]any{"error": err})
		if c.opts.OnError != nil {
			c.opts.OnError(err)
		}
		return
	}

	queued := make(map[string]struct{}, len(c.queue))
	for _, p := range c.queue {
		queued[p.ID] = struct{}{}
	}
	added := 0
	for _, p := range page.Pets {
		if _, ok := queued[p.ID]; ok {
			continue
		}
		if _, ok := c.swiped[p.ID]; ok {
			continue
		}
		queued[p.ID] = struct{}{}
		c.queue = append(c.queue, p)
		added++
	}

	if len(page.Pets) == 0 || !page.HasMore {
		c.state = StateExhausted
	} else {
		c.state = StateIdle
		// Sigue en el umbral pero la página aportó: se pide la siguiente.
		if added > 0 {
			c.ensureFilledLocked(ctx)
		}
	}
	state, size := c.state, len(c.queue)
	c.mu.Unlock()

	c.log.Debug("feed refilled", map[string]any{
		"fetched": len(page.Pets),
		"added":   added,
		"queue":   size,
		"state":   state.String(),
	})
}
