// Package amqpnotify publica eventos de dominio en un exchange topic de
// RabbitMQ, detrás de un circuit breaker.
package amqpnotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"

	"github.com/sony/gobreaker"
	"github.com/streadway/amqp"
)

const (
	RoutingKeyMatchCreated = "match.created"
	DefaultExchange        = "adoption.events"
)

var (
	ErrPublishFailed = errors.New("event publish failed")
	ErrBreakerOpen   = errors.New("event publisher circuit open")
	ErrNotConfigured = errors.New("event publisher not configured")
)

// Channel es lo que usamos de *amqp.Channel.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// ChannelOpener abre un canal por publicación; los canales AMQP no son
// seguros para uso concurrente.
type ChannelOpener func() (Channel, error)

// ConnOpener adapta una conexión real.
func ConnOpener(conn *amqp.Connection) ChannelOpener {
	return func() (Channel, error) {
		return conn.Channel()
	}
}

type Publisher struct {
	open     ChannelOpener
	exchange string
	cb       *gobreaker.CircuitBreaker
	log      logger.Logger
	now      func() time.Time
}

type Options struct {
	Exchange string

	// BreakerTimeout es cuánto queda abierto el breaker antes de probar de nuevo.
	BreakerTimeout time.Duration

	// MaxFailures consecutivas antes de abrir (default 5).
	MaxFailures uint32

	Logger logger.Logger
}

// NewPublisher declara el exchange (topic, durable) y devuelve el publisher.
func NewPublisher(open ChannelOpener, opts Options) (*Publisher, error) {
	if open == nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(opts.Exchange) == "" {
		opts.Exchange = DefaultExchange
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 5
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	p := &Publisher{
		open:     open,
		exchange: opts.Exchange,
		log:      opts.Logger,
		now:      time.Now,
	}
	maxFailures := opts.MaxFailures
	p.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "amqp:" + opts.Exchange,
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.log.Warn("event publisher breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	if err := p.declare(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) declare() error {
	ch, err := p.open()
	if err != nil {
		return fmt.Errorf("%w: open channel: %v", ErrPublishFailed, err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: declare exchange: %v", ErrPublishFailed, err)
	}
	return nil
}

// MatchCreated implementa notify.Notifier.
func (p *Publisher) MatchCreated(ctx context.Context, ev notify.MatchCreated) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		ch, err := p.open()
		if err != nil {
			return nil, err
		}
		defer ch.Close()

		return nil, ch.Publish(p.exchange, RoutingKeyMatchCreated, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.MatchID,
			Type:         RoutingKeyMatchCreated,
			Timestamp:    p.now().UTC(),
			Body:         body,
		})
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", ErrBreakerOpen, err)
	default:
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
}

var _ notify.Notifier = (*Publisher)(nil)
