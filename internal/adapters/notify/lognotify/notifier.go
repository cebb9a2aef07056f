// Package lognotify es el Notifier por defecto cuando no hay broker
// configurado: deja el evento en el log.
package lognotify

import (
	"context"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"
)

type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log}
}

func (n *Notifier) MatchCreated(ctx context.Context, ev notify.MatchCreated) error {
	n.log.Info("match created", map[string]any{
		"match_id":   ev.MatchID,
		"pet_id":     ev.PetID,
		"adopter_id": ev.AdopterID,
		"owner_id":   ev.OwnerID,
		"source":     string(ev.Source),
	})
	return nil
}

var _ notify.Notifier = (*Notifier)(nil)
