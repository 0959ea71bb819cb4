package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dicehall/dicehall/internal/storage"
)

// Broadcaster forwards storage change notifications to SSE clients. This is
// the push side of the re-read model: clients are told which key changed and
// fetch fresh state themselves.
type Broadcaster struct {
	storage storage.Storage
	hub     *Hub
	logger  *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(st storage.Storage, hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		storage: st,
		hub:     hub,
		logger:  logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Run subscribes to storage changes and broadcasts each one until the
// context is cancelled
func (b *Broadcaster) Run(ctx context.Context) error {
	events, err := b.storage.Subscribe(ctx)
	if err != nil {
		return err
	}

	b.logger.Info("sse broadcaster started")
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			b.logger.Error("sse failed to encode change event",
				slog.String("key", event.Key),
				slog.Any("error", err))
			continue
		}
		b.hub.BroadcastEvent("change", string(payload))
	}
	b.logger.Info("sse broadcaster stopped")
	return nil
}
