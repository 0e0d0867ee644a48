package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"foodgram-service/internal/config"
	"foodgram-service/internal/infrastructure/logger"
)

const (
	EventRecipeCreated   = "recipe.created"
	EventRecipeUpdated   = "recipe.updated"
	EventRecipeDeleted   = "recipe.deleted"
	EventFavoriteAdded   = "favorite.added"
	EventFavoriteRemoved = "favorite.removed"
	EventCartAdded       = "cart.added"
	EventCartRemoved     = "cart.removed"
	EventFollowAdded     = "follow.added"
	EventFollowRemoved   = "follow.removed"
)

// NATSPublisher sends domain events as JSON to "<prefix>.<event>".
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
	log    *logger.Logger
}

func ConnectNats(cfg config.NATSConfig, baseLog *logger.Logger) (*NATSPublisher, error) {
	log := baseLog.With("component", "NATSPublisher")
	nc, err := nats.Connect(cfg.URL,
		nats.Name("foodgram-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	log.Info("connected to nats", "url", cfg.URL)
	return &NATSPublisher{nc: nc, prefix: cfg.SubjectPrefix, log: log}, nil
}

func (p *NATSPublisher) Subject(event string) string {
	if p.prefix == "" {
		return event
	}
	return p.prefix + "." + event
}

func (p *NATSPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	subject := p.Subject(event)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.log.Debug("event published", "subject", subject)
	return nil
}

// Close drains pending messages before closing the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		if err := p.nc.Drain(); err != nil {
			p.nc.Close()
		}
		p.log.Info("nats connection closed")
	}
}

// NopPublisher drops every event. Used when nats is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
