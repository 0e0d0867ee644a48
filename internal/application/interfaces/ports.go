package interfaces

import (
	"context"

	"foodgram-service/internal/infrastructure/storage"
)

// EventPublisher delivers domain events after the owning write has committed.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

type ImageStore interface {
	Save(ctx context.Context, img *storage.Image) (string, error)
	Delete(ctx context.Context, ref string) error
}

type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}
