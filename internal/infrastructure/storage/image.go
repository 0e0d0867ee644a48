package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/domainerr"
)

const MaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is a decoded upload ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
}

// DecodeDataURL parses "data:<type>;base64,<payload>" as sent by the web client.
func DecodeDataURL(raw string) (*Image, error) {
	header, payload, ok := strings.Cut(strings.TrimSpace(raw), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, domainerr.InvalidField("image", "must be a base64 data url")
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if _, known := imageExtensions[contentType]; !known {
		return nil, domainerr.InvalidField("image", fmt.Sprintf("unsupported image type %q", contentType))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domainerr.InvalidField("image", "invalid base64 payload")
	}
	if len(data) == 0 {
		return nil, domainerr.InvalidField("image", "must not be empty")
	}
	if len(data) > MaxImageBytes {
		return nil, domainerr.InvalidField("image", "must be at most 5MB")
	}
	return &Image{Data: data, ContentType: contentType}, nil
}

func newObjectKey(contentType string) string {
	return path.Join("recipes", uuid.NewString()+imageExtensions[contentType])
}

// joinURL joins a public base with an object key; an empty base yields the key.
func joinURL(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + key
}

// keyFromRef undoes joinURL.
func keyFromRef(base, ref string) string {
	if base == "" {
		return ref
	}
	return strings.TrimPrefix(ref, strings.TrimRight(base, "/")+"/")
}

// Store is implemented by the local and s3 backends.
type Store interface {
	Save(ctx context.Context, img *Image) (string, error)
	Delete(ctx context.Context, ref string) error
}
