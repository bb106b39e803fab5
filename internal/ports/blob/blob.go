// Package blob define el puerto de almacenamiento de archivos (imágenes de gatos).
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// Object es un blob leído del store. El caller cierra Body.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error

	// URL pública (absoluta o relativa al host) con la que se sirve key.
	URL(key string) string
}
