// Package memory guarda blobs en memoria (dev y tests).
package memory

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"kittygram/internal/ports/blob"
)

// DefaultBaseURL: el router sirve los blobs bajo /media/.
const DefaultBaseURL = "/media/"

type object struct {
	data        []byte
	contentType string
}

type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
}

func NewStore(baseURL string) *Store {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Store{
		objects: make(map[string]object),
		baseURL: baseURL,
	}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[key] = object{data: cp, contentType: contentType}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (blob.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return blob.Object{}, blob.ErrNotFound
	}
	return blob.Object{
		Key:         key,
		ContentType: o.contentType,
		Size:        int64(len(o.data)),
		Body:        io.NopCloser(bytes.NewReader(o.data)),
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(key, "/")
}

// Len devuelve la cantidad de blobs guardados.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
