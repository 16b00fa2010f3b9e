// Package snapshot renders components to static HTML.
//
// A snapshot is a one-shot render: the component mounts into a throwaway
// document, pending updates are flushed, and the document serializes to
// HTML. Snapshots feed first-paint responses, static exports and cache
// warming. A Store persists named snapshots; the in-memory store covers
// tests and single-process caches, and an object-store backing can be
// dropped in via the same interface.
package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/quartzui/quartz/pkg/dom"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

// Render renders the component to HTML. The component is mounted, flushed
// and unmounted; no state survives the call.
func Render(root vdom.Component) string {
	doc := dom.NewDocument()
	queue := scheduler.NewQueue()
	rend := renderer.New(doc, renderer.WithQueue(queue))

	node := vdom.H(root)
	rend.Render(node, doc.Body)
	queue.Flush()
	html := doc.HTML()
	rend.Unmount(node)
	return html
}

// Store persists named HTML snapshots.
type Store interface {
	// Put stores a snapshot under the given key.
	Put(ctx context.Context, key string, html string) error

	// Get retrieves a snapshot. It returns ErrNotFound when the key does
	// not exist.
	Get(ctx context.Context, key string) (string, error)
}

// ErrNotFound is returned by Store.Get for missing keys.
var ErrNotFound = fmt.Errorf("snapshot: not found")

// Capture renders the component and stores the result under key.
func Capture(ctx context.Context, store Store, key string, root vdom.Component) (string, error) {
	html := Render(root)
	if err := store.Put(ctx, key, html); err != nil {
		return "", fmt.Errorf("snapshot: store %q: %w", key, err)
	}
	return html, nil
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

// Put implements Store.
func (s *MemStore) Put(ctx context.Context, key string, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = html
	return nil
}

// Get implements Store.
func (s *MemStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	html, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return html, nil
}
