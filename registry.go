package scribe

import (
	"reflect"
	"sync"
)

// registryKey combines type, emitter content type and view for cache lookup.
type registryKey struct {
	typ         reflect.Type
	contentType string
	view        string
}

var (
	registry   = make(map[registryKey]any)
	registryMu sync.RWMutex
)

// Use returns a cached serializer or builds a new one.
// The serializer is cached by type, emitter content type and view.
func Use[T any](em Emitter, opts ...Option) (*Serializer[T], error) {
	cfg := newConfig(opts)
	key := registryKey{
		typ:         reflect.TypeFor[T](),
		contentType: em.ContentType(),
		view:        cfg.view,
	}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached.(*Serializer[T]), nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached.(*Serializer[T]), nil
	}

	ser, err := NewSerializer[T](em, opts...)
	if err != nil {
		return nil, err
	}

	registry[key] = ser
	return ser, nil
}

// Reset clears the serializer registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
}
