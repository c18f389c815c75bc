package scribe

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"
)

// Option configures serializer construction.
type Option func(*config)

type config struct {
	view          string
	emptyFallback bool
	filters       map[string]PropertyFilter
}

func newConfig(opts []Option) *config {
	cfg := &config{
		filters: make(map[string]PropertyFilter),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithView restricts emission to the properties visible in the named
// view. The filtered parallel array is computed from view membership
// and installed on the builder before finalization.
func WithView(view string) Option {
	return func(cfg *config) {
		cfg.view = view
	}
}

// WithEmptyFallback turns the no-descriptor result into an always-valid
// empty-object descriptor instead of ErrNotSerializable. Type
// discriminator emission is preserved.
func WithEmptyFallback() Option {
	return func(cfg *config) {
		cfg.emptyFallback = true
	}
}

// WithFilter registers a PropertyFilter under the given id at
// construction time. Equivalent to calling SetFilter afterwards.
func WithFilter(id string, f PropertyFilter) Option {
	return func(cfg *config) {
		cfg.filters[id] = f
	}
}

// Serializer emits values of T through an Emitter, driven by the
// immutable Descriptor built for T.
//
// Serializers are safe for concurrent use. SetFilter may be called at
// any time, but a filter required by the descriptor's filter id must be
// registered before the first Marshal: validation runs once, on first
// operation.
type Serializer[T any] struct {
	emitter  Emitter
	desc     *Descriptor
	beanType reflect.Type
	typeName string
	view     string

	// Mutable filter registry protected by mu
	mu      sync.RWMutex
	filters map[string]PropertyFilter

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error
}

// NewSerializer introspects T and finalizes its descriptor. A type with
// no named properties and no any-getter yields ErrNotSerializable
// unless WithEmptyFallback is given.
func NewSerializer[T any](em Emitter, opts ...Option) (*Serializer[T], error) {
	cfg := newConfig(opts)

	b, err := For[T]()
	if err != nil {
		return nil, err
	}
	if cfg.view != "" {
		b.SetFilteredProperties(FilteredForView(b.Properties(), cfg.view))
	}

	desc, ok := b.Build()
	if !ok {
		if !cfg.emptyFallback {
			return nil, fmt.Errorf("%w: type %s has no named properties and no any-getter", ErrNotSerializable, b.TypeName())
		}
		desc = b.BuildEmpty()
	}

	s := &Serializer[T]{
		emitter:  em,
		desc:     desc,
		beanType: reflect.TypeFor[T](),
		typeName: b.TypeName(),
		view:     cfg.view,
		filters:  cfg.filters,
	}

	emitSerializerCreated(context.Background(), em.ContentType(), s.typeName, cfg.view)
	return s, nil
}

// Descriptor returns the finalized descriptor driving this serializer.
func (s *Serializer[T]) Descriptor() *Descriptor {
	return s.desc
}

// View returns the view this serializer was built for, or "".
func (s *Serializer[T]) View() string {
	return s.view
}

// SetFilter registers a filter for the given id.
// Returns the serializer for chaining. Safe for concurrent use.
func (s *Serializer[T]) SetFilter(id string, f PropertyFilter) *Serializer[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[id] = f
	return s
}

// Validate checks that the filter id carried by the descriptor, if any,
// resolves to a registered filter.
//
// Validation also runs automatically on first Marshal. Calling Validate
// explicitly allows catching configuration errors at startup.
func (s *Serializer[T]) Validate() error {
	return s.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (s *Serializer[T]) ensureValidated() error {
	s.validateOnce.Do(func() {
		id := s.desc.FilterID()
		if id == "" {
			return
		}
		s.mu.RLock()
		defer s.mu.RUnlock()
		if _, ok := s.filters[id]; !ok {
			s.validateErr = fmt.Errorf("%w: %q for type %s", ErrMissingFilter, id, s.typeName)
		}
	})
	return s.validateErr
}

// Marshal emits obj as an ordered document: discriminator first, then
// named (or view-filtered) properties in snapshot order, then any-getter
// pairs with sorted keys. A nil obj emits an empty document.
func (s *Serializer[T]) Marshal(ctx context.Context, obj *T) ([]byte, error) {
	if err := s.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitMarshalStart(ctx, s.emitter.ContentType(), s.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitMarshalComplete(ctx, s.emitter.ContentType(), s.typeName,
			len(retData), time.Since(start), retErr)
	}()

	if obj == nil {
		retData, retErr = s.emitter.Emit(Document{})
		return retData, retErr
	}

	s.mu.RLock()
	filter := s.filters[s.desc.FilterID()]
	s.mu.RUnlock()

	seen := map[uintptr]bool{reflect.ValueOf(obj).Pointer(): true}
	doc, err := s.document(reflect.ValueOf(obj).Elem(), filter, seen)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, retErr = s.emitter.Emit(doc)
	if retErr != nil {
		retErr = newEmitError(s.emitter.ContentType(), retErr)
		return nil, retErr
	}
	return retData, nil
}

// document walks the descriptor in order over one struct value.
func (s *Serializer[T]) document(rv reflect.Value, filter PropertyFilter, seen map[uintptr]bool) (Document, error) {
	var doc Document

	if tid := s.desc.TypeID(); tid != nil {
		doc.Fields = append(doc.Fields, DocField{
			Name:  tid.Name,
			Value: rv.FieldByIndex(tid.Index).Interface(),
		})
	}

	writers := s.desc.Properties()
	if filtered := s.desc.FilteredProperties(); filtered != nil {
		writers = filtered
	}

	selfPtr := reflect.PointerTo(s.beanType)
	for _, w := range writers {
		if w == nil {
			continue
		}
		if filter != nil && !filter.Include(w.Name) {
			continue
		}

		fv := rv.FieldByIndex(w.Index)
		if fv.Type() == selfPtr {
			if fv.IsNil() {
				if w.OmitEmpty {
					continue
				}
				doc.Fields = append(doc.Fields, DocField{Name: w.Name, Value: nil})
				continue
			}
			val, err := s.reference(fv, filter, seen)
			if err != nil {
				return Document{}, err
			}
			doc.Fields = append(doc.Fields, DocField{Name: w.Name, Value: val})
			continue
		}

		val, emit := w.value(rv)
		if !emit {
			continue
		}
		doc.Fields = append(doc.Fields, DocField{Name: w.Name, Value: val})
	}

	anyFields, err := s.anyFields(rv)
	if err != nil {
		return Document{}, err
	}
	doc.Fields = append(doc.Fields, anyFields...)

	return doc, nil
}

// reference resolves a self-referential pointer field. A first
// occurrence recurses into a nested document; a repeated occurrence of
// the same instance emits only its identity value.
func (s *Serializer[T]) reference(fv reflect.Value, filter PropertyFilter, seen map[uintptr]bool) (any, error) {
	ptr := fv.Pointer()
	if seen[ptr] {
		oid := s.desc.ObjectID()
		if oid == nil {
			return nil, fmt.Errorf("%w: type %s has no object id binding", ErrRecursiveValue, s.typeName)
		}
		return fv.Elem().FieldByIndex(oid.Index).Interface(), nil
	}
	seen[ptr] = true
	return s.document(fv.Elem(), filter, seen)
}

// anyFields collects the wildcard pairs, keys sorted for deterministic
// output.
func (s *Serializer[T]) anyFields(rv reflect.Value) ([]DocField, error) {
	ag := s.desc.AnyGetter()
	if ag == nil {
		return nil, nil
	}

	var fields []DocField
	if ag.Method {
		provider, ok := rv.Addr().Interface().(AnyProvider)
		if !ok {
			return nil, nil
		}
		for k, v := range provider.AnyProperties() {
			fields = append(fields, DocField{Name: k, Value: v})
		}
	} else {
		mv := rv.FieldByIndex(ag.Index)
		if mv.Kind() != reflect.Map || mv.IsNil() {
			return nil, nil
		}
		iter := mv.MapRange()
		for iter.Next() {
			fields = append(fields, DocField{
				Name:  iter.Key().String(),
				Value: iter.Value().Interface(),
			})
		}
	}

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields, nil
}
