package scribe

import "context"

// Builder aggregates serialization metadata for one struct type before
// it is finalized into an immutable Descriptor. A builder is populated
// by repeated setter calls from a single construction pass; it provides
// no internal synchronization.
//
// Build may be called any number of times. Each call reads the current
// state and produces an independent snapshot; the builder stays usable
// afterwards.
type Builder struct {
	typeName string

	// Named properties, in order of serialization.
	properties []*PropertyWriter

	// Optional view-filtered parallel array; nil means no view-based
	// filtering, nil slots mark suppressed properties.
	filtered []*PropertyWriter

	// Optional wildcard catch-all binding.
	anyGetter *AnyGetter

	// Opaque filter selector, resolved downstream.
	filterID string

	// Identity bindings, each single-assignment.
	objectID *PropertyWriter
	typeID   *PropertyWriter
}

// NewBuilder creates a builder for the named struct type. The type name
// feeds error messages, signals, and empty descriptors.
func NewBuilder(typeName string) *Builder {
	return &Builder{typeName: typeName}
}

// TypeName returns the name of the described struct type.
func (b *Builder) TypeName() string { return b.typeName }

// HasProperties reports whether a non-empty property set is held.
func (b *Builder) HasProperties() bool {
	return len(b.properties) > 0
}

// Properties returns the live backing slice. It reflects later setter
// calls until Build snapshots it.
func (b *Builder) Properties() []*PropertyWriter {
	return b.properties
}

// SetProperties replaces the entire ordered property set. There is no
// merge with a prior set; the last write wins.
func (b *Builder) SetProperties(props []*PropertyWriter) {
	b.properties = props
}

// SetFilteredProperties stores the view-filtered parallel array as-is.
// Length alignment with the named set is the caller's contract and is
// enforced only downstream, at emission.
func (b *Builder) SetFilteredProperties(props []*PropertyWriter) {
	b.filtered = props
}

// SetFilterID stores the opaque filter selector. Whether it resolves to
// a registered filter is checked by the emitting side, not here.
func (b *Builder) SetFilterID(id string) {
	b.filterID = id
}

// SetAnyGetter stores the wildcard binding. It may coexist with named
// properties (emitted after them) or stand alone as the sole
// serialization mechanism.
func (b *Builder) SetAnyGetter(ag *AnyGetter) {
	b.anyGetter = ag
}

// SetObjectID binds the object identity property. A second call fails
// with ErrDuplicateObjectID even for the same writer: legitimate
// configurations never bind twice.
func (b *Builder) SetObjectID(w *PropertyWriter) error {
	if b.objectID != nil {
		return newBindingError(ErrDuplicateObjectID, b.objectID.Name, w.Name)
	}
	b.objectID = w
	return nil
}

// SetTypeID binds the type discriminator property. A second call fails
// with ErrDuplicateTypeID even for the same writer.
func (b *Builder) SetTypeID(w *PropertyWriter) error {
	if b.typeID != nil {
		return newBindingError(ErrDuplicateTypeID, b.typeID.Name, w.Name)
	}
	b.typeID = w
	return nil
}

// Clone duplicates the builder for specialization before finalization.
// The copy shares the accumulated properties, filtered set, any-getter
// and filter id; identity bindings are deliberately not carried, so a
// specialized variant binds its own.
func (b *Builder) Clone() *Builder {
	return &Builder{
		typeName:   b.typeName,
		properties: b.properties,
		filtered:   b.filtered,
		anyGetter:  b.anyGetter,
		filterID:   b.filterID,
	}
}

// Build finalizes the current state into a Descriptor. With no named
// properties and no any-getter there is nothing to describe and Build
// returns (nil, false); the caller picks a fallback strategy, typically
// BuildEmpty. With an any-getter alone the descriptor carries zero
// named properties.
//
// The property set is snapshotted: mutating the builder afterwards
// never alters a previously built descriptor. Build itself never fails.
func (b *Builder) Build() (*Descriptor, bool) {
	var props []*PropertyWriter
	if len(b.properties) == 0 {
		if b.anyGetter == nil {
			return nil, false
		}
	} else {
		props = make([]*PropertyWriter, len(b.properties))
		copy(props, b.properties)
	}

	d := &Descriptor{
		typeName:   b.typeName,
		properties: props,
		filtered:   b.filtered,
		anyGetter:  b.anyGetter,
		filterID:   b.filterID,
		objectID:   b.objectID,
		typeID:     b.typeID,
	}

	emitDescriptorBuilt(context.Background(), b.typeName, len(props))
	return d, true
}

// BuildEmpty unconditionally returns a minimal descriptor with zero
// properties, regardless of accumulated state. The type discriminator
// binding is kept so an empty object still emits type information.
func (b *Builder) BuildEmpty() *Descriptor {
	emitDescriptorEmpty(context.Background(), b.typeName)
	return &Descriptor{
		typeName: b.typeName,
		typeID:   b.typeID,
	}
}
