// Package scribe builds serialization descriptors for struct types.
//
// A Builder accumulates metadata about one struct type — its ordered
// named properties, an optional view-filtered variant, an optional
// wildcard "any getter", identity bindings, and an opaque filter id —
// and finalizes it into an immutable Descriptor. The Descriptor drives
// ordered emission of the struct through an Emitter.
//
// # Pipeline
//
// Metadata flows through three stages:
//
//   - introspection: For[T] scans struct tags into a populated Builder
//   - finalization: Build snapshots the accumulated state into a Descriptor
//   - emission: a Serializer walks the Descriptor in order and an Emitter
//     encodes the resulting Document
//
// Builders may also be populated by hand via their setters when property
// discovery happens elsewhere.
//
// # Tag Syntax
//
// Field behavior is declared via struct tags:
//
//	type User struct {
//	    ID    string         `scribe:"id" scribe.objectid:"true"`
//	    Kind  string         `scribe:"kind" scribe.typeid:"true"`
//	    Name  string         `scribe:"name"`
//	    Email string         `scribe:"email,omitempty" scribe.views:"internal,admin"`
//	    Notes string         `scribe:"-"`
//	    Extra map[string]any `scribe.any:"true"`
//	}
//
// Tags:
//
//	scribe:"name"           - output name (default: Go field name)
//	scribe:"name,omitempty" - suppress zero values
//	scribe:"-"              - exclude the field
//	scribe.views:"a,b"      - restrict visibility to the named views
//	scribe.any:"true"       - wildcard catch-all (map with string keys)
//	scribe.objectid:"true"  - object identity property
//	scribe.typeid:"true"    - type discriminator, emitted first
//
// # Basic Usage
//
//	ser, _ := scribe.Use[User](json.New())
//	data, _ := ser.Marshal(ctx, &user)
//
// Named properties are emitted in field declaration order; any-getter
// pairs follow them with sorted keys. A view restricts emission to the
// properties visible in that view:
//
//	ser, _ := scribe.Use[User](json.New(), scribe.WithView("internal"))
//
// # Identity
//
// At most one object identity and at most one type identity binding may
// exist per type; a second binding fails immediately. With an object
// identity bound, a repeated occurrence of the same instance within one
// Marshal call emits only its id value instead of the full object.
//
// # Emitter Providers
//
// Order-preserving emitters are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - yaml - YAML encoding (application/yaml)
package scribe

// Emitter encodes an ordered Document into bytes.
type Emitter interface {
	// ContentType returns the MIME type for this emitter (e.g., "application/json").
	ContentType() string

	// Emit encodes doc, preserving field order.
	Emit(doc Document) ([]byte, error)
}

// PropertyFilter decides per-property visibility at emission time.
// Filters are registered on a Serializer under the id a Descriptor
// carries; resolution never happens during descriptor construction.
type PropertyFilter interface {
	// Include reports whether the named property should be emitted.
	Include(name string) bool
}

// Override interfaces allow types to supply metadata that has no
// field-level tag home. They are checked once, during introspection.

// Filtered declares a type-level filter id. The id is stored opaquely
// on the Descriptor and resolved against the Serializer's registered
// filters on first use.
type Filtered interface {
	// FilterID returns the filter selector for this type.
	FilterID() string
}

// AnyProvider supplies wildcard properties from a method instead of a
// tagged map field. When a type implements it, the method takes
// precedence over any scribe.any tag.
type AnyProvider interface {
	// AnyProperties returns the catch-all key/value pairs.
	// Pairs are emitted after all named properties, keys sorted.
	AnyProperties() map[string]any
}
