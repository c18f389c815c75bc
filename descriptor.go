package scribe

// Descriptor is the immutable finalized result of a Builder: a snapshot
// of ordered properties plus the optional filtered variant, any-getter,
// filter id and identity bindings. Once produced it never changes, so
// it is safe to share across goroutines; later mutation of the source
// builder has no effect on it.
type Descriptor struct {
	typeName   string
	properties []*PropertyWriter
	filtered   []*PropertyWriter
	anyGetter  *AnyGetter
	filterID   string
	objectID   *PropertyWriter
	typeID     *PropertyWriter
}

// TypeName returns the name of the described struct type.
func (d *Descriptor) TypeName() string { return d.typeName }

// Properties returns the ordered named properties. The slice is the
// descriptor's snapshot; callers must not modify it.
func (d *Descriptor) Properties() []*PropertyWriter { return d.properties }

// FilteredProperties returns the view-filtered parallel array, or nil
// when no view filtering applies. Nil slots mark suppressed properties.
// Alignment with Properties is the producer's contract; it is not
// checked here.
func (d *Descriptor) FilteredProperties() []*PropertyWriter { return d.filtered }

// AnyGetter returns the wildcard binding, or nil.
func (d *Descriptor) AnyGetter() *AnyGetter { return d.anyGetter }

// FilterID returns the opaque filter selector, or "" when unset.
func (d *Descriptor) FilterID() string { return d.filterID }

// ObjectID returns the object identity binding, or nil.
func (d *Descriptor) ObjectID() *PropertyWriter { return d.objectID }

// TypeID returns the type discriminator binding, or nil.
func (d *Descriptor) TypeID() *PropertyWriter { return d.typeID }

// Document is the ordered field list a Serializer produces from a
// Descriptor. Emitters must encode fields in slice order; a DocField
// value may itself be a Document for nested objects.
type Document struct {
	Fields []DocField
}

// DocField is one name/value pair of a Document.
type DocField struct {
	Name  string
	Value any
}
