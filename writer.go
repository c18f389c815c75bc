package scribe

import "reflect"

// PropertyWriter describes how one named property is extracted and
// emitted. Writers are built by introspection or by hand, handed to a
// Builder, and referenced (not copied) by the finalized Descriptor.
type PropertyWriter struct {
	// Name is the output field name.
	Name string

	// FieldName is the Go struct field name, used in error messages.
	FieldName string

	// TypeName is the field's Go type, informational.
	TypeName string

	// Index is the reflect.Value.FieldByIndex access path.
	Index []int

	// Views lists the views this property is visible in.
	// Empty means visible in every view.
	Views []string

	// OmitEmpty suppresses emission of zero values.
	OmitEmpty bool
}

// VisibleIn reports whether the property belongs to the named view.
// Properties without view membership belong to every view.
func (w *PropertyWriter) VisibleIn(view string) bool {
	if len(w.Views) == 0 {
		return true
	}
	for _, v := range w.Views {
		if v == view {
			return true
		}
	}
	return false
}

// value extracts the property from a struct value. The second return
// is false when the value is suppressed by OmitEmpty.
func (w *PropertyWriter) value(rv reflect.Value) (any, bool) {
	fv := rv.FieldByIndex(w.Index)
	if w.OmitEmpty && fv.IsZero() {
		return nil, false
	}
	return fv.Interface(), true
}

// AnyGetter binds the wildcard catch-all property: either a map field
// with string keys, or the type's AnyProperties method when Method is
// set. Its pairs are emitted after all named properties.
type AnyGetter struct {
	// FieldName is the Go struct field name; empty for method bindings.
	FieldName string

	// Index is the map field's access path; nil for method bindings.
	Index []int

	// Method indicates the values come from the AnyProvider interface.
	Method bool
}

// FilteredForView computes the view-filtered parallel array for props:
// each slot holds the original writer when it is visible in the view,
// nil when suppressed. The result aligns one-to-one by position and is
// suitable for Builder.SetFilteredProperties.
func FilteredForView(props []*PropertyWriter, view string) []*PropertyWriter {
	filtered := make([]*PropertyWriter, len(props))
	for i, w := range props {
		if w != nil && w.VisibleIn(view) {
			filtered[i] = w
		}
	}
	return filtered
}
