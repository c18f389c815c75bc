package scribe

import (
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register scribe tags with sentinel
	sentinel.Tag("scribe")
	sentinel.Tag("scribe.views")
	sentinel.Tag("scribe.any")
	sentinel.Tag("scribe.objectid")
	sentinel.Tag("scribe.typeid")
}

// For scans T's struct tags and returns a populated Builder. Properties
// appear in field declaration order. The builder is not yet finalized:
// callers may adjust it (views, filtered set, extra bindings) before
// calling Build.
//
// Duplicate scribe.objectid or scribe.typeid tags surface the builder's
// fail-fast binding errors unchanged.
func For[T any]() (*Builder, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, newTagError(ErrInvalidType, "", "expected a struct, got "+rt.Kind().String())
	}

	spec := sentinel.Scan[T]()
	b := NewBuilder(spec.TypeName)

	var props []*PropertyWriter
	for _, field := range spec.Fields {
		name := field.Name
		omitEmpty := false
		if tag, ok := field.Tags["scribe"]; ok {
			if tag == "-" {
				continue
			}
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					omitEmpty = true
				}
			}
		}

		if val, ok := field.Tags["scribe.any"]; ok && val == "true" {
			if field.ReflectType.Kind() != reflect.Map || field.ReflectType.Key().Kind() != reflect.String {
				return nil, newTagError(ErrInvalidTag, field.Name, "scribe.any requires a map with string keys")
			}
			b.SetAnyGetter(&AnyGetter{
				FieldName: field.Name,
				Index:     field.Index,
			})
			continue
		}

		w := &PropertyWriter{
			Name:      name,
			FieldName: field.Name,
			TypeName:  field.Type,
			Index:     field.Index,
			OmitEmpty: omitEmpty,
		}
		if val, ok := field.Tags["scribe.views"]; ok {
			w.Views = splitViews(val)
		}

		// The discriminator is withdrawn from the named set; it is
		// emitted first, from the binding.
		if val, ok := field.Tags["scribe.typeid"]; ok && val == "true" {
			if err := b.SetTypeID(w); err != nil {
				return nil, err
			}
			continue
		}

		// The identity property stays in the named set.
		if val, ok := field.Tags["scribe.objectid"]; ok && val == "true" {
			if err := b.SetObjectID(w); err != nil {
				return nil, err
			}
		}

		props = append(props, w)
	}
	b.SetProperties(props)

	// Type-level metadata comes from override interfaces.
	var zero T
	if f, ok := any(&zero).(Filtered); ok {
		b.SetFilterID(f.FilterID())
	}
	if _, ok := any(&zero).(AnyProvider); ok {
		b.SetAnyGetter(&AnyGetter{Method: true})
	}

	return b, nil
}

// splitViews parses a comma-separated view list, dropping empty entries.
func splitViews(val string) []string {
	var views []string
	for _, v := range strings.Split(val, ",") {
		if v = strings.TrimSpace(v); v != "" {
			views = append(views, v)
		}
	}
	return views
}
