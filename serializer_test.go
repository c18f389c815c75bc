package scribe

import (
	"context"
	"errors"
	"testing"
)

// captureEmitter records emitted documents for order assertions.
type captureEmitter struct {
	docs []Document
}

func (e *captureEmitter) ContentType() string { return "application/x-test" }

func (e *captureEmitter) Emit(doc Document) ([]byte, error) {
	e.docs = append(e.docs, doc)
	return []byte("{}"), nil
}

func (e *captureEmitter) last(t *testing.T) Document {
	t.Helper()
	if len(e.docs) == 0 {
		t.Fatal("no document captured")
	}
	return e.docs[len(e.docs)-1]
}

// failEmitter always fails to encode.
type failEmitter struct{}

func (e *failEmitter) ContentType() string { return "application/x-fail" }

func (e *failEmitter) Emit(Document) ([]byte, error) {
	return nil, errors.New("broken pipe")
}

func docNames(doc Document) []string {
	names := make([]string, len(doc.Fields))
	for i, f := range doc.Fields {
		names[i] = f.Name
	}
	return names
}

type hiddenOnly struct {
	Notes string `scribe:"-"`
}

type cycleNode struct {
	Name string     `scribe:"name"`
	Next *cycleNode `scribe:"next,omitempty"`
}

func TestNewSerializer(t *testing.T) {
	ser, err := NewSerializer[taggedUser](&captureEmitter{})
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}
	if ser == nil {
		t.Fatal("NewSerializer() returned nil")
	}
	if ser.Descriptor() == nil {
		t.Error("Descriptor() returned nil")
	}
	if ser.View() != "" {
		t.Errorf("View() = %q, want empty", ser.View())
	}
}

func TestNewSerializer_NotSerializable(t *testing.T) {
	_, err := NewSerializer[hiddenOnly](&captureEmitter{})
	if !errors.Is(err, ErrNotSerializable) {
		t.Errorf("error = %v, want ErrNotSerializable", err)
	}
}

func TestNewSerializer_EmptyFallback(t *testing.T) {
	em := &captureEmitter{}
	ser, err := NewSerializer[hiddenOnly](em, WithEmptyFallback())
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}

	if _, err := ser.Marshal(context.Background(), &hiddenOnly{Notes: "x"}); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if doc := em.last(t); len(doc.Fields) != 0 {
		t.Errorf("empty fallback emitted fields: %v", docNames(doc))
	}
}

func TestSerializer_Marshal_Order(t *testing.T) {
	em := &captureEmitter{}
	ser, err := NewSerializer[taggedUser](em)
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}

	u := taggedUser{ID: "1", Name: "Alice", Email: "a@example.com", Notes: "secret"}
	if _, err := ser.Marshal(context.Background(), &u); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	doc := em.last(t)
	want := []string{"id", "Name", "email"}
	names := docNames(doc)
	if len(names) != len(want) {
		t.Fatalf("fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, names[i], want[i])
		}
	}
	if doc.Fields[0].Value != "1" || doc.Fields[1].Value != "Alice" {
		t.Errorf("field values = %v", doc.Fields)
	}
}

func TestSerializer_Marshal_OmitEmpty(t *testing.T) {
	em := &captureEmitter{}
	ser, _ := NewSerializer[taggedUser](em)

	u := taggedUser{ID: "1", Name: "Alice"}
	if _, err := ser.Marshal(context.Background(), &u); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	names := docNames(em.last(t))
	if len(names) != 2 || names[0] != "id" || names[1] != "Name" {
		t.Errorf("fields = %v, want [id Name]", names)
	}
}

func TestSerializer_Marshal_Nil(t *testing.T) {
	em := &captureEmitter{}
	ser, _ := NewSerializer[taggedUser](em)

	if _, err := ser.Marshal(context.Background(), nil); err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}
	if doc := em.last(t); len(doc.Fields) != 0 {
		t.Errorf("Marshal(nil) emitted fields: %v", docNames(doc))
	}
}

func TestSerializer_Marshal_View(t *testing.T) {
	tests := []struct {
		view string
		want []string
	}{
		{"internal", []string{"id", "email"}},
		{"admin", []string{"id", "email"}},
		{"public", []string{"id"}},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			em := &captureEmitter{}
			ser, err := NewSerializer[viewedUser](em, WithView(tt.view))
			if err != nil {
				t.Fatalf("NewSerializer() error: %v", err)
			}

			u := viewedUser{ID: "1", Email: "a@example.com"}
			if _, err := ser.Marshal(context.Background(), &u); err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}

			names := docNames(em.last(t))
			if len(names) != len(tt.want) {
				t.Fatalf("fields = %v, want %v", names, tt.want)
			}
			for i := range tt.want {
				if names[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, names[i], tt.want[i])
				}
			}
		})
	}
}

func TestSerializer_Marshal_MissingFilter(t *testing.T) {
	ser, err := NewSerializer[filteredUser](&captureEmitter{})
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}

	if err := ser.Validate(); !errors.Is(err, ErrMissingFilter) {
		t.Errorf("Validate() error = %v, want ErrMissingFilter", err)
	}
	if _, err := ser.Marshal(context.Background(), &filteredUser{ID: "1"}); !errors.Is(err, ErrMissingFilter) {
		t.Errorf("Marshal() error = %v, want ErrMissingFilter", err)
	}
}

func TestSerializer_Marshal_Filter(t *testing.T) {
	em := &captureEmitter{}
	ser, err := NewSerializer[filteredUser](em, WithFilter("user-filter", Except("id")))
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}
	if err := ser.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if _, err := ser.Marshal(context.Background(), &filteredUser{ID: "1"}); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if doc := em.last(t); len(doc.Fields) != 0 {
		t.Errorf("excluded property emitted: %v", docNames(doc))
	}
}

func TestSerializer_SetFilter_Chaining(t *testing.T) {
	ser, err := NewSerializer[filteredUser](&captureEmitter{})
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}

	if got := ser.SetFilter("user-filter", Only("id")); got != ser {
		t.Error("SetFilter() should return serializer for chaining")
	}
	if err := ser.Validate(); err != nil {
		t.Errorf("Validate() error after SetFilter: %v", err)
	}
}

func TestSerializer_Marshal_AnyGetterSorted(t *testing.T) {
	em := &captureEmitter{}
	ser, _ := NewSerializer[wildcardUser](em)

	u := wildcardUser{
		ID:    "1",
		Extra: map[string]any{"zeta": 1, "alpha": 2, "mid": 3},
	}
	if _, err := ser.Marshal(context.Background(), &u); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	names := docNames(em.last(t))
	want := []string{"id", "alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSerializer_Marshal_AnyProvider(t *testing.T) {
	em := &captureEmitter{}
	ser, _ := NewSerializer[providerUser](em)

	u := providerUser{ID: "1", Extra: map[string]any{"ignored": true}}
	if _, err := ser.Marshal(context.Background(), &u); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	doc := em.last(t)
	names := docNames(doc)
	if len(names) != 2 || names[0] != "id" || names[1] != "source" {
		t.Errorf("fields = %v, want [id source]", names)
	}
	if doc.Fields[1].Value != "method" {
		t.Errorf("source = %v, want method", doc.Fields[1].Value)
	}
}

func TestSerializer_Marshal_TypeIDFirst(t *testing.T) {
	em := &captureEmitter{}
	ser, _ := NewSerializer[taggedShape](em)

	s := taggedShape{Kind: "square", Sides: 4}
	if _, err := ser.Marshal(context.Background(), &s); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	doc := em.last(t)
	names := docNames(doc)
	if len(names) != 2 || names[0] != "kind" || names[1] != "sides" {
		t.Errorf("fields = %v, want [kind sides]", names)
	}
	if doc.Fields[0].Value != "square" {
		t.Errorf("kind = %v, want square", doc.Fields[0].Value)
	}
}

func TestSerializer_Marshal_ObjectIdentity(t *testing.T) {
	em := &captureEmitter{}
	ser, err := NewSerializer[taggedNode](em)
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}

	a := &taggedNode{ID: "a"}
	b := &taggedNode{ID: "b", Next: a}
	a.Next = b

	if _, err := ser.Marshal(context.Background(), a); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	doc := em.last(t)
	if len(doc.Fields) != 2 || doc.Fields[0].Value != "a" {
		t.Fatalf("root fields = %v", doc.Fields)
	}

	nested, ok := doc.Fields[1].Value.(Document)
	if !ok {
		t.Fatalf("next = %T, want nested Document", doc.Fields[1].Value)
	}
	if nested.Fields[0].Value != "b" {
		t.Errorf("nested id = %v, want b", nested.Fields[0].Value)
	}

	// The repeated occurrence of a collapses to its identity value.
	if nested.Fields[1].Value != "a" {
		t.Errorf("repeated occurrence = %v, want identity value a", nested.Fields[1].Value)
	}
}

func TestSerializer_Marshal_SharedReferenceOnce(t *testing.T) {
	em := &captureEmitter{}
	ser, _ := NewSerializer[taggedNode](em)

	tail := &taggedNode{ID: "tail"}
	head := &taggedNode{ID: "head", Next: tail}

	if _, err := ser.Marshal(context.Background(), head); err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	doc := em.last(t)
	nested, ok := doc.Fields[1].Value.(Document)
	if !ok {
		t.Fatalf("next = %T, want nested Document", doc.Fields[1].Value)
	}
	// tail has a nil next with omitempty: only its id remains.
	if len(nested.Fields) != 1 || nested.Fields[0].Value != "tail" {
		t.Errorf("nested = %v", nested.Fields)
	}
}

func TestSerializer_Marshal_CycleWithoutObjectID(t *testing.T) {
	ser, err := NewSerializer[cycleNode](&captureEmitter{})
	if err != nil {
		t.Fatalf("NewSerializer() error: %v", err)
	}

	n := &cycleNode{Name: "loop"}
	n.Next = n

	if _, err := ser.Marshal(context.Background(), n); !errors.Is(err, ErrRecursiveValue) {
		t.Errorf("Marshal() error = %v, want ErrRecursiveValue", err)
	}
}

func TestSerializer_Marshal_EmitError(t *testing.T) {
	ser, _ := NewSerializer[taggedUser](&failEmitter{})

	_, err := ser.Marshal(context.Background(), &taggedUser{ID: "1"})
	if !errors.Is(err, ErrEmit) {
		t.Fatalf("Marshal() error = %v, want ErrEmit", err)
	}

	var ee *EmitError
	if !errors.As(err, &ee) {
		t.Fatalf("error type = %T, want *EmitError", err)
	}
	if ee.ContentType != "application/x-fail" {
		t.Errorf("ContentType = %q", ee.ContentType)
	}
}
