// Package testing provides test utilities for scribe.
package testing

import (
	"github.com/zoobzio/scribe"
)

// CaptureEmitter records every emitted document so tests can assert on
// field order without decoding bytes. It returns "{}" as placeholder
// output.
type CaptureEmitter struct {
	Docs []scribe.Document
}

// ContentType returns a synthetic MIME type.
func (e *CaptureEmitter) ContentType() string {
	return "application/x-capture"
}

// Emit records doc and returns placeholder bytes.
func (e *CaptureEmitter) Emit(doc scribe.Document) ([]byte, error) {
	e.Docs = append(e.Docs, doc)
	return []byte("{}"), nil
}

// Last returns the most recently captured document.
func (e *CaptureEmitter) Last() (scribe.Document, bool) {
	if len(e.Docs) == 0 {
		return scribe.Document{}, false
	}
	return e.Docs[len(e.Docs)-1], true
}

// Names returns the field names of doc in emission order.
func Names(doc scribe.Document) []string {
	names := make([]string, len(doc.Fields))
	for i, f := range doc.Fields {
		names[i] = f.Name
	}
	return names
}

// SimpleUser is a test type with no scribe tags.
type SimpleUser struct {
	ID   string `scribe:"id"`
	Name string `scribe:"name"`
}

// ViewUser is a test type demonstrating view membership.
type ViewUser struct {
	ID    string `scribe:"id"`
	Email string `scribe:"email" scribe.views:"internal,admin"`
	SSN   string `scribe:"ssn" scribe.views:"admin"`
}

// WildcardUser is a test type with a catch-all map.
type WildcardUser struct {
	ID    string         `scribe:"id"`
	Extra map[string]any `scribe.any:"true"`
}

// Node is a self-referential test type with an object identity binding.
type Node struct {
	ID   string `scribe:"id" scribe.objectid:"true"`
	Next *Node  `scribe:"next,omitempty"`
}

// Shape is a test type with a type discriminator.
type Shape struct {
	Kind  string `scribe:"kind" scribe.typeid:"true"`
	Sides int    `scribe:"sides"`
}
