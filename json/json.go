// Package json provides an order-preserving JSON emitter.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/scribe"
)

// jsonEmitter implements scribe.Emitter for JSON.
type jsonEmitter struct{}

// New returns a JSON emitter.
func New() scribe.Emitter {
	return &jsonEmitter{}
}

// ContentType returns the MIME type for JSON.
func (e *jsonEmitter) ContentType() string {
	return "application/json"
}

// Emit encodes doc as a JSON object, fields in document order.
// Object framing is written by hand because encoding/json maps do not
// preserve insertion order; names and leaf values still go through
// encoding/json.
func (e *jsonEmitter) Emit(doc scribe.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocument(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeDocument(buf *bytes.Buffer, doc scribe.Document) error {
	buf.WriteByte('{')
	for i, f := range doc.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')

		if sub, ok := f.Value.(scribe.Document); ok {
			if err := writeDocument(buf, sub); err != nil {
				return err
			}
			continue
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}
