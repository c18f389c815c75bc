// Package msgpack provides an order-preserving MessagePack emitter.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/scribe"
)

// msgpackEmitter implements scribe.Emitter for MessagePack.
type msgpackEmitter struct{}

// New returns a MessagePack emitter.
func New() scribe.Emitter {
	return &msgpackEmitter{}
}

// ContentType returns the MIME type for MessagePack.
func (e *msgpackEmitter) ContentType() string {
	return "application/msgpack"
}

// Emit encodes doc as a MessagePack map, pairs in document order.
func (e *msgpackEmitter) Emit(doc scribe.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeDocument(enc, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeDocument(enc *msgpack.Encoder, doc scribe.Document) error {
	if err := enc.EncodeMapLen(len(doc.Fields)); err != nil {
		return err
	}
	for _, f := range doc.Fields {
		if err := enc.EncodeString(f.Name); err != nil {
			return err
		}
		if sub, ok := f.Value.(scribe.Document); ok {
			if err := encodeDocument(enc, sub); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(f.Value); err != nil {
			return err
		}
	}
	return nil
}
