// Package yaml provides an order-preserving YAML emitter.
package yaml

import (
	"github.com/zoobzio/scribe"
	"gopkg.in/yaml.v3"
)

// yamlEmitter implements scribe.Emitter for YAML.
type yamlEmitter struct{}

// New returns a YAML emitter.
func New() scribe.Emitter {
	return &yamlEmitter{}
}

// ContentType returns the MIME type for YAML.
func (e *yamlEmitter) ContentType() string {
	return "application/yaml"
}

// Emit encodes doc as a YAML mapping, keys in document order. Order is
// preserved by building the yaml.Node tree directly.
func (e *yamlEmitter) Emit(doc scribe.Document) ([]byte, error) {
	node, err := mappingNode(doc)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func mappingNode(doc scribe.Document) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range doc.Fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}

		var val *yaml.Node
		if sub, ok := f.Value.(scribe.Document); ok {
			var err error
			if val, err = mappingNode(sub); err != nil {
				return nil, err
			}
		} else {
			val = &yaml.Node{}
			if err := val.Encode(f.Value); err != nil {
				return nil, err
			}
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
