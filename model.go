// Copyright 2025 Jonathan Amsterdam. All rights reserved.
// Use of this source code is governed by a
// license that can be found in the LICENSE file.

package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/xeipuuv/gojsonschema"
)

// ModelVersion is the version of the model format written by [Model.Marshal].
const ModelVersion = 1

// A Model is everything a decoder needs besides the payload: the tree, its
// sentinel, and a fingerprint of the payload it was written for.
//
// In serialized form the tree is a JSON string for a leaf (its symbol) or a
// two-element array for an internal node, element 0 being the subtree for
// bit 0 and element 1 the subtree for bit 1.
type Model struct {
	Version     int
	Mode        Mode
	PayloadSize int64
	PayloadSum  uint64 // xxhash64 of the payload
	Tree        *Tree
}

// NewModel returns the model for payload, which was encoded with t.
func NewModel(t *Tree, mode Mode, payload []byte) *Model {
	return &Model{
		Version:     ModelVersion,
		Mode:        mode,
		PayloadSize: int64(len(payload)),
		PayloadSum:  xxhash.Sum64(payload),
		Tree:        t,
	}
}

type modelJSON struct {
	Version       int             `json:"version"`
	Mode          Mode            `json:"mode,omitempty"`
	Sentinel      string          `json:"sentinel"`
	PayloadSize   int64           `json:"payload_size"`
	PayloadXXHash string          `json:"payload_xxhash"`
	Tree          json.RawMessage `json:"tree"`
}

// Marshal serializes m as JSON.
func (m *Model) Marshal() ([]byte, error) {
	tree, err := m.Tree.MarshalJSON()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(modelJSON{
		Version:       m.Version,
		Mode:          m.Mode,
		Sentinel:      m.Tree.sentinel,
		PayloadSize:   m.PayloadSize,
		PayloadXXHash: fmt.Sprintf("%016x", m.PayloadSum),
		Tree:          tree,
	})
	if err != nil {
		return nil, &StageError{Stage: StageSerialize, Err: err}
	}
	return data, nil
}

// Verify reports whether payload is the one m was written for.
func (m *Model) Verify(payload []byte) error {
	if int64(len(payload)) != m.PayloadSize {
		return stageErrorf(StageDecode, ErrCorruptModel,
			"model is for a %d-byte payload, payload has %d bytes", m.PayloadSize, len(payload))
	}
	if sum := xxhash.Sum64(payload); sum != m.PayloadSum {
		return stageErrorf(StageDecode, ErrCorruptModel,
			"payload checksum %016x does not match model checksum %016x", sum, m.PayloadSum)
	}
	return nil
}

const modelSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "type": "object",
  "required": ["version", "sentinel", "payload_size", "payload_xxhash", "tree"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "mode": {"enum": ["char", "word"]},
    "sentinel": {"type": "string", "minLength": 1},
    "payload_size": {"type": "integer", "minimum": 0},
    "payload_xxhash": {"type": "string", "pattern": "^[0-9a-f]{16}$"},
    "tree": {"$ref": "#/definitions/node"}
  },
  "definitions": {
    "node": {
      "oneOf": [
        {"type": "string", "minLength": 1},
        {
          "type": "array",
          "minItems": 2,
          "maxItems": 2,
          "items": {"$ref": "#/definitions/node"}
        }
      ]
    }
  }
}`

var modelSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(modelSchemaJSON))
})

// UnmarshalModel reconstructs a [Model] from data, which must have been
// created with [Model.Marshal].
func UnmarshalModel(data []byte) (*Model, error) {
	schema, err := modelSchema()
	if err != nil {
		return nil, &StageError{Stage: StageDeserialize, Err: err}
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "%v", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "%s", strings.Join(msgs, "; "))
	}

	var mj modelJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "%v", err)
	}
	if mj.Version != ModelVersion {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "unsupported model version %d", mj.Version)
	}
	sum, err := strconv.ParseUint(mj.PayloadXXHash, 16, 64)
	if err != nil {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "payload checksum: %v", err)
	}
	t, err := unmarshalTree(mj.Tree, mj.Sentinel)
	if err != nil {
		return nil, err
	}
	return &Model{
		Version:     mj.Version,
		Mode:        mj.Mode,
		PayloadSize: mj.PayloadSize,
		PayloadSum:  sum,
		Tree:        t,
	}, nil
}

// MarshalJSON encodes the shape and leaf symbols of t. Frequencies and the
// sentinel are not included.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.marshalNode(&buf, t.root); err != nil {
		return nil, &StageError{Stage: StageSerialize, Err: err}
	}
	return buf.Bytes(), nil
}

func (t *Tree) marshalNode(buf *bytes.Buffer, i int32) error {
	n := &t.nodes[i]
	if n.isLeaf() {
		b, err := json.Marshal(n.sym)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
	buf.WriteByte('[')
	if err := t.marshalNode(buf, n.left); err != nil {
		return err
	}
	buf.WriteByte(',')
	if err := t.marshalNode(buf, n.right); err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}

// unmarshalTree rebuilds a tree from its JSON form. The result must have
// exactly one sentinel leaf and no repeated leaf symbols.
func unmarshalTree(data []byte, sentinel Symbol) (*Tree, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "tree: %v", err)
	}
	t := &Tree{sentinel: sentinel}
	seen := map[Symbol]bool{}
	root, err := t.unmarshalNode(v, seen)
	if err != nil {
		return nil, err
	}
	if !seen[sentinel] {
		return nil, stageErrorf(StageDeserialize, ErrCorruptModel, "tree has no leaf for sentinel %q", sentinel)
	}
	t.root = root
	return t, nil
}

func (t *Tree) unmarshalNode(v any, seen map[Symbol]bool) (int32, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return 0, stageErrorf(StageDeserialize, ErrCorruptModel, "empty leaf symbol")
		}
		if seen[v] {
			return 0, stageErrorf(StageDeserialize, ErrCorruptModel, "symbol %q appears in more than one leaf", v)
		}
		seen[v] = true
		return t.addLeaf(v, 0), nil
	case []any:
		if len(v) != 2 {
			return 0, stageErrorf(StageDeserialize, ErrCorruptModel, "internal node has %d children, want 2", len(v))
		}
		left, err := t.unmarshalNode(v[0], seen)
		if err != nil {
			return 0, err
		}
		right, err := t.unmarshalNode(v[1], seen)
		if err != nil {
			return 0, err
		}
		return t.addInternal(left, right), nil
	default:
		return 0, stageErrorf(StageDeserialize, ErrCorruptModel, "unexpected %T in tree", v)
	}
}
