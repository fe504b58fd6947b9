package asset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/qmuntal/gltf"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported glTF version")
	ErrNoMeshes           = errors.New("asset contains no meshes")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrBufferOverrun      = errors.New("buffer view exceeds buffer")
)

// Decoder turns a binary asset stream into validated data.
type Decoder interface {
	DecodeAndValidate(r io.Reader) (Data, error)
}

// Data is the validated structural content of a decoded asset.
type Data struct {
	Document   *gltf.Document
	Meshes     int
	Primitives int
	Vertices   int
}

// GLTFDecoder decodes glTF 2.0 JSON or GLB streams. Only embedded buffers
// (GLB chunks and data URIs) are loaded.
type GLTFDecoder struct{}

var _ Decoder = GLTFDecoder{}

func (GLTFDecoder) DecodeAndValidate(r io.Reader) (Data, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return Data{}, dataerr.AssetDecode("", "decode glTF", err)
	}
	if err := Validate(doc); err != nil {
		return Data{}, dataerr.AssetDecode("", "validate glTF", err)
	}
	return summarize(doc), nil
}

// Validate checks that every cross reference in doc points at an existing
// element and that buffer views stay inside their buffers.
func Validate(doc *gltf.Document) error {
	if !strings.HasPrefix(doc.Asset.Version, "2.") && doc.Asset.Version != "2" {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.Asset.Version)
	}
	if len(doc.Meshes) == 0 {
		return ErrNoMeshes
	}
	for i, b := range doc.Buffers {
		if len(b.Data) > 0 && len(b.Data) < int(b.ByteLength) {
			return fmt.Errorf("%w: buffers[%d] holds %d of %d bytes", ErrBufferOverrun, i, len(b.Data), int(b.ByteLength))
		}
	}
	for i, v := range doc.BufferViews {
		buf := int(v.Buffer)
		if buf < 0 || buf >= len(doc.Buffers) {
			return fmt.Errorf("%w: bufferViews[%d].buffer=%d", ErrIndexOutOfRange, i, buf)
		}
		end := int(v.ByteOffset) + int(v.ByteLength)
		if end > int(doc.Buffers[buf].ByteLength) {
			return fmt.Errorf("%w: bufferViews[%d] ends at %d, buffer is %d bytes", ErrBufferOverrun, i, end, int(doc.Buffers[buf].ByteLength))
		}
	}
	for i, a := range doc.Accessors {
		if a.BufferView == nil {
			continue
		}
		if idx := int(*a.BufferView); idx < 0 || idx >= len(doc.BufferViews) {
			return fmt.Errorf("%w: accessors[%d].bufferView=%d", ErrIndexOutOfRange, i, idx)
		}
	}
	for m, mesh := range doc.Meshes {
		for p, prim := range mesh.Primitives {
			for name, idx := range prim.Attributes {
				if int(idx) < 0 || int(idx) >= len(doc.Accessors) {
					return fmt.Errorf("%w: meshes[%d].primitives[%d].attributes[%s]=%d", ErrIndexOutOfRange, m, p, name, int(idx))
				}
			}
			if prim.Indices != nil {
				if idx := int(*prim.Indices); idx < 0 || idx >= len(doc.Accessors) {
					return fmt.Errorf("%w: meshes[%d].primitives[%d].indices=%d", ErrIndexOutOfRange, m, p, idx)
				}
			}
		}
	}
	return nil
}

func summarize(doc *gltf.Document) Data {
	out := Data{Document: doc, Meshes: len(doc.Meshes)}
	for _, mesh := range doc.Meshes {
		out.Primitives += len(mesh.Primitives)
		for _, prim := range mesh.Primitives {
			if idx, ok := prim.Attributes[gltf.POSITION]; ok {
				out.Vertices += int(doc.Accessors[int(idx)].Count)
			}
		}
	}
	return out
}
