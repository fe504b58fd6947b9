package asset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/testutil/fixtures"
	"github.com/danmuck/scenectl/internal/testutil/testlog"
	"github.com/qmuntal/gltf"
)

func TestDecodeTriangle(t *testing.T) {
	testlog.Start(t)
	data, err := GLTFDecoder{}.DecodeAndValidate(strings.NewReader(fixtures.TriangleGLTF))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Meshes != 1 || data.Primitives != 1 || data.Vertices != 3 {
		t.Fatalf("unexpected summary: %+v", data)
	}
	if data.Document == nil || data.Document.Meshes[0].Name != "triangle" {
		t.Fatalf("expected decoded document")
	}
}

func TestDecodeBinaryGLB(t *testing.T) {
	testlog.Start(t)
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(strings.NewReader(fixtures.TriangleGLTF)).Decode(doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	doc.Buffers[0].URI = ""
	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("encode glb: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatalf("expected GLB magic")
	}
	data, err := GLTFDecoder{}.DecodeAndValidate(&buf)
	if err != nil {
		t.Fatalf("decode glb: %v", err)
	}
	if data.Vertices != 3 {
		t.Fatalf("unexpected vertices: %d", data.Vertices)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	testlog.Start(t)
	_, err := GLTFDecoder{}.DecodeAndValidate(strings.NewReader("not a mesh"))
	if !dataerr.IsKind(err, dataerr.KindAssetDecode) {
		t.Fatalf("expected asset decode error, got %v", err)
	}
}

func TestValidateStructure(t *testing.T) {
	testlog.Start(t)
	cases := map[string]struct {
		json string
		want error
	}{
		"no meshes": {
			json: `{"asset": {"version": "2.0"}}`,
			want: ErrNoMeshes,
		},
		"dangling attribute": {
			json: `{"asset": {"version": "2.0"}, "meshes": [{"primitives": [{"attributes": {"POSITION": 4}}]}]}`,
			want: ErrIndexOutOfRange,
		},
		"dangling buffer view": {
			json: `{"asset": {"version": "2.0"},
			  "accessors": [{"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC3"}],
			  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}]}`,
			want: ErrIndexOutOfRange,
		},
	}
	for name, tc := range cases {
		_, err := GLTFDecoder{}.DecodeAndValidate(strings.NewReader(tc.json))
		if !dataerr.IsKind(err, dataerr.KindAssetDecode) {
			t.Fatalf("%s: expected asset decode error, got %v", name, err)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestValidateBufferViewBounds(t *testing.T) {
	testlog.Start(t)
	doc := &gltf.Document{
		Asset:       gltf.Asset{Version: "2.0"},
		Buffers:     []*gltf.Buffer{{ByteLength: 12}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteOffset: 8, ByteLength: 8}},
		Meshes:      []*gltf.Mesh{{Primitives: []*gltf.Primitive{{}}}},
	}
	if err := Validate(doc); !errors.Is(err, ErrBufferOverrun) {
		t.Fatalf("expected buffer overrun, got %v", err)
	}
	doc.BufferViews[0].ByteOffset = 4
	if err := Validate(doc); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
	doc.Asset.Version = "1.0"
	if err := Validate(doc); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected unsupported version, got %v", err)
	}
}
