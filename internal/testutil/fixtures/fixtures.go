package fixtures

import (
	"testing"

	"github.com/danmuck/scenectl/internal/storage"
)

// TriangleGLTF is a single-triangle glTF with its vertex buffer inlined as a
// data URI.
const TriangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAA"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
  "meshes": [{"name": "triangle", "primitives": [{"attributes": {"POSITION": 0}}]}]
}`

const GameObject1 = `id = "gameobject1"

[transform]
position = [0, 0, 0]
rotation = [0, 0, 0]
scale = [1, 1, 1]
`

const GameObject2 = `id = "gameobject2"

[transform]
position = [0, 0, 0]
rotation = [0, 0, 0]
scale = [1, 1, 1]

[mesh]
path = "mesh2.bin"
`

const Level1 = `title = "level1"
gameobjects = ["gameobject1.toml", "gameobject2.toml"]
`

// Write stores every path -> content pair in fs.
func Write(t testing.TB, fs storage.FileSystem, files map[string]string) {
	t.Helper()
	for path, content := range files {
		w, err := fs.Create(path)
		if err != nil {
			t.Fatalf("fixture create %s: %v", path, err)
		}
		if err := fs.WriteAll(w, []byte(content)); err != nil {
			t.Fatalf("fixture write %s: %v", path, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("fixture close %s: %v", path, err)
		}
	}
}

// Scenario returns an in-memory tree holding level1.toml, its two game
// objects and the mesh referenced by gameobject2.
func Scenario(t testing.TB) *storage.FS {
	t.Helper()
	fs, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("memory fs: %v", err)
	}
	Write(t, fs, map[string]string{
		"level1.toml":      Level1,
		"gameobject1.toml": GameObject1,
		"gameobject2.toml": GameObject2,
		"mesh2.bin":        TriangleGLTF,
	})
	return fs
}
