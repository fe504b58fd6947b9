package descriptor

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/testutil/testlog"
)

const gameObject1 = `id = "gameobject1"

[transform]
position = [0, 0, 0]
rotation = [0, 0, 0]
scale = [1, 1, 1]
`

const gameObject2 = `id = "gameobject2"

[transform]
position = [0.0, 0.0, 0.0]
rotation = [0.0, 0.0, 0.0]
scale = [1.0, 1.0, 1.0]

[mesh]
path = "mesh2.bin"
`

func TestParseGameObjectOptionalMesh(t *testing.T) {
	testlog.Start(t)

	go1, err := ParseGameObject(gameObject1)
	if err != nil {
		t.Fatalf("parse gameobject1: %v", err)
	}
	if go1.Mesh != nil {
		t.Fatalf("expected no mesh, got %+v", go1.Mesh)
	}
	if go1.ID != "gameobject1" {
		t.Fatalf("unexpected id: %q", go1.ID)
	}
	if !reflect.DeepEqual(go1.Transform.Position, []float64{0, 0, 0}) {
		t.Fatalf("unexpected position: %v", go1.Transform.Position)
	}

	go2, err := ParseGameObject(gameObject2)
	if err != nil {
		t.Fatalf("parse gameobject2: %v", err)
	}
	path, ok := go2.MeshPath()
	if !ok || path != "mesh2.bin" {
		t.Fatalf("expected mesh2.bin, got %q ok=%v", path, ok)
	}
	if !reflect.DeepEqual(go2.Mesh, &MeshDescription{Path: "mesh2.bin"}) {
		t.Fatalf("unexpected mesh: %+v", go2.Mesh)
	}
	if !reflect.DeepEqual(go2.Transform.Scale, []float64{1, 1, 1}) {
		t.Fatalf("unexpected scale: %v", go2.Transform.Scale)
	}
}

func TestParseGameObjectMissingRequiredField(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"transform": "id = \"x\"\n",
		"id":        "[transform]\nposition = [0,0,0]\nrotation = [0,0,0]\nscale = [1,1,1]\n",
		"transform.rotation": "id = \"x\"\n[transform]\nposition = [0,0,0]\nscale = [1,1,1]\n",
		"mesh.path":          gameObject1 + "\n[mesh]\n",
	}
	for field, text := range cases {
		_, err := ParseGameObject(text)
		if !dataerr.IsKind(err, dataerr.KindDeserialization) {
			t.Fatalf("%s: expected deserialization error, got %v", field, err)
		}
		if !errors.Is(err, dataerr.ErrMissingField) {
			t.Fatalf("%s: expected ErrMissingField, got %v", field, err)
		}
		if !strings.Contains(err.Error(), `"`+field+`"`) {
			t.Fatalf("%s: error does not name the field: %v", field, err)
		}
	}
}

func TestParseGameObjectRejectsBadValues(t *testing.T) {
	testlog.Start(t)

	short := "id = \"x\"\n[transform]\nposition = [0,0]\nrotation = [0,0,0]\nscale = [1,1,1]\n"
	_, err := ParseGameObject(short)
	if !errors.Is(err, dataerr.ErrVectorLength) {
		t.Fatalf("expected vector length error, got %v", err)
	}
	if !strings.Contains(err.Error(), "transform.position has 2") {
		t.Fatalf("expected field and length in message: %v", err)
	}

	wrongType := "id = 5\n[transform]\nposition = [0,0,0]\nrotation = [0,0,0]\nscale = [1,1,1]\n"
	if _, err := ParseGameObject(wrongType); !dataerr.IsKind(err, dataerr.KindDeserialization) {
		t.Fatalf("expected deserialization error for wrong type, got %v", err)
	}

	if _, err := ParseGameObject("id = \"unterminated\n"); !dataerr.IsKind(err, dataerr.KindDeserialization) {
		t.Fatalf("expected deserialization error for malformed text, got %v", err)
	}

	emptyID := strings.Replace(gameObject1, `"gameobject1"`, `"  "`, 1)
	if _, err := ParseGameObject(emptyID); !errors.Is(err, dataerr.ErrEmptyID) {
		t.Fatalf("expected empty id error, got %v", err)
	}
}

func TestParseGameObjectIgnoresUnknownKeys(t *testing.T) {
	testlog.Start(t)
	d, err := ParseGameObject(gameObject2 + "\n[physics]\nmass = 2.0\n")
	if err != nil {
		t.Fatalf("unknown keys must be tolerated: %v", err)
	}
	if d.Mesh == nil {
		t.Fatalf("expected mesh to survive unknown table")
	}
}

func TestGameObjectRoundTrip(t *testing.T) {
	testlog.Start(t)
	descs := []GameObjectDescription{
		NewGameObjectBuilder("go4").
			WithTransform(NewTransform([]float64{1, 2, 3}, []float64{0, 0, 0}, []float64{2, 2, 2})).
			WithMesh(NewMesh("path_test_mesh")).
			Build(),
		NewGameObject("objects/go5.toml",
			NewTransform([]float64{5, 7, 11}, []float64{0.8, 5.2, 1}, []float64{2.4, 2.2, 2.9}), nil),
		NewGameObjectBuilder("neg").WithPosition(-1.5, 1e-9, 12345678.25).Build(),
	}
	for _, d := range descs {
		text, err := d.Text()
		if err != nil {
			t.Fatalf("text %s: %v", d.ID, err)
		}
		back, err := ParseGameObject(text)
		if err != nil {
			t.Fatalf("parse %s: %v\n%s", d.ID, err, text)
		}
		if !reflect.DeepEqual(back, d) {
			t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v\ntext:\n%s", d, back, text)
		}
	}
}

func TestGameObjectCanonicalText(t *testing.T) {
	testlog.Start(t)
	d := NewGameObjectBuilder("go4").
		WithPosition(1, 2, 3).
		WithScale(2, 2, 2).
		WithMesh(NewMesh("path_test_mesh")).
		Build()

	text, err := d.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	want := `id = "go4"

[transform]
position = [1.0, 2.0, 3.0]
rotation = [0.0, 0.0, 0.0]
scale = [2.0, 2.0, 2.0]

[mesh]
path = "path_test_mesh"
`
	if text != want {
		t.Fatalf("unexpected canonical text:\n%s", text)
	}
	again, _ := d.Text()
	if again != text {
		t.Fatalf("text must be deterministic")
	}

	noMesh, err := NewGameObjectBuilder("go5").Build().Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if strings.Contains(noMesh, "[mesh]") {
		t.Fatalf("mesh table must be omitted:\n%s", noMesh)
	}
}

func TestLevelRoundTripPreservesOrderAndDuplicates(t *testing.T) {
	testlog.Start(t)
	level := NewLevelBuilder("levels/level1.toml").
		Add("gameobject2.toml", "gameobject1.toml").
		Add("gameobject2.toml").
		Build()

	text, err := level.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	want := "title = \"levels/level1.toml\"\ngameobjects = [\"gameobject2.toml\", \"gameobject1.toml\", \"gameobject2.toml\"]\n"
	if text != want {
		t.Fatalf("unexpected level text:\n%q", text)
	}

	back, err := ParseLevel(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(back, level) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, level)
	}

	empty, err := NewLevelBuilder("empty").Build().Text()
	if err != nil {
		t.Fatalf("empty text: %v", err)
	}
	parsed, err := ParseLevel(empty)
	if err != nil {
		t.Fatalf("empty parse: %v\n%s", err, empty)
	}
	if len(parsed.GameObjects) != 0 {
		t.Fatalf("expected no game objects, got %v", parsed.GameObjects)
	}
}

func TestParseLevelErrors(t *testing.T) {
	testlog.Start(t)
	if _, err := ParseLevel(`gameobjects = ["a"]`); !errors.Is(err, dataerr.ErrMissingField) {
		t.Fatalf("expected missing title, got %v", err)
	}
	if _, err := ParseLevel(`title = "l"`); !errors.Is(err, dataerr.ErrMissingField) {
		t.Fatalf("expected missing gameobjects, got %v", err)
	}
	if _, err := ParseLevel(`title = "l"` + "\n" + `gameobjects = ["a", ""]`); !errors.Is(err, dataerr.ErrEmptyPath) {
		t.Fatalf("expected empty path error, got %v", err)
	}
	if _, err := ParseLevel(`title = "l"` + "\n" + `gameobjects = "a"`); !dataerr.IsKind(err, dataerr.KindDeserialization) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestBuildersDoNotAlias(t *testing.T) {
	testlog.Start(t)
	pos := []float64{1, 2, 3}
	tr := NewTransform(pos, []float64{0, 0, 0}, []float64{1, 1, 1})
	pos[0] = 99
	if tr.Position[0] != 1 {
		t.Fatalf("NewTransform must copy its inputs")
	}

	b := NewGameObjectBuilder("a").WithMesh(NewMesh("m.glb"))
	first := b.Build()
	b.WithPosition(4, 5, 6).WithMesh(NewMesh("other.glb"))
	second := b.Build()

	if first.Transform.Position[0] != 0 || first.Mesh.Path != "m.glb" {
		t.Fatalf("built description changed after builder use: %+v", first)
	}
	if second.Transform.Position[0] != 4 || second.Mesh.Path != "other.glb" {
		t.Fatalf("unexpected second build: %+v", second)
	}

	copyOf := GameObjectBuilderFrom(first).WithID("b").WithoutMesh().Build()
	if copyOf.Mesh != nil || first.Mesh == nil || first.ID != "a" {
		t.Fatalf("GameObjectBuilderFrom must not alias: %+v / %+v", first, copyOf)
	}

	lb := NewLevelBuilder("l").AddObject(first)
	l1 := lb.Build()
	lb.Add("x")
	if len(l1.GameObjects) != 1 || l1.GameObjects[0] != "a" {
		t.Fatalf("level build aliased builder state: %v", l1.GameObjects)
	}
}
