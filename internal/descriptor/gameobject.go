package descriptor

import (
	"fmt"
	"strings"

	"github.com/danmuck/scenectl/internal/dataerr"
)

// GameObjectDescription is the persisted form of one game object:
//
//	id = "<gameobject id>"
//
//	[transform]
//	position = [x, y, z]
//	rotation = [x, y, z]
//	scale = [x, y, z]
//
//	[mesh]
//	path = "<path to binary asset>"
//
// ID doubles as the storage path of the file. The [mesh] table is omitted
// when Mesh is nil.
type GameObjectDescription struct {
	ID        string               `toml:"id" json:"id" yaml:"id"`
	Transform TransformDescription `toml:"transform" json:"transform" yaml:"transform"`
	Mesh      *MeshDescription     `toml:"mesh,omitempty" json:"mesh,omitempty" yaml:"mesh,omitempty"`
}

var gameObjectRequired = []string{
	"id",
	"transform",
	"transform.position",
	"transform.rotation",
	"transform.scale",
}

// NewGameObject builds a description from explicit values. A nil mesh means
// the object has none.
func NewGameObject(id string, transform TransformDescription, mesh *MeshDescription) GameObjectDescription {
	return clone(GameObjectDescription{ID: id, Transform: transform, Mesh: mesh})
}

// ParseGameObject materializes exactly the fields present in text. It never
// touches storage and never follows the mesh path.
func ParseGameObject(text string) (GameObjectDescription, error) {
	var d GameObjectDescription
	meta, err := decode("game object", text, &d)
	if err != nil {
		return GameObjectDescription{}, err
	}
	required := gameObjectRequired
	if meta.IsDefined("mesh") {
		required = append(append([]string{}, gameObjectRequired...), "mesh.path")
	}
	if err := requireKeys(meta, required...); err != nil {
		return GameObjectDescription{}, dataerr.Deserialization("", "parse game object", err)
	}
	if err := d.Validate(); err != nil {
		return GameObjectDescription{}, dataerr.Deserialization("", "parse game object", err)
	}
	return d, nil
}

// Validate checks the invariants a parsed description must satisfy.
func (d GameObjectDescription) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: id", dataerr.ErrEmptyID)
	}
	if err := d.Transform.Validate(); err != nil {
		return err
	}
	if d.Mesh != nil && strings.TrimSpace(d.Mesh.Path) == "" {
		return fmt.Errorf("%w: mesh.path", dataerr.ErrEmptyPath)
	}
	return nil
}

// Text renders the canonical TOML form. It is a pure function of the fields.
func (d GameObjectDescription) Text() (string, error) {
	out := GameObjectDescription{ID: d.ID, Transform: d.Transform.canonical()}
	if d.Mesh != nil {
		m := *d.Mesh
		out.Mesh = &m
	}
	return encode("game object", out)
}

// MeshPath returns the referenced asset path and whether a mesh is present.
func (d GameObjectDescription) MeshPath() (string, bool) {
	if d.Mesh == nil {
		return "", false
	}
	return d.Mesh.Path, true
}
