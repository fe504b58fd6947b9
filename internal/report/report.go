// Package report renders resolved scenes as plain, tagged structs for JSON
// and YAML output.
package report

import (
	"github.com/danmuck/scenectl/internal/descriptor"
	"github.com/danmuck/scenectl/internal/scene"
	"github.com/go-gl/mathgl/mgl64"
)

type Mesh struct {
	Path       string `json:"path" yaml:"path"`
	Meshes     int    `json:"meshes" yaml:"meshes"`
	Primitives int    `json:"primitives" yaml:"primitives"`
	Vertices   int    `json:"vertices" yaml:"vertices"`
}

type Transform struct {
	Position [3]float64 `json:"position" yaml:"position,flow"`
	Rotation [3]float64 `json:"rotation" yaml:"rotation,flow"`
	Scale    [3]float64 `json:"scale" yaml:"scale,flow"`
}

type GameObject struct {
	ID        string    `json:"id" yaml:"id"`
	Transform Transform `json:"transform" yaml:"transform"`
	Mesh      *Mesh     `json:"mesh,omitempty" yaml:"mesh,omitempty"`
}

type Level struct {
	Title       string       `json:"title" yaml:"title"`
	GameObjects []GameObject `json:"gameobjects" yaml:"gameobjects"`
	Meshes      int          `json:"meshes" yaml:"meshes"`
	Vertices    int          `json:"vertices" yaml:"vertices"`
}

// Descriptions is the unresolved view of a level: its file and the parsed
// game-object descriptions, with meshes named but not decoded.
type Descriptions struct {
	Title       string                             `json:"title" yaml:"title"`
	GameObjects []descriptor.GameObjectDescription `json:"gameobjects" yaml:"gameobjects"`
}

func FromTransform(t scene.Transform) Transform {
	return Transform{
		Position: vec(t.Position),
		Rotation: vec(t.Rotation),
		Scale:    vec(t.Scale),
	}
}

func FromGameObject(g scene.GameObject) GameObject {
	out := GameObject{ID: g.ID, Transform: FromTransform(g.Transform)}
	if g.Mesh != nil {
		out.Mesh = &Mesh{
			Path:       g.Mesh.Path,
			Meshes:     g.Mesh.Data.Meshes,
			Primitives: g.Mesh.Data.Primitives,
			Vertices:   g.Mesh.Data.Vertices,
		}
	}
	return out
}

func FromLevel(l scene.Level) Level {
	out := Level{Title: l.Title, GameObjects: make([]GameObject, 0, len(l.GameObjects))}
	for _, g := range l.GameObjects {
		obj := FromGameObject(g)
		if obj.Mesh != nil {
			out.Meshes += obj.Mesh.Meshes
			out.Vertices += obj.Mesh.Vertices
		}
		out.GameObjects = append(out.GameObjects, obj)
	}
	return out
}

func FromDescriptions(level descriptor.LevelDescription, objects []descriptor.GameObjectDescription) Descriptions {
	return Descriptions{Title: level.Title, GameObjects: objects}
}

func vec(v mgl64.Vec3) [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}
