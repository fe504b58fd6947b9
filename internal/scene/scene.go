// Package scene holds the resolved, engine-facing objects built from
// descriptors: levels, game objects, transforms and meshes.
package scene

import (
	"github.com/danmuck/scenectl/internal/asset"
	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an object in 3D space. Rotation holds Euler angles in
// radians applied in X, Y, Z order.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Quat returns the rotation as a quaternion.
func (t Transform) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(t.Rotation[0], t.Rotation[1], t.Rotation[2], mgl64.XYZ)
}

// Matrix composes scale, then rotation, then translation.
func (t Transform) Matrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	rotate := t.Quat().Mat4()
	scale := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(rotate).Mul4(scale)
}

// Mesh is a decoded asset together with the path it was loaded from.
type Mesh struct {
	Path string
	Data asset.Data
}

type GameObject struct {
	ID        string
	Transform Transform
	Mesh      *Mesh
}

func (g GameObject) HasMesh() bool {
	return g.Mesh != nil
}

// MeshPath returns the path the mesh was loaded from, if any.
func (g GameObject) MeshPath() (string, bool) {
	if g.Mesh == nil {
		return "", false
	}
	return g.Mesh.Path, true
}

// Level is a fully resolved level. GameObjects keeps the order of the
// level file.
type Level struct {
	Title       string
	GameObjects []GameObject
}

func (l Level) Len() int {
	return len(l.GameObjects)
}

// IDs lists game-object ids in level order.
func (l Level) IDs() []string {
	out := make([]string, 0, len(l.GameObjects))
	for _, g := range l.GameObjects {
		out = append(out, g.ID)
	}
	return out
}
