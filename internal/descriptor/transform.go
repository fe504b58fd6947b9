package descriptor

import (
	"fmt"

	"github.com/danmuck/scenectl/internal/dataerr"
)

// VectorLen is the number of components in every transform vector.
const VectorLen = 3

// TransformDescription is the [transform] table of a game-object file.
type TransformDescription struct {
	Position []float64 `toml:"position" json:"position" yaml:"position,flow"`
	Rotation []float64 `toml:"rotation" json:"rotation" yaml:"rotation,flow"`
	Scale    []float64 `toml:"scale" json:"scale" yaml:"scale,flow"`
}

// NewTransform copies the given vectors. Lengths are not checked here; see Validate.
func NewTransform(position, rotation, scale []float64) TransformDescription {
	return TransformDescription{
		Position: cloneFloats(position),
		Rotation: cloneFloats(rotation),
		Scale:    cloneFloats(scale),
	}
}

// IdentityTransform is positioned at the origin, unrotated, with unit scale.
func IdentityTransform() TransformDescription {
	return NewTransform([]float64{0, 0, 0}, []float64{0, 0, 0}, []float64{1, 1, 1})
}

// Validate rejects any vector that does not have exactly VectorLen components.
func (t TransformDescription) Validate() error {
	fields := []struct {
		name string
		vec  []float64
	}{
		{"transform.position", t.Position},
		{"transform.rotation", t.Rotation},
		{"transform.scale", t.Scale},
	}
	for _, f := range fields {
		if len(f.vec) != VectorLen {
			return fmt.Errorf("%w: %s has %d", dataerr.ErrVectorLength, f.name, len(f.vec))
		}
	}
	return nil
}

func (t TransformDescription) canonical() TransformDescription {
	return NewTransform(t.Position, t.Rotation, t.Scale)
}
