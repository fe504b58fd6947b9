package resolver

import (
	"fmt"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/descriptor"
	"github.com/danmuck/scenectl/internal/refpath"
	"github.com/danmuck/scenectl/internal/scene"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/rs/zerolog/log"
)

// writeText replaces the file at path with text.
func writeText(fs storage.FileSystem, path, text string) error {
	w, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := fs.WriteAll(w, []byte(text)); err != nil {
		_ = w.Close()
		return dataerr.WithContext(err, path, "write failed")
	}
	if err := w.Close(); err != nil {
		return dataerr.FileSystem(path, "close failed", err)
	}
	return nil
}

// SaveGameObjectDescription writes exactly one file, at the path named by d.ID.
func SaveGameObjectDescription(fs storage.FileSystem, d descriptor.GameObjectDescription) error {
	if err := d.Validate(); err != nil {
		return dataerr.Serialization(d.ID, "refusing to save invalid game object", err)
	}
	text, err := d.Text()
	if err != nil {
		return dataerr.WithContext(err, d.ID, "while saving game object "+d.ID)
	}
	if err := writeText(fs, d.ID, text); err != nil {
		return dataerr.WithContext(err, d.ID, "while saving game object "+d.ID)
	}
	log.Debug().Str("path", d.ID).Msg("game object saved")
	return nil
}

// SaveLevelDescription writes only the level file at d.Title. Referenced
// game objects are not touched.
func SaveLevelDescription(fs storage.FileSystem, d descriptor.LevelDescription) error {
	if err := d.Validate(); err != nil {
		return dataerr.Serialization(d.Title, "refusing to save invalid level", err)
	}
	text, err := d.Text()
	if err != nil {
		return dataerr.WithContext(err, d.Title, "while saving level "+d.Title)
	}
	if err := writeText(fs, d.Title, text); err != nil {
		return dataerr.WithContext(err, d.Title, "while saving level "+d.Title)
	}
	log.Info().Str("path", d.Title).Int("gameobjects", len(d.GameObjects)).Msg("level saved")
	return nil
}

// SaveLevelWithObjects writes every game object, then the level file. An
// object stored at the level's own path is refused before anything is written.
func SaveLevelWithObjects(fs storage.FileSystem, level descriptor.LevelDescription, objects []descriptor.GameObjectDescription) error {
	for _, obj := range objects {
		if refpath.Equal(obj.ID, level.Title) {
			return dataerr.Serialization(level.Title, "refusing to save level",
				fmt.Errorf("game object %q would overwrite the level file", obj.ID))
		}
	}
	for _, obj := range objects {
		if err := SaveGameObjectDescription(fs, obj); err != nil {
			return err
		}
	}
	return SaveLevelDescription(fs, level)
}

// DescribeGameObject flattens a domain object back into its description.
// The mesh keeps the path it was loaded from.
func DescribeGameObject(g scene.GameObject) descriptor.GameObjectDescription {
	t := g.Transform
	b := descriptor.NewGameObjectBuilder(g.ID).
		WithPosition(t.Position[0], t.Position[1], t.Position[2]).
		WithRotation(t.Rotation[0], t.Rotation[1], t.Rotation[2]).
		WithScale(t.Scale[0], t.Scale[1], t.Scale[2])
	if g.Mesh != nil {
		b.WithMesh(descriptor.NewMesh(g.Mesh.Path))
	}
	return b.Build()
}

// DescribeLevel flattens a resolved level into the level description and
// one description per game object, in level order.
func DescribeLevel(l scene.Level) (descriptor.LevelDescription, []descriptor.GameObjectDescription) {
	lb := descriptor.NewLevelBuilder(l.Title)
	objects := make([]descriptor.GameObjectDescription, 0, len(l.GameObjects))
	for _, g := range l.GameObjects {
		d := DescribeGameObject(g)
		objects = append(objects, d)
		lb.AddObject(d)
	}
	return lb.Build(), objects
}

// SaveLevel persists a resolved level: each game object to its own id, then
// the level file listing those ids in order.
func SaveLevel(fs storage.FileSystem, l scene.Level) error {
	level, objects := DescribeLevel(l)
	return SaveLevelWithObjects(fs, level, objects)
}
