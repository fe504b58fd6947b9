package resolver

import (
	"fmt"

	"github.com/danmuck/scenectl/internal/asset"
	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/descriptor"
	"github.com/danmuck/scenectl/internal/scene"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// readText opens path and reads it whole. The handle is closed before return.
func readText(fs storage.FileSystem, path string) (string, error) {
	r, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer r.Close()
	text, err := fs.ReadToString(r)
	if err != nil {
		return "", dataerr.WithContext(err, path, "read failed")
	}
	return text, nil
}

// LoadGameObjectDescription reads and parses one game-object file.
func LoadGameObjectDescription(fs storage.FileSystem, path string) (descriptor.GameObjectDescription, error) {
	log.Debug().Str("path", path).Msg("loading game object description")
	text, err := readText(fs, path)
	if err != nil {
		return descriptor.GameObjectDescription{}, dataerr.WithContext(err, path, gameObjectContext(path))
	}
	d, err := descriptor.ParseGameObject(text)
	if err != nil {
		return descriptor.GameObjectDescription{}, dataerr.WithContext(err, path, gameObjectContext(path))
	}
	return d, nil
}

// LoadLevelDescription reads and parses one level file.
func LoadLevelDescription(fs storage.FileSystem, path string) (descriptor.LevelDescription, error) {
	log.Debug().Str("path", path).Msg("loading level description")
	text, err := readText(fs, path)
	if err != nil {
		return descriptor.LevelDescription{}, dataerr.WithContext(err, path, levelContext(path))
	}
	d, err := descriptor.ParseLevel(text)
	if err != nil {
		return descriptor.LevelDescription{}, dataerr.WithContext(err, path, levelContext(path))
	}
	return d, nil
}

// LoadLevelDescriptions is the lazy resolution shape: it loads every
// game-object description of level in order and stops there, leaving the
// caller to resolve them. The first failure aborts and nothing is returned.
func LoadLevelDescriptions(fs storage.FileSystem, level descriptor.LevelDescription) ([]descriptor.GameObjectDescription, error) {
	out := make([]descriptor.GameObjectDescription, 0, len(level.GameObjects))
	for _, path := range level.GameObjects {
		d, err := LoadGameObjectDescription(fs, path)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ResolveTransform converts a transform description component-wise. Vectors
// of the wrong length are reported, never indexed.
func ResolveTransform(t descriptor.TransformDescription) (scene.Transform, error) {
	if err := t.Validate(); err != nil {
		return scene.Transform{}, dataerr.Deserialization("", "resolve transform", err)
	}
	return scene.Transform{
		Position: mgl64.Vec3{t.Position[0], t.Position[1], t.Position[2]},
		Rotation: mgl64.Vec3{t.Rotation[0], t.Rotation[1], t.Rotation[2]},
		Scale:    mgl64.Vec3{t.Scale[0], t.Scale[1], t.Scale[2]},
	}, nil
}

// ResolveMesh opens the referenced asset and decodes it.
func ResolveMesh(fs storage.FileSystem, dec asset.Decoder, m descriptor.MeshDescription) (scene.Mesh, error) {
	r, err := fs.Open(m.Path)
	if err != nil {
		return scene.Mesh{}, dataerr.WithContext(err, m.Path, "open mesh")
	}
	defer r.Close()
	data, err := dec.DecodeAndValidate(r)
	if err != nil {
		return scene.Mesh{}, dataerr.WithContext(asAssetError(err), m.Path, "decode mesh")
	}
	log.Debug().Str("path", m.Path).Int("meshes", data.Meshes).Int("vertices", data.Vertices).Msg("mesh decoded")
	return scene.Mesh{Path: m.Path, Data: data}, nil
}

// ResolveGameObject builds the domain object for one description.
func ResolveGameObject(fs storage.FileSystem, dec asset.Decoder, d descriptor.GameObjectDescription) (scene.GameObject, error) {
	transform, err := ResolveTransform(d.Transform)
	if err != nil {
		return scene.GameObject{}, dataerr.WithContext(err, d.ID, fmt.Sprintf("while resolving game object %s", d.ID))
	}
	obj := scene.GameObject{ID: d.ID, Transform: transform}
	if d.Mesh != nil {
		mesh, err := ResolveMesh(fs, dec, *d.Mesh)
		if err != nil {
			return scene.GameObject{}, dataerr.WithContext(err, d.ID, fmt.Sprintf("while resolving game object %s", d.ID))
		}
		obj.Mesh = &mesh
	}
	return obj, nil
}

// ResolveLevel is the eager resolution shape. It loads every game-object
// description in path order, then builds every domain object. Resolution is
// all-or-nothing: the first failure is returned and no level is produced.
func ResolveLevel(fs storage.FileSystem, dec asset.Decoder, level descriptor.LevelDescription) (scene.Level, error) {
	descs, err := LoadLevelDescriptions(fs, level)
	if err != nil {
		return scene.Level{}, err
	}
	objects := make([]scene.GameObject, 0, len(descs))
	for i, d := range descs {
		obj, err := ResolveGameObject(fs, dec, d)
		if err != nil {
			return scene.Level{}, dataerr.WithContext(err, level.GameObjects[i], gameObjectContext(level.GameObjects[i]))
		}
		objects = append(objects, obj)
	}
	log.Info().Str("level", level.Title).Int("gameobjects", len(objects)).Msg("level resolved")
	return scene.Level{Title: level.Title, GameObjects: objects}, nil
}

// LoadLevel reads the level file at path and resolves it eagerly.
func LoadLevel(fs storage.FileSystem, dec asset.Decoder, path string) (scene.Level, error) {
	level, err := LoadLevelDescription(fs, path)
	if err != nil {
		return scene.Level{}, err
	}
	return ResolveLevel(fs, dec, level)
}

// asAssetError keeps decoder failures inside the asset-decode kind even when
// a third-party decoder returns a plain error.
func asAssetError(err error) error {
	if dataerr.KindOf(err) != 0 {
		return err
	}
	return dataerr.AssetDecode("", "decoder failed", err)
}

func gameObjectContext(path string) string {
	return "while loading game object at path " + path
}

func levelContext(path string) string {
	return "while loading level at path " + path
}
