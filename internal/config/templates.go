package config

import (
	"fmt"
	"strings"

	"github.com/danmuck/scenectl/internal/storage"
)

func Kinds() []string {
	return []string{"config", "level", "gameobject"}
}

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "config":
		return configTemplate, nil
	case "level":
		return levelTemplate, nil
	case "gameobject", "game-object":
		return gameObjectTemplate, nil
	default:
		return "", fmt.Errorf("unknown template kind: %s", kind)
	}
}

// WriteTemplate writes the starter file for kind at path inside fs.
func WriteTemplate(fs storage.FileSystem, path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite && fs.Exists(path) {
		return fmt.Errorf("file already exists: %s", path)
	}
	w, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := fs.WriteAll(w, []byte(template)); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

const configTemplate = `root = "scenes"
addr = ":9300"
workers = 4
cors_origins = ["http://localhost:3000"]
`

const levelTemplate = `title = "level1.toml"
gameobjects = ["gameobject1.toml"]
`

const gameObjectTemplate = `id = "gameobject1.toml"

[transform]
position = [0.0, 0.0, 0.0]
rotation = [0.0, 0.0, 0.0]
scale = [1.0, 1.0, 1.0]
`
