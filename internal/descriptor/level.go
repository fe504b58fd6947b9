package descriptor

import (
	"fmt"
	"strings"

	"github.com/danmuck/scenectl/internal/dataerr"
)

// LevelDescription is the persisted form of a level:
//
//	title = "<level id>"
//	gameobjects = ["<path1>", "<path2>", ...]
//
// Title is also the level's storage path. GameObjects keeps file order, which
// may encode init or draw order upstream; duplicates are allowed.
type LevelDescription struct {
	Title       string   `toml:"title" json:"title" yaml:"title"`
	GameObjects []string `toml:"gameobjects" json:"gameobjects" yaml:"gameobjects"`
}

func NewLevel(title string, gameObjects []string) LevelDescription {
	return LevelDescription{Title: title, GameObjects: cloneStrings(gameObjects)}
}

func ParseLevel(text string) (LevelDescription, error) {
	var d LevelDescription
	meta, err := decode("level", text, &d)
	if err != nil {
		return LevelDescription{}, err
	}
	if err := requireKeys(meta, "title", "gameobjects"); err != nil {
		return LevelDescription{}, dataerr.Deserialization("", "parse level", err)
	}
	if err := d.Validate(); err != nil {
		return LevelDescription{}, dataerr.Deserialization("", "parse level", err)
	}
	return d, nil
}

func (d LevelDescription) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title", dataerr.ErrEmptyID)
	}
	for i, p := range d.GameObjects {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: gameobjects[%d]", dataerr.ErrEmptyPath, i)
		}
	}
	return nil
}

// Text renders the canonical TOML form. Only paths are written; game-object
// content is never inlined.
func (d LevelDescription) Text() (string, error) {
	return encode("level", NewLevel(d.Title, d.GameObjects))
}
