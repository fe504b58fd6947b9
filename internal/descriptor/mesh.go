package descriptor

// MeshDescription is the optional [mesh] table of a game-object file. Path
// names an external binary asset; its contents are never embedded.
type MeshDescription struct {
	Path string `toml:"path" json:"path" yaml:"path"`
}

func NewMesh(path string) MeshDescription {
	return MeshDescription{Path: path}
}
