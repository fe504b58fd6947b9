package descriptor

// GameObjectBuilder assembles a GameObjectDescription step by step. Build
// returns an independent copy, so the builder can keep being used.
type GameObjectBuilder struct {
	desc GameObjectDescription
}

// NewGameObjectBuilder starts from an identity transform and no mesh.
func NewGameObjectBuilder(id string) *GameObjectBuilder {
	return &GameObjectBuilder{desc: GameObjectDescription{ID: id, Transform: IdentityTransform()}}
}

// GameObjectBuilderFrom starts from an existing description.
func GameObjectBuilderFrom(d GameObjectDescription) *GameObjectBuilder {
	return &GameObjectBuilder{desc: clone(d)}
}

func (b *GameObjectBuilder) WithID(id string) *GameObjectBuilder {
	b.desc.ID = id
	return b
}

func (b *GameObjectBuilder) WithTransform(t TransformDescription) *GameObjectBuilder {
	b.desc.Transform = clone(t)
	return b
}

func (b *GameObjectBuilder) WithPosition(x, y, z float64) *GameObjectBuilder {
	b.desc.Transform.Position = []float64{x, y, z}
	return b
}

func (b *GameObjectBuilder) WithRotation(x, y, z float64) *GameObjectBuilder {
	b.desc.Transform.Rotation = []float64{x, y, z}
	return b
}

func (b *GameObjectBuilder) WithScale(x, y, z float64) *GameObjectBuilder {
	b.desc.Transform.Scale = []float64{x, y, z}
	return b
}

func (b *GameObjectBuilder) WithMesh(m MeshDescription) *GameObjectBuilder {
	b.desc.Mesh = &m
	return b
}

func (b *GameObjectBuilder) WithoutMesh() *GameObjectBuilder {
	b.desc.Mesh = nil
	return b
}

func (b *GameObjectBuilder) Build() GameObjectDescription {
	return clone(b.desc)
}

// LevelBuilder assembles a LevelDescription, keeping insertion order.
type LevelBuilder struct {
	desc LevelDescription
}

func NewLevelBuilder(title string) *LevelBuilder {
	return &LevelBuilder{desc: LevelDescription{Title: title, GameObjects: []string{}}}
}

// Add appends game-object paths in order. Duplicates are kept.
func (b *LevelBuilder) Add(paths ...string) *LevelBuilder {
	b.desc.GameObjects = append(b.desc.GameObjects, paths...)
	return b
}

// AddObject appends the storage path of a game-object description.
func (b *LevelBuilder) AddObject(d GameObjectDescription) *LevelBuilder {
	return b.Add(d.ID)
}

func (b *LevelBuilder) Build() LevelDescription {
	return NewLevel(b.desc.Title, b.desc.GameObjects)
}
