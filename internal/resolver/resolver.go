package resolver

import (
	"context"
	"time"

	"github.com/danmuck/scenectl/internal/asset"
	"github.com/danmuck/scenectl/internal/descriptor"
	"github.com/danmuck/scenectl/internal/scene"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/rs/zerolog"
)

// Recorder observes pipeline operations. A nil Recorder records nothing.
type Recorder interface {
	RecordOperation(op string, err error, duration time.Duration)
}

type Config struct {
	// Workers > 1 resolves game objects concurrently.
	Workers int
	Metrics Recorder
	Logger  *zerolog.Logger
}

// Resolver binds the two collaborators for callers that resolve and save
// repeatedly. It holds no cache: every call re-reads and re-parses.
type Resolver struct {
	fs      storage.FileSystem
	dec     asset.Decoder
	workers int
	metrics Recorder
	logger  zerolog.Logger
}

func New(fs storage.FileSystem, dec asset.Decoder, cfg Config) *Resolver {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Resolver{fs: fs, dec: dec, workers: workers, metrics: cfg.Metrics, logger: logger}
}

func (r *Resolver) FileSystem() storage.FileSystem {
	return r.fs
}

func (r *Resolver) Workers() int {
	return r.workers
}

func (r *Resolver) LoadLevel(ctx context.Context, path string) (scene.Level, error) {
	start := time.Now()
	level, err := LoadLevelDescription(r.fs, path)
	var out scene.Level
	if err == nil {
		out, err = r.resolve(ctx, level)
	}
	r.record("load_level", err, start)
	if err != nil {
		r.fail("load_level", path, err)
		return scene.Level{}, err
	}
	r.succeed("load_level", path)
	return out, nil
}

func (r *Resolver) ResolveLevel(ctx context.Context, level descriptor.LevelDescription) (scene.Level, error) {
	start := time.Now()
	out, err := r.resolve(ctx, level)
	r.record("resolve_level", err, start)
	if err != nil {
		r.fail("resolve_level", level.Title, err)
		return scene.Level{}, err
	}
	return out, nil
}

func (r *Resolver) LoadLevelDescriptions(path string) (descriptor.LevelDescription, []descriptor.GameObjectDescription, error) {
	start := time.Now()
	level, err := LoadLevelDescription(r.fs, path)
	if err == nil {
		var descs []descriptor.GameObjectDescription
		descs, err = LoadLevelDescriptions(r.fs, level)
		if err == nil {
			r.record("load_descriptions", nil, start)
			return level, descs, nil
		}
	}
	r.record("load_descriptions", err, start)
	r.fail("load_descriptions", path, err)
	return descriptor.LevelDescription{}, nil, err
}

func (r *Resolver) LoadGameObject(path string) (scene.GameObject, error) {
	start := time.Now()
	d, err := LoadGameObjectDescription(r.fs, path)
	var obj scene.GameObject
	if err == nil {
		obj, err = ResolveGameObject(r.fs, r.dec, d)
	}
	r.record("load_gameobject", err, start)
	if err != nil {
		r.fail("load_gameobject", path, err)
		return scene.GameObject{}, err
	}
	return obj, nil
}

func (r *Resolver) SaveLevel(level scene.Level) error {
	start := time.Now()
	err := SaveLevel(r.fs, level)
	r.record("save_level", err, start)
	if err != nil {
		r.fail("save_level", level.Title, err)
	}
	return err
}

func (r *Resolver) SaveGameObject(d descriptor.GameObjectDescription) error {
	start := time.Now()
	err := SaveGameObjectDescription(r.fs, d)
	r.record("save_gameobject", err, start)
	if err != nil {
		r.fail("save_gameobject", d.ID, err)
	}
	return err
}

func (r *Resolver) SaveLevelDescription(d descriptor.LevelDescription) error {
	start := time.Now()
	err := SaveLevelDescription(r.fs, d)
	r.record("save_level_description", err, start)
	if err != nil {
		r.fail("save_level_description", d.Title, err)
	}
	return err
}

func (r *Resolver) resolve(ctx context.Context, level descriptor.LevelDescription) (scene.Level, error) {
	if r.workers > 1 {
		return ResolveLevelParallel(ctx, r.fs, r.dec, level, r.workers)
	}
	return ResolveLevel(r.fs, r.dec, level)
}

func (r *Resolver) record(op string, err error, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordOperation(op, err, time.Since(start))
}

func (r *Resolver) fail(op, path string, err error) {
	r.logger.Warn().Str("op", op).Str("path", path).Err(err).Msg("scene operation failed")
}

func (r *Resolver) succeed(op, path string) {
	r.logger.Debug().Str("op", op).Str("path", path).Msg("scene operation complete")
}
