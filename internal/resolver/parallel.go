package resolver

import (
	"context"
	"sync/atomic"

	"github.com/danmuck/scenectl/internal/asset"
	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/descriptor"
	"github.com/danmuck/scenectl/internal/scene"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ResolveLevelParallel resolves level with up to workers concurrent tasks.
// It keeps the guarantees of ResolveLevel: results are assembled in path
// order, the reported error is the first one in path order (not the first to
// complete), and no partial level is returned. The filesystem and decoder
// must be safe for concurrent use.
func ResolveLevelParallel(ctx context.Context, fs storage.FileSystem, dec asset.Decoder, level descriptor.LevelDescription, workers int) (scene.Level, error) {
	descs, err := orderedMap(ctx, level.GameObjects, workers, func(_ int, path string) (descriptor.GameObjectDescription, error) {
		return LoadGameObjectDescription(fs, path)
	})
	if err != nil {
		return scene.Level{}, err
	}
	objects, err := orderedMap(ctx, descs, workers, func(i int, d descriptor.GameObjectDescription) (scene.GameObject, error) {
		obj, err := ResolveGameObject(fs, dec, d)
		if err != nil {
			return scene.GameObject{}, dataerr.WithContext(err, level.GameObjects[i], gameObjectContext(level.GameObjects[i]))
		}
		return obj, nil
	})
	if err != nil {
		return scene.Level{}, err
	}
	log.Info().Str("level", level.Title).Int("gameobjects", len(objects)).Int("workers", workers).Msg("level resolved")
	return scene.Level{Title: level.Title, GameObjects: objects}, nil
}

// orderedMap applies fn to every item concurrently and returns the results in
// input order. Once item i has failed, items after i are skipped; items
// before i always run, so the lowest failing index is what gets reported.
func orderedMap[T, R any](ctx context.Context, items []T, workers int, fn func(int, T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]R, len(items))
	errs := make([]error, len(items))
	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(items)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		if int64(i) > firstFailed.Load() {
			break
		}
		i, item := i, item
		g.Go(func() error {
			if int64(i) > firstFailed.Load() {
				return nil
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := fn(i, item)
			if err != nil {
				errs[i] = err
				lowerTo(&firstFailed, int64(i))
				return nil
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dataerr.WithContext(err, "", "resolution cancelled")
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func lowerTo(v *atomic.Int64, n int64) {
	for {
		cur := v.Load()
		if n >= cur || v.CompareAndSwap(cur, n) {
			return
		}
	}
}
