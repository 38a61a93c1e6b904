package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/stage"
)

// NewStage builds the stage served by `arbor serve` and `arbor mcp`.
//
// Documents come from redis when redis.addr is configured, and from the
// config dir otherwise. With redis, actor ticks are also serialized across
// processes through a redis lock. The returned closer releases the backend.
func (a *App) NewStage(hooks domain.LifecycleHooks) (*stage.Stage, io.Closer, error) {
	l := a.Loader(loader.WithHooks(observability.LogHooks(a.Logger).Merge(hooks)))
	opts := []stage.Option{stage.WithLogger(a.Logger)}

	if rc := a.Config.Redis; rc.Addr != "" {
		var ropts []redis.Option
		if rc.Prefix != "" {
			ropts = append(ropts, redis.WithPrefix(rc.Prefix))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, ropts...)
		prefix := rc.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		opts = append(opts,
			stage.WithSource(store),
			stage.WithLocker(redis.NewLocker(store.Client(), prefix), 0),
		)
		a.Logger.Info("using redis document source", "addr", rc.Addr, "prefix", prefix)
		return stage.New(l, opts...), store.Client(), nil
	}

	store, err := file.NewStore(a.Config.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("document dir: %w", err)
	}
	a.Logger.Info("using file document source", "dir", store.Root())
	return stage.New(l, append(opts, stage.WithSource(store))...), closerFunc(func() error { return nil }), nil
}

// Preload loads each key from the stage source.
func Preload(ctx context.Context, st *stage.Stage, keys []string) error {
	for _, key := range keys {
		if _, err := st.LoadKey(ctx, key); err != nil {
			return fmt.Errorf("preload %q: %w", key, err)
		}
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
