package main

import (
	"github.com/danmuck/scenectl/internal/asset"
	"github.com/danmuck/scenectl/internal/config"
	"github.com/danmuck/scenectl/internal/logging"
	"github.com/danmuck/scenectl/internal/observability"
	"github.com/danmuck/scenectl/internal/resolver"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	root       string
	workers    int
}

// app is built once per invocation from config and flags.
type app struct {
	cfg      config.Config
	fs       *storage.FS
	resolver *resolver.Resolver
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "scenectl",
		Short:         "Load, validate, inspect and save scene descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultFile, "config file (optional)")
	flags.StringVarP(&opts.root, "root", "r", "", "scene root directory (overrides config)")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "concurrent game-object resolution (overrides config)")

	cmd.AddCommand(
		newResolveCmd(opts),
		newInspectCmd(opts),
		newValidateCmd(opts),
		newNewCmd(opts),
		newSaveCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*app, error) {
	cfg, err := config.LoadOptional(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.root != "" {
		cfg.Root = o.root
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	fs, err := storage.NewOS(cfg.Root)
	if err != nil {
		return nil, err
	}
	logger := logging.New("resolver")
	res := resolver.New(fs, asset.GLTFDecoder{}, resolver.Config{
		Workers: cfg.Workers,
		Metrics: observability.SceneRecorder{},
		Logger:  &logger,
	})
	return &app{cfg: cfg, fs: fs, resolver: res}, nil
}
