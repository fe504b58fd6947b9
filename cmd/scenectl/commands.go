package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danmuck/scenectl/internal/asset"
	"github.com/danmuck/scenectl/internal/config"
	"github.com/danmuck/scenectl/internal/refpath"
	"github.com/danmuck/scenectl/internal/report"
	"github.com/danmuck/scenectl/internal/resolver"
	"github.com/danmuck/scenectl/internal/server"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <level>",
		Short: "Resolve a level and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			level, err := a.resolver.LoadLevel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			r := report.FromLevel(level)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d game objects, %d meshes, %d vertices\n", r.Title, len(r.GameObjects), r.Meshes, r.Vertices)
			for _, g := range r.GameObjects {
				mesh := "-"
				if g.Mesh != nil {
					mesh = g.Mesh.Path
				}
				fmt.Fprintf(out, "  %-24s pos=%v mesh=%s\n", g.ID, g.Transform.Position, mesh)
			}
			return nil
		},
	}
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var format, kind string
	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print a level, its descriptions or one game object as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			var v any
			switch strings.ToLower(kind) {
			case "level":
				level, err := a.resolver.LoadLevel(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				v = report.FromLevel(level)
			case "descriptions":
				level, objects, err := a.resolver.LoadLevelDescriptions(args[0])
				if err != nil {
					return err
				}
				v = report.FromDescriptions(level, objects)
			case "gameobject":
				obj, err := a.resolver.LoadGameObject(args[0])
				if err != nil {
					return err
				}
				v = report.FromGameObject(obj)
			default:
				return fmt.Errorf("unknown kind %q (want level, descriptions or gameobject)", kind)
			}
			return render(cmd.OutOrStdout(), format, v)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&kind, "kind", "k", "level", "what path names: level, descriptions or gameobject")
	return cmd
}

func render(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <level>...",
		Short: "Fully resolve each level and report the first failure per level",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				level, err := a.resolver.LoadLevel(cmd.Context(), path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s (%d game objects)\n", path, level.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d levels failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func newNewCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:       "new <config|level|gameobject> <path>",
		Short:     "Write a starter file under the scene root",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			path := refpath.WithExt(args[1], ".toml")
			if err := config.WriteTemplate(a.fs, path, args[0], force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s template to %s\n", args[0], path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "save <level>",
		Short: "Resolve a level and write it back in canonical form",
		Long: "Resolve a level and write every game object to its id and the level to its title.\n" +
			"With --out the files are written under another root; meshes are not copied.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			level, err := a.resolver.LoadLevel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			target := a.resolver
			if dest != "" {
				fs, err := storage.NewOS(dest)
				if err != nil {
					return err
				}
				target = resolver.New(fs, asset.GLTFDecoder{}, resolver.Config{})
			}
			if err := target.SaveLevel(level); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d game objects)\n", level.Title, level.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&dest, "out", "o", "", "write under this directory instead of the scene root")
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scene root over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, server.Appear("scenectl", a.cfg.Addr, a.cfg.CorsOrigins, a.resolver))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// serve runs the inspector until ctx is done, then shuts it down.
func serve(ctx context.Context, s *server.Inspector) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Serve)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Str("inspector", s.ID).Msg("inspector shutting down")
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
