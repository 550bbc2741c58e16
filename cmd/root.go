package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goriiin/go-notes/internal/api"
	"github.com/goriiin/go-notes/internal/config"
	"github.com/goriiin/go-notes/internal/journal"
	"github.com/goriiin/go-notes/internal/logging"
	"github.com/goriiin/go-notes/internal/notes"
	"github.com/goriiin/go-notes/internal/render"
	"github.com/goriiin/go-notes/internal/replay"
	"github.com/goriiin/go-notes/internal/router"
	"github.com/goriiin/go-notes/internal/server"
)

type flags struct {
	configPath string
	addr       string
	root       string
	logLevel   string
}

func rootCmd() *cobra.Command {
	return newRootCmd(&flags{})
}

func newRootCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "go-notes",
		Short: "Serve markdown notes from a local directory over HTTP",
		Long: `go-notes reads and writes markdown notes under a root directory,
renders them to HTML on GET /notes/<path>, saves the request body on
POST /notes/<path> and lists note files with GET /list?<start>:<end>.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, *f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&f.addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&f.root, "root", "", "notes root directory (default "+config.DefaultNotesRoot+")")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "trace, debug, info, warn, error or off")

	return cmd
}

// resolveConfig layers flags over the config file over defaults.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = f.addr
	}
	if cmd.Flags().Changed("root") {
		cfg.NotesRoot = f.root
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return cfg, config.Validate(cfg)
}

func run(ctx context.Context, cfg config.Config) error {
	log := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		NoColor: cfg.Log.NoColor,
	})

	store, err := notes.New(cfg.NotesRoot)
	if err != nil {
		return err
	}
	dispatcher := router.New(store, render.NewMarkdown(), log.With().Str("component", "router").Logger())

	j, err := journal.Open(ctx, cfg.Journal.Backend, cfg.Journal.Capacity, cfg.TarantoolOptions())
	if err != nil {
		return err
	}
	if j != nil {
		defer func() {
			if err := j.Close(); err != nil {
				log.Warn().Err(err).Msg("journal close failed")
			}
		}()
	}

	srv := server.New(dispatcher, log,
		server.WithJournal(j),
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}

	fmt.Printf("\r\n~ Note Server\r\nWaiting for requests at %s\r\n", ln.Addr())
	log.Info().
		Str("addr", ln.Addr().String()).
		Str("root", store.Root()).
		Str("journal", cfg.Journal.Backend).
		Msg("listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})
	if cfg.Admin.Addr != "" {
		g.Go(func() error {
			return serveAdmin(gctx, cfg.Admin.Addr, j, dispatcher, log)
		})
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("stopped")
	return nil
}

func serveAdmin(ctx context.Context, addr string, j journal.Journal, d *router.Dispatcher, log zerolog.Logger) error {
	alog := log.With().Str("component", "admin").Logger()
	h := api.NewRouter(j, replay.New(j, d), alog)

	alog.Info().Str("addr", addr).Msg("admin api listening")
	if err := api.Start(ctx, addr, h); err != nil {
		return fmt.Errorf("admin api: %w", err)
	}
	return nil
}
