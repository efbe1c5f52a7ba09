package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	bolt "go.etcd.io/bbolt"

	"miniblog/pkg/api"
	"miniblog/pkg/config"
	"miniblog/pkg/logging"
	"miniblog/pkg/seed"
	"miniblog/pkg/store"
	"miniblog/pkg/types"
)

type options struct {
	configPath string
	port       int
	storage    string
	dbPath     string
	debug      bool
	noSeed     bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "apiserver",
		Short:        "Serve the users, posts and comments API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	flags.IntVarP(&opts.port, "port", "p", 3000, "port to listen on")
	flags.StringVar(&opts.storage, "storage", config.BackendMemory, "storage backend (memory or bolt)")
	flags.StringVar(&opts.dbPath, "db", "miniblog.db", "path to BoltDB file")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&opts.noSeed, "no-seed", false, "start with empty collections")

	return cmd
}

// loadConfig applies explicitly set flags on top of the config file, or on
// top of the defaults and environment when there is none.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg := config.FromEnv()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = opts.storage
	}
	if flags.Changed("db") {
		cfg.Storage.Path = opts.dbPath
	}
	if flags.Changed("debug") {
		cfg.Logging.Debug = opts.debug
	}
	if flags.Changed("no-seed") {
		cfg.Seed = !opts.noSeed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, logCloser := logging.New(cfg.Logging)
	defer logCloser.Close()

	st, err := openStores(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.Seed {
		added, err := seed.Load(st.users, st.posts, st.comments)
		if err != nil {
			return err
		}
		logger.Info().Int("records", added).Msg("seeded collections")
	}

	apiLogger := logging.WithComponent(logger, "api")
	srv := &api.Server{
		Comments: st.comments,
		Users:    st.users,
		Posts:    st.posts,
		APIKeys:  cfg.APIKeys,
		Logger:   &apiLogger,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Routes(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Str("storage", cfg.Storage.Backend).Msg("server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type storeSet struct {
	comments store.CommentStore
	users    store.UserStore
	posts    store.PostStore
	db       *bolt.DB
}

func (s *storeSet) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openStores(cfg config.StorageConfig, logger zerolog.Logger) (*storeSet, error) {
	if cfg.Backend == config.BackendMemory {
		return &storeSet{
			comments: store.NewMemStore[types.Comment](),
			users:    store.NewMemStore[types.User](),
			posts:    store.NewMemStore[types.Post](),
		}, nil
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create db dir %s: %w", dir, err)
		}
	}
	db, err := bolt.Open(cfg.Path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info().Str("path", cfg.Path).Msg("opened bolt database")

	s := &storeSet{db: db}
	if s.comments, err = store.NewBoltStore[types.Comment](db, "comments"); err != nil {
		db.Close()
		return nil, err
	}
	if s.users, err = store.NewBoltStore[types.User](db, "users"); err != nil {
		db.Close()
		return nil, err
	}
	if s.posts, err = store.NewBoltStore[types.Post](db, "posts"); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
