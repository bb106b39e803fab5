package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kittygram/internal/adapters/auth/odin"
	blobmem "kittygram/internal/adapters/blob/memory"
	blobs3 "kittygram/internal/adapters/blob/s3"
	mem "kittygram/internal/adapters/storage/memory"
	"kittygram/internal/adapters/storage/postgres"
	"kittygram/internal/domain/cats"
	"kittygram/internal/platform/hexcolor"
	"kittygram/internal/ports/auth"
	"kittygram/internal/ports/blob"
	"kittygram/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	// Serve flags
	traceSQL     bool
	migrateFirst bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT/SIGTERM, then shut down gracefully.

Examples:
  kittygram serve                  # memory store, dev auth (X-Debug-User-ID)
  kittygram serve --migrate        # apply migrations before serving (postgres)
  kittygram serve --trace-sql      # log every SQL statement`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&traceSQL, "trace-sql", false, "Log SQL statements (default on in local env)")
	serveCmd.Flags().BoolVar(&migrateFirst, "migrate", false, "Apply database migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	colors, err := loadColors(cfg.Colors.ExtraFile)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	blobs, err := openBlobs(ctx)
	if err != nil {
		return err
	}

	verifier, err := newVerifier()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Logger:       log,
			AuthVerifier: verifier,
			Store:        store,
			Blobs:        blobs,
			Colors:       colors,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("storage", cfg.Database.Driver).
			Str("blob", cfg.Blob.Driver).
			Bool("auth", verifier != nil).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadColors(path string) (*hexcolor.Table, error) {
	colors := hexcolor.Default()
	if path == "" {
		return colors, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open colors file: %w", err)
	}
	defer f.Close()

	if err := colors.Merge(f); err != nil {
		return nil, fmt.Errorf("load colors file %s: %w", path, err)
	}
	log.Info().Str("file", path).Msg("loaded extra colors")
	return colors, nil
}

func openStore(ctx context.Context) (cats.Store, func(), error) {
	if cfg.Database.Driver != "postgres" {
		return mem.NewStore(), func() {}, nil
	}

	if migrateFirst {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, log); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	db, err := postgres.Open(ctx, postgres.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		TraceSQL:        traceSQL || cfg.Database.TraceSQL || cfg.App.IsLocal(),
	}, log)
	if err != nil {
		return nil, nil, err
	}

	return postgres.NewStore(db), func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}, nil
}

func openBlobs(ctx context.Context) (blob.Store, error) {
	if cfg.Blob.Driver != "s3" {
		return blobmem.NewStore(cfg.Blob.PublicURL), nil
	}
	return blobs3.New(ctx, blobs3.Config{
		Bucket:       cfg.Blob.S3.Bucket,
		Region:       cfg.Blob.S3.Region,
		Endpoint:     cfg.Blob.S3.Endpoint,
		UsePathStyle: cfg.Blob.S3.UsePathStyle,
		AccessKey:    cfg.Blob.S3.AccessKey,
		SecretKey:    cfg.Blob.S3.SecretKey,
		PublicURL:    cfg.Blob.PublicURL,
	})
}

// newVerifier devuelve nil (modo dev) si Odin no está configurado.
func newVerifier() (auth.AuthVerifier, error) {
	if !cfg.Auth.Enabled() {
		log.Warn().Msg("odin not configured: dev auth via X-Debug-User-ID")
		return nil, nil
	}
	client, err := odin.NewClient(odin.Config{
		BaseURL:      cfg.Auth.OdinBaseURL,
		APIKey:       cfg.Auth.OdinAPIKey,
		APIKeyHeader: cfg.Auth.OdinAPIKeyHeader,
		Timeout:      cfg.Auth.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return odin.NewVerifier(client), nil
}
