package commands

import (
	"context"
	"fmt"
	"os"

	"kittygram/internal/config"
	"kittygram/internal/platform/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Cargados en PersistentPreRunE, compartidos por los subcomandos.
	cfg *config.Config
	log zerolog.Logger

	// Global flags
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "kittygram",
	Short: "Kittygram - cat catalog API",
	Long: `Kittygram serves a catalog of cats, their achievements and images.

Configuration comes from KITTYGRAM_* environment variables (and an optional
.env file); "__" separates nesting levels, e.g. KITTYGRAM_DATABASE__DSN.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded

		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    cfg.App.Name,
			Env:    cfg.App.Env,
		})
		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	},
}

// Execute corre el comando raíz.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override KITTYGRAM_LOG__LEVEL (trace|debug|info|warn|error)")
}
