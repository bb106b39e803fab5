package commands

import (
	"errors"

	"kittygram/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

var migrateDSN string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply the embedded SQL migrations (tern) to the Postgres database.

Examples:
  kittygram migrate                                   # uses KITTYGRAM_DATABASE__DSN
  kittygram migrate --dsn postgres://u:p@host/kittygram`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := migrateDSN
		if dsn == "" {
			dsn = cfg.Database.DSN
		}
		if dsn == "" {
			return errors.New("migrate: no database dsn (set KITTYGRAM_DATABASE__DSN or --dsn)")
		}
		return postgres.Migrate(cmd.Context(), dsn, log)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDSN, "dsn", "", "Postgres connection URL")
	rootCmd.AddCommand(migrateCmd)
}
