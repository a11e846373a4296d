package cli

import (
	"database/sql"
	"fmt"

	"entdash/internal/pkg/logger"
	"entdash/internal/platform/config"
	"entdash/internal/platform/database"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Administer the enterprise dashboard",
	Long: `dashctl manages the statistics store behind the enterprise dashboard API:
apply schema migrations, load the built-in dataset, mint access tokens
and hash API keys for the server configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to config file")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(hashKeyCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Logging)
	return cfg, nil
}

// openStore connects to the SQLite store regardless of the configured
// driver, since the in-memory driver has nothing to administer.
func openStore(cfg *config.Config) (*sql.DB, error) {
	if cfg.Database.Driver == "memory" {
		return nil, fmt.Errorf("database.driver is memory; set it to sqlite to use a persistent store")
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Database.URL, err)
	}
	return db, nil
}
