package cli

import (
	"fmt"
	"time"

	"entdash/internal/engine/stats"
	"entdash/internal/platform/database"

	"github.com/spf13/cobra"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in dashboard dataset into the store",
	Long: `Load the built-in dashboard dataset into the store. Pending migrations
are applied first. An already populated store is left alone unless --force
is given, in which case all figures are replaced.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Replace existing figures")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if _, err := database.Migrate(ctx, db); err != nil {
		return err
	}

	repo := stats.NewSQLRepository(db)
	empty, err := repo.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty && !seedForce {
		return fmt.Errorf("store already holds figures; use --force to replace them")
	}

	if err := repo.Seed(ctx, stats.DefaultDataset(time.Now())); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Seeded dashboard dataset")
	return nil
}
