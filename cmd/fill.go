package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/schema"
)

var (
	count  int
	clean  bool
	dryRun bool
)

var fillCmd = &cobra.Command{
	Use:   "fill FILE...",
	Short: "Fill tables created from spreadsheets with random data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scripts, err := scriptsFromFiles(args)
		if err != nil {
			return err
		}

		// Fetch count from Viper (Flag > Config > Default)
		targetCount := viper.GetInt("seed.default_count")
		if targetCount <= 0 {
			return fmt.Errorf("count must be positive, got %d", targetCount)
		}

		out := cmd.OutOrStdout()

		// Dry Run
		if dryRun {
			slog.Info("[SIMULATION] dry-run mode, no data will be written")
			fmt.Fprintln(out, styleTitle.Render("🔍 Tables:"))
			for i, s := range scripts {
				fmt.Fprintf(out, "[%02d] %s (%d columns, PK: %v)\n", i+1, s.QualifiedName(), len(s.Columns), primaryKeys(s))
			}
			return nil
		}

		ctx := cmd.Context()
		db, d, err := openDB(ctx, RoleTarget)
		if err != nil {
			return err
		}
		defer db.Close()

		// Clean if requested
		if clean {
			if err := dropTables(ctx, db, d, scripts); err != nil {
				return err
			}
		}

		// 테이블이 없으면 스크립트로 생성
		if err := ensureTables(ctx, db, d, scripts); err != nil {
			return err
		}

		slog.Info("starting fill", "count", targetCount, "tables", len(scripts))
		start := time.Now()
		results, err := seedTables(ctx, db, d, scripts, targetCount)
		if err != nil {
			return err
		}
		printSeedReport(out, results, time.Since(start))
		return nil
	},
}

func primaryKeys(s ddl.Script) []string {
	t, _ := schema.NewTable(s.Columns)
	return t.PrimaryKeys()
}

func init() {
	RootCmd.AddCommand(fillCmd)

	// CLI Flags
	fillCmd.Flags().IntVar(&count, "count", 100, "Number of records to generate per table (overrides config)")
	fillCmd.Flags().BoolVar(&clean, "clean", false, "Drop and recreate tables before filling")
	fillCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be filled without connecting")
	fillCmd.Flags().StringVar(&dsnFlag, "dsn", "", "Target DSN (overrides config)")
	fillCmd.Flags().StringVar(&driverFlag, "driver", "", "Driver for --dsn (default oracle)")

	viper.BindPFlag("seed.default_count", fillCmd.Flags().Lookup("count"))
	viper.SetDefault("seed.default_count", 100)
}
