package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/engine"
)

var (
	applyReplace bool
	applyDryRun  bool
	applySeed    int
)

var applyCmd = &cobra.Command{
	Use:   "apply FILE...",
	Short: "Create the tables described by spreadsheets in the target database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scripts, err := scriptsFromFiles(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		// Dry Run
		if applyDryRun {
			slog.Info("[SIMULATION] dry-run mode, nothing will be executed")
			for _, s := range scripts {
				fmt.Fprintln(out, s.SQL)
			}
			return nil
		}

		ctx := cmd.Context()
		db, d, err := openDB(ctx, RoleTarget)
		if err != nil {
			return err
		}
		defer db.Close()

		for i, s := range scripts {
			cols, err := engine.Apply(ctx, db, d, s, engine.ApplyOptions{Replace: applyReplace})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s [%02d/%02d] created %s %s\n",
				styleSuccess.Render("[✓]"), i+1, len(scripts), s.QualifiedName(),
				styleMuted.Render(fmt.Sprintf("(%d columns)", len(cols))))
		}

		seedCount := viper.GetInt("apply.seed")
		if seedCount <= 0 {
			return nil
		}

		start := time.Now()
		results, err := seedTables(ctx, db, d, scripts, seedCount)
		if err != nil {
			return err
		}
		printSeedReport(out, results, time.Since(start))
		return nil
	},
}

// scriptsFromFiles runs the pipeline over every file and stops at the
// first failure.
func scriptsFromFiles(paths []string) ([]ddl.Script, error) {
	settings, err := loadGenerateSettings()
	if err != nil {
		return nil, err
	}

	p := engine.NewPipeline(nil)
	scripts := make([]ddl.Script, 0, len(paths))
	for _, path := range paths {
		script, err := p.GenerateFile(path, engine.Request{
			Dialect: settings.Dialect,
			Layout:  settings.Layout,
			Options: settings.Options,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

func init() {
	RootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyReplace, "replace", false, "Drop an existing table before creating it")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the scripts without connecting")
	applyCmd.Flags().IntVar(&applySeed, "seed", 0, "Insert this many fake rows after creating each table")
	applyCmd.Flags().StringVar(&dsnFlag, "dsn", "", "Target DSN (overrides config)")
	applyCmd.Flags().StringVar(&driverFlag, "driver", "", "Driver for --dsn (default oracle)")

	viper.BindPFlag("apply.seed", applyCmd.Flags().Lookup("seed"))
}
