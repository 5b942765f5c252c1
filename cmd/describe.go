package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/schema"
	"sheet2ddl/internal/sheet"
)

var (
	sourceSchema string
	describeXLSX string
	describeSQL  bool
)

var describeCmd = &cobra.Command{
	Use:   "describe TABLE",
	Short: "Read a table's columns from the source database and emit a sheet and/or DDL",
	Long: `Reads the column catalog of one SQL Server table and writes it in the
spreadsheet layout the generator reads (--xlsx), prints the generated DDL, or both.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadGenerateSettings()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, d, err := openDB(ctx, RoleSource)
		if err != nil {
			return err
		}
		defer db.Close()

		cols, err := schema.Describe(ctx, db, d, sourceSchema, args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := sheet.Write(&buf, cols, settings.Layout); err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}

		if describeXLSX != "" {
			if err := os.WriteFile(describeXLSX, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", describeXLSX, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s (%d columns)\n", styleSuccess.Render("[✓]"), describeXLSX, len(cols))
		}

		if describeXLSX == "" || describeSQL {
			// Same path as an uploaded sheet.
			script, err := engine.NewPipeline(nil).Generate(engine.Request{
				Reader:   bytes.NewReader(buf.Bytes()),
				FileName: cols[0].TableName + ".xlsx",
				Dialect:  settings.Dialect,
				Layout:   settings.Layout,
				Options:  settings.Options,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), script.SQL)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&sourceSchema, "source-schema", "dbo", "Schema of the source table")
	describeCmd.Flags().StringVar(&describeXLSX, "xlsx", "", "Write the column list to this .xlsx file")
	describeCmd.Flags().BoolVar(&describeSQL, "sql", false, "Print DDL even when --xlsx is given")
	describeCmd.Flags().StringVar(&dsnFlag, "dsn", "", "Source DSN (overrides config)")
	describeCmd.Flags().StringVar(&driverFlag, "driver", "", "Driver for --dsn (default sqlserver)")
}
