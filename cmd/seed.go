package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uiprogress"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/dialect"
	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/schema"
)

// seedTables fills each table with count rows behind one progress bar.
func seedTables(ctx context.Context, db *sql.DB, d dialect.Dialect, scripts []ddl.Script, count int) ([]schema.SeedResult, error) {
	// UI 진행바와 겹치지 않게 내부적으로만 처리
	uiprogress.Start()
	bar := uiprogress.AddBar(count * len(scripts)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Seeding: "
	})
	defer uiprogress.Stop()

	results := make([]schema.SeedResult, 0, len(scripts))
	for _, script := range scripts {
		res, err := engine.Seed(ctx, db, d, script, count, func() {
			bar.Incr()
		})
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func printSeedReport(w io.Writer, results []schema.SeedResult, elapsed time.Duration) {
	fmt.Fprintln(w, styleTitle.Render("\n📊 Seed Report:"))
	total := 0
	for i, r := range results {
		icon := styleSuccess.Render("[✓]")
		if r.Status != "OK" {
			icon = styleError.Render("[!]")
		}
		fmt.Fprintf(w, "%s [%02d/%02d] %-28s : %d rows (Target: %d) - %s\n",
			icon, i+1, len(results), r.TableName, r.Actual, r.Target, r.Status)
		if r.ErrorMsg != "" {
			fmt.Fprintf(w, "    └ Error: %s\n", r.ErrorMsg)
		}
		total += r.Actual
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total Rows: %d %s\n", total, styleMuted.Render("("+elapsed.Round(time.Millisecond).String()+")"))
}
