package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheet2ddl/internal/ddl"
	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/metrics"
)

var (
	outDir   string
	toStdout bool
)

type generateResult struct {
	File   string
	Output string
	Script ddl.Script
	Err    error
}

var generateCmd = &cobra.Command{
	Use:   "generate FILE...",
	Short: "Convert spreadsheets into <table>.sql scripts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadGenerateSettings()
		if err != nil {
			return err
		}

		dir := viper.GetString("generate.out_dir")
		if !toStdout {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
		}

		m := metrics.New()
		p := engine.NewPipeline(m)
		out := cmd.OutOrStdout()
		start := time.Now()

		// 여러 파일일 때만 진행바 표시
		var bar *uiprogress.Bar
		if len(args) > 1 && !toStdout {
			uiprogress.Start()
			bar = uiprogress.AddBar(len(args)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Generating: "
			})
		}

		results := make([]generateResult, 0, len(args))
		for _, path := range args {
			res := generateResult{File: path}
			res.Script, res.Err = p.GenerateFile(path, engine.Request{
				Dialect: settings.Dialect,
				Layout:  settings.Layout,
				Options: settings.Options,
			})

			if res.Err == nil {
				if toStdout {
					fmt.Fprintln(out, res.Script.SQL)
				} else {
					res.Output = filepath.Join(dir, res.Script.FileName())
					if err := os.WriteFile(res.Output, []byte(res.Script.SQL), 0o644); err != nil {
						res.Err = fmt.Errorf("failed to write %s: %w", res.Output, err)
					}
				}
			}
			results = append(results, res)
			if bar != nil {
				bar.Incr()
			}
		}

		if bar != nil {
			uiprogress.Stop()
		}

		if gw := viper.GetString("metrics.push_gateway"); gw != "" {
			if err := m.Push(gw, ""); err != nil {
				slog.Warn("metrics push failed", "gateway", gw, "error", err)
			}
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}

		if toStdout {
			for _, r := range results {
				if r.Err != nil {
					slog.Error("generation failed", "file", r.File, "error", r.Err)
				}
			}
		} else {
			printGenerateReport(out, results)
		}
		slog.Info("generate done", "files", len(args), "failed", failed, "elapsed", time.Since(start))

		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func printGenerateReport(w io.Writer, results []generateResult) {
	fmt.Fprintln(w, styleTitle.Render("📊 Summary Report:"))
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s [%02d/%02d] %s\n", styleError.Render("[!]"), i+1, len(results), r.File)
			fmt.Fprintf(w, "    └ Error: %s\n", styleError.Render(r.Err.Error()))
			continue
		}

		fmt.Fprintf(w, "%s [%02d/%02d] %-24s → %s %s\n",
			styleSuccess.Render("[✓]"), i+1, len(results), r.File, r.Output,
			styleMuted.Render(fmt.Sprintf("(%d columns)", len(r.Script.Columns))))
		if len(r.Script.Unmapped) > 0 {
			fmt.Fprintf(w, "    └ %s\n", styleWarn.Render("Unmapped (copied as-is): "+strings.Join(r.Script.Unmapped, ", ")))
		}
	}
	fmt.Fprintln(w, "--------------------------------------------------")
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory for generated <table>.sql files")
	generateCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print scripts instead of writing files")

	viper.BindPFlag("generate.out_dir", generateCmd.Flags().Lookup("out-dir"))
	viper.SetDefault("metrics.push_gateway", "")
}
