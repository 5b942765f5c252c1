package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is stamped at build time with -ldflags "-X sheet2ddl/cmd.Version=...".
var Version = "dev"

var (
	cfgFile    string
	logLevel   string
	logFormat  string
	schemaArg  string
	dialectArg string
)

var RootCmd = &cobra.Command{
	Use:   "sheet2ddl",
	Short: "Turn column-definition spreadsheets into Oracle CREATE TABLE scripts",
	Long: `
      _               _   ____     _     _ _
  ___| |__   ___  ___| |_|___ \ __| | __| | |
 / __| '_ \ / _ \/ _ \ __| __) / _' |/ _' | |
 \__ \ | | |  __/  __/ |_ / __/ (_| | (_| | |
 |___/_| |_|\___|\___|\__|_____\__,_|\__,_|_|

SHEET2DDL 📄 - Spreadsheet column lists to Oracle DDL
`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(os.Stderr, viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := RootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./sheet2ddl.yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	pf.StringVarP(&schemaArg, "schema", "s", "wods5", "target schema name")
	pf.StringVarP(&dialectArg, "dialect", "d", "Mssql", "source dialect: Mssql or DB2")

	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
	viper.BindPFlag("generate.schema", pf.Lookup("schema"))
	viper.BindPFlag("generate.dialect", pf.Lookup("dialect"))

	viper.SetDefault("ddl.tablespace_mode", "schema")
	viper.SetDefault("ddl.tablespace", "TBS_WODS5")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("sheet2ddl")
		viper.SetConfigType("yaml")
	}

	// SHEET2DDL_GENERATE_SCHEMA overrides generate.schema, and so on.
	viper.SetEnvPrefix("SHEET2DDL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Failed to read config file:", err)
		}
	}
}

// newLogger builds the process logger. Logs go to w so stdout stays free
// for scripts and the MCP transport.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}
