package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"sheet2ddl/internal/ddl"
	dbdialect "sheet2ddl/internal/dialect"
	"sheet2ddl/internal/sheet"
	"sheet2ddl/internal/typemap"
)

// Database roles.
const (
	RoleSource = "source" // SQL Server catalog read by describe
	RoleTarget = "target" // Oracle schema written by apply, fill and clean
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Role   string `mapstructure:"role"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the active database configuration for role.
func GetActiveDBConfig(role string) (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active && configs[i].Role == role {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active %s database found in config (set role: %s, active: true)", role, role)
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active %s databases found (only one can be active)", role)
	}

	return activeConfig, nil
}

// dsnFlag and driverFlag let database commands run without a config file.
var (
	dsnFlag    string
	driverFlag string
)

// resolveDBConfig prefers --dsn over the config file.
func resolveDBConfig(role string) (*DBConfig, error) {
	if dsnFlag == "" {
		return GetActiveDBConfig(role)
	}

	driver := driverFlag
	if driver == "" {
		driver = "oracle"
		if role == RoleSource {
			driver = "sqlserver"
		}
	}
	return &DBConfig{Name: "CLI Wrapper", Role: role, Driver: driver, DSN: dsnFlag, Active: true}, nil
}

// openDB connects to the active database for role.
func openDB(ctx context.Context, role string) (*sql.DB, dbdialect.Dialect, error) {
	config, err := resolveDBConfig(role)
	if err != nil {
		return nil, nil, err
	}

	d, err := dbdialect.GetDialect(config.Driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	slog.Info("connected", "name", config.Name, "role", role, "driver", config.Driver)
	return db, d, nil
}

func loadDialect() (typemap.Dialect, error) {
	return typemap.ParseDialect(viper.GetString("generate.dialect"))
}

// loadLayout starts from the default layout and applies the sheet section.
func loadLayout() (sheet.Layout, error) {
	layout := sheet.DefaultLayout()
	if err := viper.UnmarshalKey("sheet", &layout); err != nil {
		return sheet.Layout{}, fmt.Errorf("failed to parse sheet config: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return sheet.Layout{}, err
	}
	return layout, nil
}

func loadOptions() (ddl.Options, error) {
	mode, err := ddl.ParseTablespaceMode(viper.GetString("ddl.tablespace_mode"))
	if err != nil {
		return ddl.Options{}, err
	}
	return ddl.Options{
		Schema:         viper.GetString("generate.schema"),
		TablespaceMode: mode,
		Tablespace:     viper.GetString("ddl.tablespace"),
	}, nil
}

// generateSettings bundles what every command needs to run the pipeline.
type generateSettings struct {
	Dialect typemap.Dialect
	Layout  sheet.Layout
	Options ddl.Options
}

func loadGenerateSettings() (generateSettings, error) {
	d, err := loadDialect()
	if err != nil {
		return generateSettings{}, err
	}
	layout, err := loadLayout()
	if err != nil {
		return generateSettings{}, err
	}
	opts, err := loadOptions()
	if err != nil {
		return generateSettings{}, err
	}
	return generateSettings{Dialect: d, Layout: layout, Options: opts}, nil
}
