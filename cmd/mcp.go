package cmd

import (
	"github.com/spf13/cobra"

	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as a Model Context Protocol server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadGenerateSettings()
		if err != nil {
			return err
		}

		return mcpserver.Serve(engine.NewPipeline(nil), mcpserver.Defaults{
			Dialect: settings.Dialect,
			Layout:  settings.Layout,
			Options: settings.Options,
		}, Version)
	},
}

func init() {
	RootCmd.AddCommand(mcpCmd)
}
