package cmd

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheet2ddl/internal/engine"
	"sheet2ddl/internal/metrics"
	"sheet2ddl/internal/webui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload form and HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadGenerateSettings()
		if err != nil {
			return err
		}

		m := metrics.New()
		srv := webui.NewServer(webui.Config{
			Addr:           viper.GetString("serve.addr"),
			MaxUploadBytes: viper.GetInt64("serve.max_upload_mb") << 20,
			Dialect:        settings.Dialect,
			Layout:         settings.Layout,
			Options:        settings.Options,
		}, engine.NewPipeline(m), m.Handler())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8501", "Listen address")

	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.SetDefault("serve.max_upload_mb", 32)
}
