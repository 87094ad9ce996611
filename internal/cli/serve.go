package cli

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution HTTP API",
		Long: `Starts the HTTP API:

  GET  /healthz
  GET  /v1/countries
  GET  /v1/countries/search?q=&field=
  POST /v1/resolve   {"number", "country", "autoDetect"}
  POST /v1/select    {"number", "country"}

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultHTTPAddr, "listen address")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	a := appFrom(cmd)

	if a.logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := httpapi.New(a.catalog, a.options(true), a.engine, a.logger)
	if err != nil {
		return err
	}
	return httpapi.Serve(cmd.Context(), a.cfg.HTTPAddr, httpapi.NewRouter(h, a.logger), a.logger)
}
