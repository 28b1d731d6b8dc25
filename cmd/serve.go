package cmd

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rmone/pursuitql/internal/server"
)

const defaultServerAddr = ":8080"

// serveCmd runs the HTTP query service.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP query service",
	Long: `Start the HTTP server exposing POST /query and GET /healthz.

Examples:
  pursuitql serve
  pursuitql serve --addr :9090`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, db, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	if addr == "" {
		addr = defaultServerAddr
	}

	srv := server.New(eng, db)
	log.Info().Str("addr", addr).Msg("starting http server")
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080 or server.addr from config)")
	rootCmd.AddCommand(serveCmd)
}
