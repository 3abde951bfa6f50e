package serve

import (
	"github.com/spf13/cobra"

	"audio2num/cmd/a2n/cmd/cliutil"
	"audio2num/internal/app"
)

var providerName string

func init() {
	Cmd.Flags().StringVarP(&providerName, "provider", "p", "", "transcription provider (default from config)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API

- POST /api/v1/extract   {"text": "..."}
- POST /api/v1/process   multipart upload in field "file"
- GET  /api/v1/results   stored runs
- GET  /health, GET /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliutil.LoadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		srv, cleanup, err := app.InitializeServer(ctx, cfg, app.ProviderName(providerName), cliutil.Logger())
		if err != nil {
			return err
		}
		defer cleanup()

		return srv.Run(ctx)
	},
}
