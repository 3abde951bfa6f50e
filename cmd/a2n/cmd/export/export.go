package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"audio2num/cmd/a2n/cmd/cliutil"
	"audio2num/internal/app"
	"audio2num/internal/app/converter/export"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "xlsx file to write")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored results to excel",
	Long: `Export stored results to excel

- Writes every stored run, newest first, to a "Results" sheet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliutil.LoadConfig()
		if err != nil {
			return err
		}

		dao, cleanup, err := app.InitializeResultDAO(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := dao.ListAll(cmd.Context())
		if err != nil {
			return err
		}

		if err := export.ToExcel(results, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d rows written to %v\n", len(results), outputFilePath)
		return nil
	},
}
