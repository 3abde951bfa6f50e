package batch

import (
	"fmt"

	"github.com/spf13/cobra"

	"audio2num/cmd/a2n/cmd/cliutil"
	"audio2num/internal/app"
	"audio2num/internal/app/converter"
)

var (
	inputDir     string
	providerName string
	limit        int
	progress     bool
)

func init() {
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "", "directory holding the audio files")
	Cmd.Flags().StringVarP(&providerName, "provider", "p", "", "transcription provider (default from config)")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "process at most this many files (0 = all)")
	Cmd.Flags().BoolVar(&progress, "progress", false, "force the progress bar even without a terminal")

	Cmd.MarkFlagRequired("dir")
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract numbers from every audio file in a directory",
	Long: `Extract numbers from every audio file in a directory

- Files are taken oldest first (.mav .wav .mp3 .m4a .flac .ogg)
- Files that already have a transcript in the result store are skipped
- Every outcome, including decode failures, is stored`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliutil.LoadConfig()
		if err != nil {
			return err
		}

		conv, cleanup, err := app.InitializeConverter(cmd.Context(), cfg, app.ProviderName(providerName),
			converter.ProgressConfig{Enabled: converter.ShouldShowProgress(progress)}, cliutil.Logger())
		if err != nil {
			return err
		}
		defer cleanup()

		summary, err := conv.Do(cmd.Context(), inputDir, limit)
		fmt.Fprintf(cmd.OutOrStdout(), "processed: %d, skipped: %d, failed: %d\n",
			summary.Processed, summary.Skipped, summary.Failed)
		return err
	},
}
