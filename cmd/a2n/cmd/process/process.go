package process

import (
	"fmt"

	"github.com/spf13/cobra"

	"audio2num/cmd/a2n/cmd/cliutil"
	"audio2num/internal/app"
)

var (
	providerName   string
	sourceFormat   string
	showTranscript bool
)

func init() {
	Cmd.Flags().StringVarP(&providerName, "provider", "p", "", "transcription provider (default from config)")
	Cmd.Flags().StringVarP(&sourceFormat, "format", "f", "", "source format passed to ffmpeg -f, e.g. wav (default: detect)")
	Cmd.Flags().BoolVarP(&showTranscript, "transcript", "t", false, "also print the transcript")
}

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract the number spoken in an audio file",
	Long: `Extract the number spoken in an audio file

- Convert the file to WAV in a temporary location
- Transcribe it and print the number found, or why there is none
- The temporary file is always removed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliutil.LoadConfig()
		if err != nil {
			return err
		}

		p, err := app.InitializePipeline(cfg, app.ProviderName(providerName), cliutil.Logger())
		if err != nil {
			return err
		}

		format := sourceFormat
		if format == "" {
			format = cfg.Audio.SourceFormat
		}
		result, err := p.RunWithFormat(cmd.Context(), args[0], format)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showTranscript && result.Transcription.OK() {
			fmt.Fprintf(out, "transcript: %s\n", result.Transcription.Text)
		}
		fmt.Fprintln(out, result.Display())
		return nil
	},
}
