package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"audio2num/cmd/a2n/cmd/batch"
	"audio2num/cmd/a2n/cmd/cliutil"
	"audio2num/cmd/a2n/cmd/export"
	"audio2num/cmd/a2n/cmd/extract"
	"audio2num/cmd/a2n/cmd/process"
	"audio2num/cmd/a2n/cmd/serve"
	"audio2num/cmd/a2n/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2n",
	Short: "Turn spoken numbers in audio recordings into integers",
	Long: `Turn spoken numbers in audio recordings into integers.
- Convert the recording to 16 kHz mono WAV with ffmpeg
- Transcribe it with a speech recognition service (OpenAI Whisper, Gemini or a whisper.cpp server)
- Join the digit words and digits found in the transcript into one number`,
	SilenceUsage:     true,
	TraverseChildren: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cliutil.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
//
// SIGINT and SIGTERM cancel the command context instead of killing the
// process, so running conversions are stopped and their temporary files removed.
func Execute() {
	ctx, stop := signalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(extract.Cmd)
	rootCmd.AddCommand(batch.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&cliutil.Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&cliutil.ConfigPath, "config", "", "config file (default is $A2N_CONFIG or config/a2n.yaml)")
}
