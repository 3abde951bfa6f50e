package extract

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audio2num/internal/app/numbers"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <text...>",
	Short: "Extract the number from text without any audio",
	Long: `Extract the number from text without any audio

- Digit words (zero to nine) come first, then digit runs
- Prints nothing and exits with status 1 when the text holds no number`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, ok := numbers.Extract(strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("no number found")
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.String())
		return nil
	},
}
