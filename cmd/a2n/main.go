package main

import (
	"fmt"
	"os"
	"strings"

	"audio2num/cmd/a2n/cmd"
	"audio2num/internal/config"
)

func main() {
	apiKeys, loaded, err := config.InitializeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	} else if loaded != "" && len(apiKeys.Available()) > 0 {
		fmt.Fprintf(os.Stderr, "Loaded %s (API keys: %s)\n", loaded, strings.Join(apiKeys.Available(), ", "))
	}

	cmd.Execute()
}
