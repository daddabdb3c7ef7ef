// Command sportsintel streams a search-grounded sports briefing from Gemini
// or OpenAI and renders it as it arrives.
//
//	sportsintel brief "nba trade deadline"
//	sportsintel brief --provider openai --json
//	sportsintel recover saved-buffer.txt
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/leofalp/sportsintel/core/briefing"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var transportErr *briefing.TransportError
		if errors.As(err, &transportErr) && transportErr.Err != nil {
			fmt.Fprintf(os.Stderr, "  cause: %v\n", transportErr.Err)
		}
		os.Exit(1)
	}
}
