package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/sportsintel/core/parse"
	"github.com/leofalp/sportsintel/internal/render"
)

var recoverCmd = &cobra.Command{
	Use:   "recover [file|-]",
	Short: "Recover a structured response from a saved model buffer",
	Long: `Run the recoverer once over a saved, possibly truncated model answer and
print what it finds. Reads stdin when the argument is "-" or missing.
Prints JSON with --json, cards otherwise, and null when nothing is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buffer, err := readBuffer(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		response := parse.RecoverResponse(buffer)

		stderr := cmd.ErrOrStderr()
		switch {
		case response == nil:
			fmt.Fprintln(stderr, "recovered: nothing")
		case !response.IsComplete():
			fmt.Fprintf(stderr, "recovered: partial (%d events)\n", len(response.Events))
		default:
			violations, err := response.Validate()
			if err != nil {
				return err
			}
			if len(violations) > 0 {
				fmt.Fprintf(stderr, "recovered: complete with violations: %s\n", strings.Join(violations, "; "))
			} else {
				fmt.Fprintf(stderr, "recovered: complete (%d events)\n", len(response.Events))
			}
		}

		if jsonOutput || response == nil {
			return writeJSON(cmd.OutOrStdout(), response)
		}
		return render.New(cmd.OutOrStdout()).Briefing(response)
	},
}

func readBuffer(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
