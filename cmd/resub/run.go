package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/resub"
)

func newRunCmd() *cobra.Command {
	var first bool

	cmd := &cobra.Command{
		Use:   "run PATTERN TEMPLATE [FILE]",
		Short: "Replace matches of PATTERN with the expansion of TEMPLATE",
		Example: `  resub run '(\w+)@(\w+)' '$1@REDACTED' mail.txt
  echo 'a 1 b 2' | resub run '\d+' '#'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexp.Compile(args[0])
			if err != nil {
				return fmt.Errorf("compile pattern: %w", err)
			}

			input, err := readInput(cmd, args, 2)
			if err != nil {
				return err
			}

			var result string
			if first {
				result, err = resub.ReplaceFirstString(input, re, args[1])
			} else {
				result, err = resub.ReplaceAllString(input, re, args[1])
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&first, "first", false, "replace only the first match")
	return cmd
}

// readInput returns the contents of args[idx] when present, otherwise stdin.
func readInput(cmd *cobra.Command, args []string, idx int) (string, error) {
	if len(args) > idx {
		data, err := os.ReadFile(args[idx])
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
