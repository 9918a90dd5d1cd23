package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KromDaniel/resub/rules"
)

func newApplyCmd() *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "apply --rules FILE [INPUT]",
		Short: "Run a YAML rule pipeline over a file or stdin",
		Example: `  resub apply --rules redact.yaml access.log
  cat access.log | resub apply --rules redact.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rules.Load(rulesFile)
			if err != nil {
				return err
			}
			logrus.Debugf("loaded %d rule(s) from %s", set.Len(), rulesFile)

			input, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}

			result, err := set.Apply(input)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file with rewrite rules (required)")
	_ = cmd.MarkFlagRequired("rules")
	return cmd
}
