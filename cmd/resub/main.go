// Command resub performs template-driven regex search-and-replace: one-shot
// substitutions, YAML rule pipelines, and Go code generation for
// precompiled replacers.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resub",
		Short:         "Safe regex replacement with runtime templates",
		Long:          "resub substitutes regex matches with user-supplied replacement templates.\nTemplates reference capture groups as $1 or ${1} and escape $ and \\ with a backslash;\nthey are parsed as data, never evaluated as code.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCmd(), newApplyCmd(), newGenCmd())
	return cmd
}
