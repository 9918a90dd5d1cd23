package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KromDaniel/resub/internal/gen"
)

func newGenCmd() *cobra.Command {
	var config gen.Config

	cmd := &cobra.Command{
		Use:   "gen --pattern PATTERN --name NAME --package PKG --out FILE --template TMPL [--template TMPL...]",
		Short: "Generate Go source with precompiled replacer functions",
		Example: `  resub gen --pattern '(\w+)@(\w+)' --name Email --package mailscrub \
      --out email_gen.go --template '$1@REDACTED' --template '[EMAIL REMOVED]'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gen.New(config).Generate(); err != nil {
				return err
			}
			logrus.Infof("generated %s", config.OutputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&config.Pattern, "pattern", "", "regular expression the replacers match (required)")
	cmd.Flags().StringVar(&config.Name, "name", "", "prefix for generated identifiers (required)")
	cmd.Flags().StringVar(&config.Package, "package", "", "package name for the generated file (required)")
	cmd.Flags().StringVar(&config.OutputFile, "out", "", "output file path (required)")
	cmd.Flags().StringArrayVar(&config.Templates, "template", nil, "replacement template, repeatable (required)")
	cmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "log generation decisions to stderr")

	for _, f := range []string{"pattern", "name", "package", "out", "template"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
