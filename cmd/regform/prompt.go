package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var output string
	var rounds int
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in a registration interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			p, err := tui.New(e,
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithOutputFormat(tui.OutputFormat(output)),
				tui.WithMaxRounds(rounds),
				tui.WithLogger(a.logger.Named("tui")),
				tui.WithTheme(tui.Theme{InfoPrefix: "› ", ErrorPrefix: "✗ "}),
			)
			if err != nil {
				return err
			}

			res, err := p.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				cmd.PrintErrln("aborted")
				return nil
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(res.Output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatPrettyText), "output format (pretty, json, yaml)")
	cmd.Flags().IntVar(&rounds, "rounds", tui.DefaultMaxRounds, "prompt rounds before giving up")
	return cmd
}
