package main

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	var (
		format string
		query  string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "catalog [COUNTRY [STATE]]",
		Short: "List countries, the states of a country, or the cities of a state",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			c := e.Catalog()

			var seq iter.Seq[string]
			switch len(args) {
			case 0:
				seq = c.Countries()
			case 1:
				if !c.HasCountry(args[0]) {
					return fmt.Errorf("unknown country %q", args[0])
				}
				seq = c.States(args[0])
			default:
				if !c.HasState(args[0], args[1]) {
					return fmt.Errorf("unknown state %q in %q", args[1], args[0])
				}
				seq = c.Cities(args[0], args[1])
			}

			options := catalog.Filter(seq, query, limit, catalog.DefaultOptions())
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(options)
			case "yaml":
				return yaml.NewEncoder(out).Encode(options)
			case "text":
				for _, opt := range options {
					if _, err := fmt.Fprintln(out, opt.Label); err != nil {
						return err
					}
				}
				return nil
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().StringVarP(&query, "search", "q", "", "only names containing this text")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries (0 uses the default)")
	return cmd
}
