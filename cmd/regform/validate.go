package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/view"
)

type validateReport struct {
	CanSubmit bool                                   `json:"canSubmit"`
	Strength  *engine.Strength                       `json:"strength,omitempty"`
	Fields    map[model.FieldName]engine.FieldResult `json:"fields"`
	Blocking  []model.FieldName                      `json:"blocking,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a YAML or JSON form state file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readState(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}

			res := e.Validate(state)
			report := validateReport{
				CanSubmit: res.CanSubmit,
				Fields:    res.Fields,
				Blocking:  res.Blocking(),
			}
			if state.Password != "" {
				strength := engine.PasswordStrength(state.Password)
				report.Strength = &strength
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			case "text":
				if err := writeReport(out, report); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q", format)
			}

			if !report.CanSubmit {
				return errNotSubmittable
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return cmd
}

// readState decodes YAML, which also covers JSON documents.
func readState(path string, stdin io.Reader) (model.FormState, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return model.FormState{}, err
		}
		defer f.Close()
		r = f
	}

	var state model.FormState
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&state); err != nil && err != io.EOF {
		return model.FormState{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return state, nil
}

func writeReport(out io.Writer, report validateReport) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range model.Fields() {
		res := report.Fields[name]
		msg := view.ErrorText(res)
		if msg == "" {
			msg = "ok"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name.Label(), res.Status, msg)
	}
	if report.Strength != nil {
		fmt.Fprintf(tw, "Password strength\t%s\t\n", *report.Strength)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if report.CanSubmit {
		_, err := fmt.Fprintln(out, "submit: enabled")
		return err
	}
	_, err := fmt.Fprintln(out, "submit: disabled")
	return err
}
