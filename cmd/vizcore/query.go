package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/vizcore/helpers"
	"github.com/spektr-org/vizcore/query"
)

type queryFlags struct {
	formPath string
	aliases  map[string]string
	ownState string
	jq       string
	validate bool
}

func newQueryCmd(a *app) *cobra.Command {
	f := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Build a query context from chart form data",
		Long: `Reads chart form data as JSON (a file, or stdin with --form -) and
prints the query context the chart would send to the backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.formPath, "form", "", "Form data JSON file, or - for stdin")
	cmd.Flags().StringToStringVar(&f.aliases, "alias", nil, "Route a control into a query field (key=target)")
	cmd.Flags().StringVar(&f.ownState, "own-state", "", "Chart own state as a JSON object")
	cmd.Flags().StringVar(&f.jq, "jq", "", "Filter the output with a jq expression")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "Validate the context against the JSON schema")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func runQuery(cmd *cobra.Command, f *queryFlags) error {
	raw, err := readForm(cmd.InOrStdin(), f.formPath)
	if err != nil {
		return err
	}

	var fd query.FormData
	if err := json.Unmarshal(raw, &fd); err != nil {
		return fmt.Errorf("invalid form data: %w", err)
	}

	opts := query.Options{FieldAliases: query.FieldAliases(f.aliases)}
	if f.ownState != "" {
		if err := json.Unmarshal([]byte(f.ownState), &opts.OwnState); err != nil {
			return fmt.Errorf("invalid --own-state: %w", err)
		}
	}

	qc, err := query.BuildQueryContext(fd, opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(qc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode query context: %w", err)
	}
	if f.validate {
		if err := query.ValidateContext(out); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if f.jq == "" {
		fmt.Fprintln(w, string(out))
		return nil
	}

	values, err := helpers.ApplyJQ(out, f.jq)
	if err != nil {
		return err
	}
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode jq result: %w", err)
		}
		fmt.Fprintln(w, string(b))
	}
	return nil
}

func readForm(stdin io.Reader, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("--form is required")
	}
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read form data from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form data: %w", err)
	}
	return data, nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a query context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(query.ContextSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
