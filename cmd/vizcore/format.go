package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/spektr-org/vizcore/helpers"
	"github.com/spektr-org/vizcore/numfmt"
)

// previewValues are shown for every formatter by `vizcore formats`.
var previewValues = []float64{0, 0.25, 42.567, 12345.432, 0.0000025}

type formatFlags struct {
	signed  bool
	id      string
	locale  string
	csvPath string
	column  string
	preview bool
}

func newFormatCmd(a *app) *cobra.Command {
	f := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [values...]",
		Short: "Format numbers with the smart formatter",
		Long: `Formats each value on its own line. Values come from arguments or one
numeric CSV column. "NaN", "Inf" and "-Inf" are accepted.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && f.csvPath == "" {
				return errors.New("pass values as arguments or use --csv")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, a, f, args)
		},
	}

	cmd.Flags().BoolVar(&f.signed, "signed", false, "Prefix positive values with +")
	cmd.Flags().StringVar(&f.id, "id", "", "Formatter id from the catalog (overrides --signed)")
	cmd.Flags().StringVar(&f.locale, "locale", "", "Locale for digit grouping (default from config)")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "Read values from a CSV file")
	cmd.Flags().StringVar(&f.column, "column", "", "CSV column holding the values")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "Print 'value => formatted' pairs")
	return cmd
}

func runFormat(cmd *cobra.Command, a *app, f *formatFlags, args []string) error {
	tag, err := resolveLocale(a, f.locale)
	if err != nil {
		return err
	}

	values, err := collectValues(f, args)
	if err != nil {
		return err
	}

	registry := numfmt.NewRegistry(numfmt.WithLocale(tag))
	id := f.id
	if id == "" {
		id = numfmt.SmartNumber
		if f.signed {
			id = numfmt.SmartNumberSigned
		}
	}
	if !registry.Has(id) {
		return fmt.Errorf("formatter %q: %w", id, numfmt.ErrUnknownFormatter)
	}
	formatter := registry.Get(id)

	out := cmd.OutOrStdout()
	for _, v := range values {
		if f.preview {
			fmt.Fprintln(out, formatter.Preview(v))
		} else {
			fmt.Fprintln(out, formatter.Format(v))
		}
	}
	return nil
}

func collectValues(f *formatFlags, args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", arg)
		}
		values = append(values, v)
	}

	if f.csvPath != "" {
		if f.column == "" {
			return nil, errors.New("--column is required with --csv")
		}
		data, err := os.ReadFile(f.csvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		column, err := helpers.ParseNumericColumn(data, f.column)
		if err != nil {
			return nil, err
		}
		values = append(values, column...)
	}
	return values, nil
}

func resolveLocale(a *app, override string) (language.Tag, error) {
	if override == "" {
		return a.cfg.Language()
	}
	tag, err := language.Parse(override)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", override, err)
	}
	return tag, nil
}

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the formatter catalog with sample output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, err := a.cfg.Language()
			if err != nil {
				return err
			}
			registry := numfmt.NewRegistry(numfmt.WithLocale(tag))

			out := cmd.OutOrStdout()
			for _, id := range registry.Keys() {
				f := registry.Get(id)
				marker := ""
				if id == registry.DefaultID() {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s — %s%s\n", f.ID, f.Label, marker)
				for _, v := range previewValues {
					fmt.Fprintf(out, "  %s\n", f.Preview(v))
				}
			}
			return nil
		},
	}
}
