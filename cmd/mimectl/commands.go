package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mime-registry/internal/export"
	"mime-registry/internal/mimetypes"
	"mime-registry/internal/registry"
)

// errNotFound is returned by lookups that match nothing so the process
// exits non-zero.
var errNotFound = errors.New("not found")

func newLookupCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <extension>",
		Short: "Show the MIME type registered for a file extension",
		Example: `  mimectl lookup jpg
  mimectl lookup .TAR.GZ --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(v)
			if err != nil {
				return err
			}
			rec := reg.ByExtension(args[0])
			if rec.IsEmpty() {
				return fmt.Errorf("extension %q: %w", args[0], errNotFound)
			}
			return printRecord(cmd.OutOrStdout(), rec, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func newTypeCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "type <content-type>",
		Short:   "Show the MIME type registered for a content type",
		Example: `  mimectl type image/svg+xml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(v)
			if err != nil {
				return err
			}
			rec := reg.ByContentType(args[0])
			if rec.IsEmpty() {
				return fmt.Errorf("content type %q: %w", args[0], errNotFound)
			}
			return printRecord(cmd.OutOrStdout(), rec, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func newCategoryCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "category [extension]",
		Short: "Print the category of a file extension",
		Long: `Print the category of a file extension.

Unknown extensions print "Unknown". Without an argument the category of a
folder is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(v)
			if err != nil {
				return err
			}
			ext := ""
			if len(args) > 0 {
				ext = args[0]
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reg.Category(ext).ConfigName())
			return err
		},
	}
}

func newListCmd(v *viper.Viper) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every registered MIME type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(v)
			if err != nil {
				return err
			}

			records := reg.Records()
			if category != "" {
				c, ok := mimetypes.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				records = filterCategory(records, c)
			}

			out := cmd.OutOrStdout()
			return printTable(out, records, terminalWidth(out))
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list records in this category")
	return cmd
}

func newExtensionsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List every extension key and the type that owns it",
		Long: `List every extension key and the type that owns it.

Keys are printed in sorted order after primary and fallback resolution,
so the output shows which record wins each extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(v)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, ext := range reg.Extensions() {
				rec := reg.ByExtension(ext)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ext, rec.ContentType(), rec.Name)
			}
			return tw.Flush()
		},
	}
}

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a mime map for malformed entries",
		Long: `Check a mime map for malformed entries.

The map is always read strictly. The command exits non-zero when the file
cannot be read or when any entry was skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(v)
			cfg.Policy = registry.PolicyStrict

			reg, err := registry.Load(cfg)
			if err != nil {
				return err
			}

			report := reg.Report()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:        %s\n", report.Source)
			fmt.Fprintf(out, "Records:       %d\n", report.Records)
			fmt.Fprintf(out, "Extensions:    %d\n", report.Extensions)
			fmt.Fprintf(out, "Content types: %d\n", report.ContentTypes)
			if len(report.Fallbacks) > 0 {
				fmt.Fprintf(out, "Fallbacks:     %s\n", strings.Join(report.Fallbacks, ", "))
			}

			if len(report.Skipped) == 0 {
				fmt.Fprintln(out, "OK")
				return nil
			}

			fmt.Fprintf(out, "Skipped:       %d\n", len(report.Skipped))
			for _, s := range report.Skipped {
				fmt.Fprintf(out, "  %s\n", s)
			}
			return fmt.Errorf("%d malformed entries in %s", len(report.Skipped), report.Source)
		},
	}
}

func newExportCmd(v *viper.Viper) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the registry as xml, json, yaml or sqlite",
		Example: `  mimectl export --format json
  mimectl export --format sqlite --output types.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			reg, err := loadRegistry(v)
			if err != nil {
				return err
			}
			report := reg.Report()

			if output == "" || output == "-" {
				if !f.Streamable() {
					return fmt.Errorf("format %s needs --output", f)
				}
				return export.Write(cmd.OutOrStdout(), f, report.Source, reg.Records())
			}
			return export.ToFile(cmd.Context(), output, f, report.Source, reg.Records())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatXML), "output format (xml, json, yaml, sqlite)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func printRecord(w io.Writer, rec *mimetypes.Record, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", rec.Name)
	if rec.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", rec.Description)
	}
	fmt.Fprintf(tw, "Extensions:\t%s\n", strings.Join(rec.FileExts, " "))
	fmt.Fprintf(tw, "Content types:\t%s\n", strings.Join(rec.ContentTypes, " "))
	fmt.Fprintf(tw, "Category:\t%s\n", rec.Category.ConfigName())
	fmt.Fprintf(tw, "Primary:\t%t\n", rec.Primary)
	return tw.Flush()
}

func filterCategory(records []*mimetypes.Record, c mimetypes.Category) []*mimetypes.Record {
	out := make([]*mimetypes.Record, 0, len(records))
	for _, rec := range records {
		if rec.Category == c {
			out = append(out, rec)
		}
	}
	return out
}

// printTable writes one row per record. When width is positive the name
// column is truncated so rows fit.
func printTable(w io.Writer, records []*mimetypes.Record, width int) error {
	header := []string{"EXTENSION", "CONTENT TYPE", "CATEGORY", "NAME"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.FileExt(), rec.ContentType(), rec.Category.ConfigName(), rec.Name})
	}

	const gap = 2
	colWidths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row[:len(row)-1] {
			colWidths[i] = max(colWidths[i], len(cell))
		}
	}

	nameWidth := 0
	if width > 0 {
		used := 0
		for _, cw := range colWidths[:len(colWidths)-1] {
			used += cw + gap
		}
		nameWidth = width - used - 1
	}

	writeRow := func(row []string) error {
		var b strings.Builder
		for i, cell := range row[:len(row)-1] {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", colWidths[i]-len(cell)+gap))
		}
		b.WriteString(truncate(row[len(row)-1], nameWidth))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	if err := writeRow(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

// truncate shortens s to width runes, marking the cut with "...". A
// width below 4 leaves s unchanged.
func truncate(s string, width int) string {
	if width < 4 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
