package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// export formats mapped to server surfaces and default filenames. The
// "excel" surface is CSV with a BOM and always lands in a .csv file;
// "pdf" downloads the printable HTML document for printing to PDF.
var exportFormats = map[string]struct {
	endpoint string
	fallback string
}{
	"csv":   {"csv", "entries.csv"},
	"excel": {"excel", "entries.csv"},
	"xlsx":  {"xlsx", "entries.xlsx"},
	"txt":   {"txt", "entries.txt"},
	"pdf":   {"print", "entries.html"},
}

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the entries in one of the export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, ok := exportFormats[format]
			if !ok {
				return fmt.Errorf("unknown format %q (csv, excel, xlsx, txt, pdf)", format)
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			data, filename, err := c.Download(cmd.Context(), spec.endpoint)
			if err != nil {
				return signInHint(err, "view entries")
			}

			target := out
			if target == "" {
				target = filename
			}
			if target == "" {
				target = spec.fallback
			}

			// a write failure is an environment problem, reported
			// distinctly from "no entries"
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("could not write export file: %w", err)
			}

			logger.Info("exported", "format", format, "file", target, "bytes", len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, excel, xlsx, txt or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default from server)")
	return cmd
}
