package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"customer-ledger/internal/client"
	"customer-ledger/internal/ledger"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Bulk-import entries from a spreadsheet or CSV file",
		Long: `Parses the file locally, reports per-row validation errors, then
creates the valid rows one at a time. The import is best-effort: a row
that fails to save is counted and skipped, it does not roll back rows
already created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".csv" && ext != ".xlsx" {
				return fmt.Errorf("only .csv and .xlsx files are supported")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			var result *ledger.ImportResult
			if ledger.IsXLSX(data) {
				result, err = ledger.ParseXLSX(data)
			} else {
				result, err = ledger.Parse(string(data))
			}
			if err != nil {
				return fmt.Errorf("import %s: %w", filepath.Base(path), err)
			}

			for _, rowErr := range result.Errors {
				logger.Warn("row skipped", "row", rowErr.Row, "reason", rowErr.Message)
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			// one create per row, awaited in order; failures are counted,
			// not fatal
			succeeded, failed := 0, 0
			for _, row := range result.ValidRows {
				in := client.EntryInput{
					ID:           newEntryID(),
					ManualDate:   strings.TrimSpace(row.ManualDate),
					CustomerName: strings.TrimSpace(row.CustomerName),
					MobileNumber: strings.TrimSpace(row.MobileNumber),
				}
				var amount float64
				if _, err := fmt.Sscanf(strings.TrimSpace(row.AmountRs), "%g", &amount); err != nil {
					failed++
					continue
				}
				in.AmountRs = int64(amount)

				if err := c.CreateEntry(cmd.Context(), in); err != nil {
					if client.IsUnauthorized(err) {
						return signInHint(err, "add entries")
					}
					logger.Debug("create failed", "customer", in.CustomerName, "err", err)
					failed++
					continue
				}
				succeeded++
			}

			logger.Info("import finished",
				"succeeded", succeeded,
				"failed", failed,
				"invalid_rows", len(result.Errors))

			// one refetch at the end, never per row
			entries, err := c.ListEntries(cmd.Context())
			if err != nil {
				return signInHint(err, "view entries")
			}
			fmt.Printf("%d entries in the ledger\n", len(entries))
			return nil
		},
	}
}
