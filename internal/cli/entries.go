package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"customer-ledger/internal/client"
	"customer-ledger/internal/ledger"

	"github.com/spf13/cobra"
)

// newEntryID mints a client-side entry id: unix-ms timestamp plus a
// random suffix.
func newEntryID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			entries, err := c.ListEntries(cmd.Context())
			if err != nil {
				return signInHint(err, "view entries")
			}
			if len(entries) == 0 {
				fmt.Println("no entries")
				return nil
			}
			out, err := ledger.RenderText(entries, "Customer Entries", time.Now())
			if err != nil {
				return err
			}
			os.Stdout.Write(out)
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date> <name> <mobile> <amount>",
		Short: "Add one entry (date as YYYY-MM-DD, amount in whole rupees)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := entryInputFromArgs(args)
			if err != nil {
				return err
			}
			in.ID = newEntryID()

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.CreateEntry(cmd.Context(), in); err != nil {
				return signInHint(err, "add entries")
			}
			logger.Info("entry added", "id", in.ID, "customer", in.CustomerName)
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <date> <name> <mobile> <amount>",
		Short: "Replace an entry's fields",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := entryInputFromArgs(args[1:])
			if err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.UpdateEntry(cmd.Context(), args[0], in); err != nil {
				return signInHint(err, "update entries")
			}
			logger.Info("entry updated", "id", args[0])
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return signInHint(err, "delete entries")
			}
			logger.Info("entry deleted", "id", args[0])
			return nil
		},
	}
}

// entryInputFromArgs validates [date, name, mobile, amount] positional
// arguments with the same rules the import pipeline applies.
func entryInputFromArgs(args []string) (client.EntryInput, error) {
	var in client.EntryInput

	if err := ledger.ValidateRequired(args[0], "Manual Date"); err != nil {
		return in, err
	}
	if _, ok := ledger.ParseDate(args[0]); !ok {
		return in, fmt.Errorf("Manual Date must be a valid YYYY-MM-DD date")
	}
	if err := ledger.ValidateRequired(args[1], "Customer Name"); err != nil {
		return in, err
	}
	if err := ledger.ValidateMobileNumber(args[2]); err != nil {
		return in, err
	}
	if err := ledger.ValidateAmount(args[3]); err != nil {
		return in, err
	}

	var amount int64
	if _, err := fmt.Sscanf(args[3], "%d", &amount); err != nil {
		return in, fmt.Errorf("Amount must be a whole number of rupees")
	}

	in.ManualDate = args[0]
	in.CustomerName = args[1]
	in.MobileNumber = args[2]
	in.AmountRs = amount
	return in, nil
}
