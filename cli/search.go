package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stevemurr/jsonrecords/document"
)

const separator = "--------------------"

func (a *app) searchCommand() *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "search FILE VALUE...",
		Short: "Print records whose field equals VALUE, ignoring case",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, values := args[0], args[1:]
			f := a.field(field)
			for _, value := range values {
				matches, err := a.store.Search(path, value, f)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					fmt.Fprintf(a.out, "No entries found for %s '%s'.\n", f, value)
					continue
				}
				fmt.Fprintf(a.out, "Found %d matching entries for %s '%s':\n", len(matches), f, value)
				for _, m := range matches {
					if err := a.printRecord(m.Key, m.Record); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "Record field to compare (default from config, \"name\")")
	return cmd
}

func (a *app) printRecord(key string, rec *document.Object) error {
	b, err := a.store.Format(document.ObjectValue(rec))
	if err != nil {
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Key: %s\n", key)
	sb.Write(b)
	sb.WriteString("\n" + separator + "\n")
	_, err = fmt.Fprint(a.out, sb.String())
	return err
}
