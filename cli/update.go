package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stevemurr/jsonrecords/store"
)

func (a *app) updateCommand() *cobra.Command {
	var (
		raw    string
		set    []string
		create bool
	)
	cmd := &cobra.Command{
		Use:   "update FILE KEY",
		Short: "Merge fields into the record stored under KEY and rewrite FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key := args[0], args[1]
			updates, err := parseUpdates(raw, set)
			if err != nil {
				return err
			}
			res, err := a.store.Update(path, key, updates, create)
			if err != nil {
				return err
			}
			switch res.Outcome {
			case store.KeyNotFound:
				fmt.Fprintf(a.out, "Key '%s' not found in %s.\n", key, path)
			default:
				fmt.Fprintf(a.out, "Key '%s' %s in %s.\n", key, res.Outcome, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&raw, "json", "", "Fields to set, as a JSON object")
	cmd.Flags().StringArrayVar(&set, "set", nil, "Field to set as field=value (repeatable; value parsed as JSON when possible)")
	cmd.Flags().BoolVar(&create, "create", false, "Create the record when KEY is missing")
	return cmd
}

func (a *app) searchUpdateCommand() *cobra.Command {
	var (
		field string
		raw   string
		set   []string
	)
	cmd := &cobra.Command{
		Use:   "search-update FILE VALUE...",
		Short: "Apply fields to every record whose field equals VALUE, ignoring case",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, values := args[0], args[1:]
			updates, err := parseUpdates(raw, set)
			if err != nil {
				return err
			}
			f := a.field(field)
			for _, value := range values {
				results, err := a.store.SearchAndUpdate(path, value, f, updates)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					fmt.Fprintf(a.out, "No entries found for %s '%s'.\n", f, value)
					continue
				}
				fmt.Fprintf(a.out, "Updated %d entries for %s '%s':\n", len(results), f, value)
				for _, r := range results {
					fmt.Fprintf(a.out, "Key: %s\n", r.Key)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&field, "field", "f", "", "Record field to compare (default from config, \"name\")")
	cmd.Flags().StringVar(&raw, "json", "", "Fields to set, as a JSON object")
	cmd.Flags().StringArrayVar(&set, "set", nil, "Field to set as field=value (repeatable; value parsed as JSON when possible)")
	return cmd
}
