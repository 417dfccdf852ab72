package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stevemurr/jsonrecords/document"
	"github.com/stevemurr/jsonrecords/store"
)

func (a *app) mergeCommand() *cobra.Command {
	var (
		output string
		sqlite string
	)
	cmd := &cobra.Command{
		Use:   "merge DIR",
		Short: "Combine every JSON document in DIR into one, keyed by file name",
		Long: "Combine every JSON document in DIR into one, keyed by file name without extension.\n" +
			"Malformed files are reported and skipped. Without --out or --sqlite the\n" +
			"merged document is printed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.cfg.Merge.Output
			}
			if sqlite == "" {
				sqlite = a.cfg.Merge.Sqlite
			}

			res, err := a.store.MergeDirectory(args[0])
			if err != nil {
				return err
			}
			for _, sk := range res.Skipped {
				fmt.Fprintf(a.errOut, "Error loading JSON from %s: %v\n", sk.Name, sk.Err)
			}

			if output == "" && sqlite == "" {
				b, err := a.store.Format(document.ObjectValue(res.Collection))
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s\n", b)
				return nil
			}
			if output != "" {
				if err := a.export("json", output, res.Collection); err != nil {
					return err
				}
			}
			if sqlite != "" {
				if err := a.export("sqlite", sqlite, res.Collection); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.out, "Merged %d documents from %s (%d skipped).\n",
				res.Collection.Len(), args[0], len(res.Skipped))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "Write the merged document to this file")
	cmd.Flags().StringVar(&sqlite, "sqlite", "", "Export the merged records to this SQLite database")
	return cmd
}

func (a *app) export(backend, path string, collection *document.Object) error {
	sink, err := a.store.NewSink(backend, path)
	if err != nil {
		return err
	}
	defer sink.Close()
	if err := sink.Save(collection); err != nil {
		return err
	}
	fields := []zap.Field{
		zap.String("backend", backend),
		zap.String("path", path),
	}
	if db, ok := sink.(*store.SqliteSink); ok {
		names, err := db.Collections()
		if err != nil {
			return err
		}
		fields = append(fields, zap.Int("collections", len(names)))
	}
	a.log.Info("exported merged collection", fields...)
	return nil
}
