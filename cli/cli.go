// Package cli provides the jsonrecords command line.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stevemurr/jsonrecords/config"
	"github.com/stevemurr/jsonrecords/document"
	"github.com/stevemurr/jsonrecords/logger"
	"github.com/stevemurr/jsonrecords/store"
)

// app holds the dependencies shared by all subcommands. They are built in
// the root command's PersistentPreRunE, after flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg   config.Config
	log   *zap.Logger
	store *store.Store

	out    io.Writer
	errOut io.Writer
}

// NewRootCommand builds the jsonrecords command tree. Results go to out,
// diagnostics to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "jsonrecords",
		Short:         "Search, edit and merge game-data JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")

	root.AddCommand(
		a.searchCommand(),
		a.updateCommand(),
		a.searchUpdateCommand(),
		a.mergeCommand(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.log, err = logger.New(cfg.Logging, a.errOut)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	perm, err := cfg.Document.Perm()
	if err != nil {
		return err
	}
	a.store, err = store.New(store.Options{
		Indent:   cfg.Document.IndentString(),
		Atomic:   cfg.Document.AtomicWrite,
		FileMode: perm,
		Pattern:  cfg.Merge.Pattern,
	}, a.log)
	if err != nil {
		return err
	}
	a.log.Debug("configured",
		zap.String("config", a.configPath),
		zap.Bool("atomic_write", cfg.Document.AtomicWrite),
		zap.String("pattern", cfg.Merge.Pattern),
	)
	return nil
}

// field returns the flag value or the configured default search field.
func (a *app) field(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Document.Field
}

// parseUpdates builds the field set for update commands. raw is a JSON
// object; each set entry is field=value where value is read as JSON when it
// parses and as a plain string otherwise. set entries win over raw.
func parseUpdates(raw string, set []string) (*document.Object, error) {
	updates := document.NewObject()
	if raw != "" {
		obj, err := document.ParseObject([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("--json: %w", err)
		}
		updates.Merge(obj)
	}
	for _, kv := range set {
		field, val, ok := strings.Cut(kv, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("--set %q: expected field=value", kv)
		}
		v, err := document.Parse([]byte(val))
		if err != nil {
			v = document.StringValue(val)
		}
		updates.Set(field, v)
	}
	if updates.Len() == 0 {
		return nil, fmt.Errorf("no updates given (use --set field=value or --json)")
	}
	return updates, nil
}
