package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"qbank/internal/bootstrap"
	"qbank/internal/platform/config"
	"qbank/internal/platform/logging"
	"qbank/internal/ui/render"
)

type rootFlags struct {
	dir        string
	configPath string
	input      string
	output     string
	logLevel   string
	logJSON    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "qbank",
		Short:         "Import question blocks from a text file into a sorted question bank",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runImport(flags),
	}
	root.PersistentFlags().StringVar(&flags.dir, "dir", ".", "base directory for relative paths")
	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultConfigName, "config file (optional)")
	root.PersistentFlags().StringVar(&flags.input, "input", "", "raw question text file (default test.txt)")
	root.PersistentFlags().StringVar(&flags.output, "output", "", "question bank file, .json or .yaml (default result.json)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "emit logs as JSON")

	root.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Parse the input file, merge it into the bank and clear the input",
		Args:  cobra.NoArgs,
		RunE:  runImport(flags),
	})
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	root.AddCommand(newTypesCmd(flags))
	root.AddCommand(newBrowseCmd(flags))
	return root
}

func loadApp(cmd *cobra.Command, flags *rootFlags, forceIndex bool) (*bootstrap.App, error) {
	overrides := config.Overrides{InputPath: flags.input, OutputPath: flags.output, LogLevel: flags.logLevel}
	if cmd.Flags().Changed("log-json") {
		overrides.LogJSON = &flags.logJSON
	}
	if forceIndex {
		on := true
		overrides.Index = &on
	}
	cfg, err := config.Load(flags.dir, flags.configPath, overrides)
	if err != nil {
		return nil, err
	}
	log := logging.New(logging.Options{Name: "qbank", Level: cfg.LogLevel, JSON: cfg.LogJSON, Output: cmd.ErrOrStderr()})
	return bootstrap.New(cfg, log, bootstrap.Options{RequireIndex: forceIndex})
}

// runImport never fails on pipeline conditions; they are logged and the
// process still exits 0.
func runImport(flags *rootFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd, flags, false)
		if err != nil {
			return err
		}
		defer app.Close()
		out, err := app.BankCLI.Import(context.Background())
		if err != nil {
			app.Log.Error("import aborted", "error", err)
			return nil
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), render.Import(out))
		return nil
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var recordType string
	list := &cobra.Command{
		Use:   "list [--type <type>]",
		Short: "Print the question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			records, err := app.BankCLI.List(context.Background(), strings.TrimSpace(recordType))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), render.Records(records))
			return nil
		},
	}
	list.Flags().StringVar(&recordType, "type", "", "only show records of this type")
	return list
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			stats, err := app.BankCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), render.Stats(stats))
			return nil
		},
	}
}

func newReindexCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite projection from the question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags, true)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.BankCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed rows=%d\n", out.Rows)
			return nil
		},
	}
}

func newTypesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List record types from the SQLite projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags, true)
			if err != nil {
				return err
			}
			defer app.Close()
			types, err := app.BankCLI.Types(context.Background())
			if err != nil {
				return err
			}
			if len(types) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no types indexed, run qbank reindex")
				return nil
			}
			for _, t := range types {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", t.Type, t.Count)
			}
			return nil
		},
	}
}

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the question bank in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI("qbank", app)
		},
	}
}
