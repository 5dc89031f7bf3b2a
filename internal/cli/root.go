// Package cli builds the obsuid command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"obsui/internal/config"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	storeKind  string
	storeDSN   string
	storeKey   string
	root       string
	useHash    bool

	cfg    config.Config
	logger zerolog.Logger
}

// MainWithArgs runs the command tree with args and returns the process exit
// code: 0 on success, 2 when no command is given, 1 on error.
func MainWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := buildRootCmd(stdout, stderr)
	if len(args) == 0 {
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

// Main returns an exit code for use by cmd/obsuid.
func Main() int { return MainWithArgs(context.Background(), os.Args[1:], os.Stdout, os.Stderr) }

func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return buildRootCmdWith(&options{}, stdout, stderr)
}

// buildRootCmdWith constructs the Cobra command tree around opts.
func buildRootCmdWith(opts *options, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "obsuid",
		Short:         "Observer UI todo demo: HTTP server and offline todo tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml, .json, .toml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults OBSUI_LOG_LEVEL or info)")
	pf.StringVar(&opts.storeKind, "store", "", "Store kind: memory|file|sqlite|postgres")
	pf.StringVar(&opts.storeDSN, "dsn", "", "Store location: directory, database path or connection string")
	pf.StringVar(&opts.storeKey, "key", "", "Storage key of the todo list")
	pf.StringVar(&opts.root, "root", "", "Router root path")
	pf.BoolVar(&opts.useHash, "hash", false, "Use fragment navigation")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.resolve(cmd)
		if err != nil {
			return err
		}
		opts.cfg = cfg
		opts.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
		installLogger(opts.logger)
		return nil
	}

	root.AddCommand(newServeCmd(opts), newTodoCmd(opts), newRouteCmd(opts), newCompletionCmd(root))
	return root
}

// resolve layers the config file, OBSUI_* variables and explicit flags, then
// applies defaults.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("store") {
		cfg.Store.Kind = o.storeKind
	}
	if flags.Changed("dsn") {
		cfg.Store.DSN = o.storeDSN
	}
	if flags.Changed("key") {
		cfg.Store.Key = o.storeKey
	}
	if flags.Changed("root") {
		cfg.Router.Root = o.root
	}
	if flags.Changed("hash") {
		cfg.Router.UseHash = o.useHash
	}
	return cfg.WithDefaults(), nil
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	return completionCmd
}
