// Root command for the gridview CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/gridview/internal/log"
	"github.com/mesh-intelligence/gridview/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// userError marks failures caused by bad input; they exit with
// exitUserError. Everything else exits with exitSysError.
type userError struct {
	err error
}

func (e *userError) Error() string { return e.err.Error() }
func (e *userError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return &userError{err: fmt.Errorf(format, args...)}
}

// cli carries the global flags and the loaded configuration to every
// subcommand.
type cli struct {
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool

	configDir string
	cfg       *viper.Viper
	logger    *slog.Logger
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	c := &cli{logger: log.Discard()}

	rootCmd := &cobra.Command{
		Use:           "gridview",
		Short:         "gridview renders JSONL datasets as sortable, filterable tables",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(c.flagConfigDir)
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}
			logger, err := log.New(stderr, log.ParseLevel(cfg.GetString(cfgKeyLogLevel)), cfg.GetString(cfgKeyLogFormat))
			if err != nil {
				return &userError{err: fmt.Errorf("config %s: %w", cfgKeyLogFormat, err)}
			}
			c.configDir = configDir
			c.cfg = cfg
			c.logger = logger
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &userError{err: err}
	})

	rootCmd.PersistentFlags().StringVar(&c.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&c.flagDataDir, "data-dir", "", "data directory holding <dataset>.jsonl files")
	rootCmd.PersistentFlags().BoolVar(&c.flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInitCmd(c))
	rootCmd.AddCommand(newConfigCmd(c))
	rootCmd.AddCommand(newListCmd(c))
	rootCmd.AddCommand(newViewCmd(c))
	rootCmd.AddCommand(newDeleteCmd(c))
	return rootCmd
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "gridview:", err)

	var ue *userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	return exitSysError
}

// resolveDataDir applies --data-dir > config.yaml data_dir > env > default.
func (c *cli) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(c.flagDataDir, c.cfg.GetString(cfgKeyDataDir))
}
