package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasklist/app"
	"tasklist/config"
	"tasklist/kv"
	"tasklist/logging"
	"tasklist/store"
	"tasklist/version"
)

// options holds the global flags. Empty values leave the config untouched.
type options struct {
	configPath string
	dataDir    string
	storage    string
	logLevel   string
}

// session is one opened state store with everything it depends on.
type session struct {
	logger  *log.Logger
	svc     *app.Service
	closers []io.Closer
}

// Execute runs the root command against the process streams.
// This is called by main.main().
func Execute() error {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tasklist",
		Short: "tasklist - a single-screen todo list for the terminal",
		Long: `tasklist keeps a todo list and a dark/light theme flag in a local
key-value store. Run without arguments for the interactive screen, or use the
subcommands to script the same actions.

Examples:
  # Start the interactive screen
  tasklist

  # Add a task and print its id
  tasklist add Buy milk

  # Press an on-screen control by its stable id
  tasklist press filter-completed`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(stderr, runInteractive)
		},
	}
	rootCmd.SetVersionTemplate(version.Info() + "\n")
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: searched in the user config dir)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding the store and the log file")
	flags.StringVar(&opts.storage, "storage", "", "storage backend: file, sqlite or memory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newAddCmd(opts, stdout, stderr),
		newListCmd(opts, stdout, stderr),
		newToggleCmd(opts, stdout, stderr),
		newDeleteCmd(opts, stdout, stderr),
		newClearCompletedCmd(opts, stdout, stderr),
		newThemeCmd(opts, stdout, stderr),
		newPressCmd(opts, stdout, stderr),
		newVersionCmd(stdout),
	)
	return rootCmd
}

// run opens a session, hands it to fn and closes it again.
func (o *options) run(stderr io.Writer, fn func(*session) error) error {
	s, err := o.open(stderr)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

func (o *options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.storage != "" {
		cfg.Storage = o.storage
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (o *options) open(stderr io.Writer) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &session{}
	logOpts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Timestamp: true}
	if path := cfg.LogPath(); path != "" {
		logger, closer, err := logging.OpenFile(path, logOpts)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		s.closers = append(s.closers, closer)
	} else {
		s.logger = logging.New(stderr, logOpts)
	}

	storage, err := kv.Open(cfg.Storage, cfg.DataDir, s.logger)
	if err != nil {
		s.logger.Error("could not open storage; changes will not be saved", "storage", cfg.Storage, "err", err)
		storage = kv.NewMemory()
	}
	s.closers = append([]io.Closer{storage}, s.closers...)

	repo, err := store.New(storage)
	if err != nil {
		s.close()
		return nil, err
	}

	s.svc = app.NewService(repo, s.logger)
	s.svc.Load()
	s.logger.Debug("session opened", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	return s, nil
}

func (s *session) close() {
	for _, c := range s.closers {
		if err := c.Close(); err != nil && s.logger != nil {
			s.logger.Warn("close failed", "err", err)
		}
	}
	s.closers = nil
}
