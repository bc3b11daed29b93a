package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rewardtrack/internal/app"
	"rewardtrack/internal/catalog"
	"rewardtrack/internal/domain"
	"rewardtrack/internal/httpapi"
	"rewardtrack/internal/logging"
	"rewardtrack/internal/store"
)

var (
	home       string
	configPath string
	backend    string
	passphrase string
	logLevel   string
	logFile    string
	remote     string

	// Set by PersistentPreRunE. appCtx is nil in remote mode.
	appCtx     *app.App
	rewardsSvc domain.RewardsService
	programs   *catalog.Catalog
	logCloser  io.Closer
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(newRootCmd())
}

// run executes root and releases whatever PersistentPreRunE opened, even when
// the subcommand fails.
func run(root *cobra.Command) (err error) {
	defer func() { err = errors.Join(err, release()) }()
	return root.Execute()
}

func release() error {
	var errs []error
	if appCtx != nil {
		errs = append(errs, appCtx.Close())
		appCtx = nil
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
		logCloser = nil
	}
	return errors.Join(errs...)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rewardtrack",
		Short:        "Track loyalty points across dispensary reward programs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			logger, closer, err := logging.Setup(logging.Options{
				Service: "rewardtrack",
				Level:   cfg.Log.Level,
				File:    cfg.Log.File,
				Out:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			logCloser = closer

			if cfg.Remote != "" {
				rewardsSvc = httpapi.NewClient(cfg.Remote)
				programs = catalog.Default()
				return nil
			}
			appCtx, err = app.New(cfg, logger)
			if err != nil {
				return err
			}
			rewardsSvc, programs = appCtx.Rewards, appCtx.Catalog
			if appCtx.RestoreWarning != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; starting from initial balances\n", appCtx.RestoreWarning)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "data dir (default ~/.rewardtrack)")
	pf.StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVar(&backend, "backend", "", "storage backend: file, encrypted, leveldb, sqlite or memory")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase for the encrypted backend")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file with rotation")
	pf.StringVar(&remote, "remote", "", "server base URL (e.g. http://127.0.0.1:8080); local storage is not opened")

	root.AddCommand(
		programsCmd(),
		balanceCmd(),
		historyCmd(),
		purchaseCmd(),
		previewCmd(),
		planCmd(),
		serveCmd(),
	)
	return root
}

// resolveConfig layers defaults, the config file, the environment and finally
// any flags set on the command line.
func resolveConfig(cmd *cobra.Command) (app.Config, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return app.Config{}, err
	}
	base := app.Default(userHome)
	if home != "" {
		base.Home = home
	}

	path, required := configPath, configPath != ""
	if !required {
		path = app.DefaultPath(base)
	}
	cfg, err := app.Load(base, path, required)
	if err != nil {
		return app.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("home") {
		cfg.Home = home
	}
	if flags.Changed("backend") {
		cfg.Backend = store.Backend(backend)
	}
	if flags.Changed("passphrase") {
		cfg.Passphrase = passphrase
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("remote") {
		cfg.Remote = remote
	}
	return cfg, nil
}
