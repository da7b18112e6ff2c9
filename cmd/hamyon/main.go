package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/config"
)

var version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "hamyon",
		Short: "👛 Personal income and expense tracker",
		Long: `hamyon keeps a single-user ledger of income and expenses,
grouped into categories, and shows balances, daily and monthly spending,
category breakdowns and month-by-month trends.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/hamyon/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("backend", "", "storage backend (sqlite, file, memory)")
	flags.String("data", "", "database file (sqlite) or directory (file)")

	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyStorageBackend, flags.Lookup("backend"))
	_ = a.v.BindPFlag(config.KeyStoragePath, flags.Lookup("data"))

	root.AddCommand(addCmd(a))
	root.AddCommand(deleteCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(recentCmd(a))
	root.AddCommand(dashboardCmd(a))
	root.AddCommand(analyticsCmd(a))
	root.AddCommand(categoriesCmd(a))
	root.AddCommand(importCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(resetCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(config.ConfigDir())
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(config.EnvKeyReplacer())
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := common.SetupLogger(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.Debug("configuration loaded",
		"config_file", a.v.ConfigFileUsed(),
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.Path)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writef(cmd.OutOrStdout(), "hamyon %s\n", version)
		},
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
