// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the linkresolver CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/linkresolver/internal/metadata"
	"github.com/pdiddy/linkresolver/internal/secrets"
	"github.com/pdiddy/linkresolver/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and synced on exit.
var logger = zap.NewNop()

// rootCmd is the base command for the linkresolver CLI.
var rootCmd = &cobra.Command{
	Use:   "linkresolver",
	Short: "OpenURL link resolver results page",
	Long: `linkresolver serves the results page of an OpenURL link resolver. Each
page view shows the citation being resolved, fetches the available full-text
targets from the resolver backend, and lists them with their coverage.

Use serve to run the HTTP server, render for a one-shot page, and citation
to inspect the configured citation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(viper.GetString("environment"), verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./linkresolver.yaml or ~/.config/linkresolver/config.yaml)")
	pf.Bool("verbose", false, "enable debug logging")
	pf.String("backend-url", "", "links endpoint queried once per page view")
	pf.String("metadata-file", "", "citation metadata file, JSON or YAML (default: embedded sample)")
	pf.Duration("timeout", types.DefaultTimeout, "backend HTTP timeout")
	pf.Duration("render-timeout", types.DefaultRenderTimeout, "how long a page view waits for links before rendering")

	_ = viper.BindPFlag("backend_url", pf.Lookup("backend-url"))
	_ = viper.BindPFlag("metadata_file", pf.Lookup("metadata-file"))
	_ = viper.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = viper.BindPFlag("render_timeout", pf.Lookup("render-timeout"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("linkresolver")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "linkresolver"))
		}
	}

	viper.SetEnvPrefix("LINKRESOLVER")
	viper.AutomaticEnv()
	// Unmarshal only sees env values for keys viper already knows.
	for _, key := range []string{"listen", "user_agent", "max_retries", "exclude_targets", "environment", "secrets_dir", "backend_token"} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a development logger for the dev environment and a JSON
// production logger otherwise. Both write to stderr.
func newLogger(environment string, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == "" || environment == "dev" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		cfg = zap.NewProductionConfig()
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadConfig reads the resolved configuration and fills in the backend
// credential from the secrets directory.
func loadConfig() (types.ResolverConfig, error) {
	viper.SetDefault("max_retries", types.DefaultMaxRetries)

	var cfg types.ResolverConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg = cfg.WithDefaults()

	store, err := secrets.Load(cfg.SecretsDir, logger)
	if err != nil {
		return cfg, err
	}
	if keys := store.Keys(); len(keys) > 0 {
		logger.Debug("loaded secrets", zap.Strings("keys", keys))
	}
	cfg.BackendToken = store.Get(secrets.BackendToken, cfg.BackendToken)
	return cfg, nil
}

// loadCitation reads the static citation artifact named by cfg.
func loadCitation(cfg types.ResolverConfig) (types.CitationRecord, error) {
	rec, err := metadata.Load(cfg.MetadataFile)
	if err != nil {
		return rec, err
	}
	logger.Debug("citation loaded",
		zap.String("file", cfg.MetadataFile),
		zap.String("genre", rec.Genre),
		zap.String("title", rec.ArticleTitle),
	)
	return rec, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
