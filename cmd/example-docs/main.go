// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the example-docs CLI.
//
// example-docs harvests code examples from a local project, pairs them with
// reference code fetched from a remote repository, and writes the comparison
// and examples documentation pages.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE; it stays a no-op until then.
var logger = zap.NewNop()

// rootCmd is the base command for the example-docs CLI. Run without a
// subcommand it behaves like generate.
var rootCmd = &cobra.Command{
	Use:   "example-docs",
	Short: "Generate example and comparison documentation",
	Long: `example-docs builds two documentation pages from a project's example tree:
a side-by-side comparison against a reference library's examples, and an
examples page with getting-started snippets and real-world before/after
transformations whose "before" code is fetched from the annotated upstream
source.

Per-file problems are reported as warnings and never stop a run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runGenerate,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./example-docs.yaml or ~/.config/example-docs/example-docs.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	// Overrides for the most common configuration keys.
	rootCmd.PersistentFlags().String("format", "", "output format: rst or markdown")
	rootCmd.PersistentFlags().String("formatter", "", "code formatter: clang-format, container, or none")
	rootCmd.PersistentFlags().String("manifest", "", "write a YAML or JSON manifest of every record to this path")
	rootCmd.PersistentFlags().String("history-db", "", "SQLite file recording per-run ratios")
	rootCmd.PersistentFlags().String("metrics-file", "", "write a Prometheus textfile snapshot to this path")

	for key, flag := range map[string]string{
		"output.format":     "format",
		"formatter.backend": "formatter",
		"output.manifest":   "manifest",
		"history_db":        "history-db",
		"metrics_file":      "metrics-file",
	} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("example-docs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "example-docs"))
		}
	}

	viper.SetEnvPrefix("EXAMPLE_DOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the diagnostic logger. Progress and warnings go to stdout
// as plain lines; the logger only carries debug tracing and internal errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
