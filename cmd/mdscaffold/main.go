package main

import (
	"fmt"
	"os"

	"github.com/gubarz/mdscaffold/internal/config"
	"github.com/gubarz/mdscaffold/internal/reconcile"
	"github.com/gubarz/mdscaffold/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

// configErr is set when the config file exists but cannot be read
var configErr error

var rootCmd = &cobra.Command{
	Use:   "mdscaffold [source]",
	Short: "Materialize a project from a tree diagram and code blocks",
	Long: `Reads a text document containing an ASCII directory tree, numbered
section headers and fenced code blocks.

Every block that follows a header naming a file is written under the
root folder. Files listed in the tree that never got a code block are
listed in a report inside the root folder.

Headers look like:
  1. Package.json
  4. Middleware (app/middleware.ts)`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runScaffold,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("root", "r", "", "Root folder name used in the tree and for output (default multi-tenant-saas)")
	flags.StringP("out", "o", "", "Directory the root folder is created in (default .)")
	flags.String("report", "", "Missing files report name (default missing.txt)")
	flags.Int("indent", 0, "Characters per tree level (default 4)")
	flags.StringP("match", "m", "", "Reconcile mode: strict, fold, basename")
	flags.StringSlice("ignore", nil, "Gitignore-style patterns for tree entries that need no code block")
	flags.Bool("dry-run", false, "Parse and report without writing output files; only --manifest is written")
	flags.String("manifest", "", "Write a YAML run manifest to this file")
	flags.BoolP("verbose", "v", false, "Log every skipped line and block")

	viper.BindPFlag("root", flags.Lookup("root"))
	viper.BindPFlag("out", flags.Lookup("out"))
	viper.BindPFlag("report", flags.Lookup("report"))
	viper.BindPFlag("indent", flags.Lookup("indent"))
	viper.BindPFlag("match", flags.Lookup("match"))
	viper.BindPFlag("ignore", flags.Lookup("ignore"))
	viper.BindPFlag("dry_run", flags.Lookup("dry-run"))
	viper.BindPFlag("manifest", flags.Lookup("manifest"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

func initConfig() {
	configErr = config.Init()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

func runScaffold(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	if len(args) > 0 {
		config.SetSource(args[0])
	}

	mode, err := reconcile.ParseMode(config.GetMatch())
	if err != nil {
		return err
	}

	logger, err := newLogger(config.GetVerbose())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	_, err = scaffold.Run(scaffold.Options{
		Source:   config.GetSource(),
		OutDir:   config.GetOutDir(),
		Root:     config.GetRoot(),
		Report:   config.GetReport(),
		Indent:   config.GetIndent(),
		Match:    mode,
		Ignore:   config.GetIgnore(),
		DryRun:   config.GetDryRun(),
		Manifest: config.GetManifest(),
		Stdout:   cmd.OutOrStdout(),
		Logger:   logger,
	})
	return err
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
