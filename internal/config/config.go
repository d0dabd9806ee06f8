package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("source", "project.txt")
	viper.SetDefault("out", ".")
	viper.SetDefault("root", "multi-tenant-saas")
	viper.SetDefault("report", "missing.txt")
	viper.SetDefault("indent", 4)          // Characters per tree level
	viper.SetDefault("match", "strict")    // strict, fold or basename
	viper.SetDefault("ignore", []string{}) // gitignore-style patterns for tree entries
	viper.SetDefault("dry_run", false)
	viper.SetDefault("manifest", "")
	viper.SetDefault("verbose", false)

	viper.SetConfigName("mdscaffold")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "mdscaffold"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MDSCAFFOLD")
	viper.AutomaticEnv()

	// A missing config file is fine, an unreadable one is not
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// GetSource returns the source document path with tilde expansion
func GetSource() string {
	return expandTilde(viper.GetString("source"))
}

// GetOutDir returns the parent directory of the root folder
func GetOutDir() string {
	return expandTilde(viper.GetString("out"))
}

// GetRoot returns the output root folder name
func GetRoot() string {
	return viper.GetString("root")
}

// GetReport returns the missing report file name
func GetReport() string {
	return viper.GetString("report")
}

// GetIndent returns the tree indent width, never less than 1
func GetIndent() int {
	if n := viper.GetInt("indent"); n > 0 {
		return n
	}
	return 4
}

// GetMatch returns the reconciliation mode
func GetMatch() string {
	return viper.GetString("match")
}

// GetIgnore returns the ignore patterns for tree entries
func GetIgnore() []string {
	return viper.GetStringSlice("ignore")
}

// GetDryRun returns whether files are written to memory only
func GetDryRun() bool {
	return viper.GetBool("dry_run")
}

// GetManifest returns the manifest output path, empty when disabled
func GetManifest() string {
	return expandTilde(viper.GetString("manifest"))
}

// GetVerbose returns whether diagnostics are logged
func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// SetSource sets the source path at runtime
func SetSource(path string) {
	viper.Set("source", path)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
