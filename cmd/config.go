package cmd

import (
	"errors"
	"fmt"
	"strings"

	tomlrepo "github.com/bnema/layoutguard/internal/adapters/repo/toml"
	"github.com/bnema/layoutguard/internal/layout"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "LAYOUTGUARD"
	configName = "layoutguard"
	configType = "toml"

	sourceRootKey    = "source.root"
	sourceFileKey    = "source.file"
	sourceMarkerKey  = "source.marker"
	sourceRevKey     = "source.rev"
	baselinesPathKey = tomlrepo.BaselinesPathKey
	logLevelKey      = "log.level"
)

var flagKeys = map[string]string{
	"root":      sourceRootKey,
	"file":      sourceFileKey,
	"marker":    sourceMarkerKey,
	"rev":       sourceRevKey,
	"baselines": baselinesPathKey,
}

func bindPersistentFlags(rootCmd *cobra.Command, cfg *viper.Viper) {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./layoutguard.toml when present)")
	flags.String("root", ".", "Directory holding one sub-directory per contract")
	flags.String("file", "lib.rs", "Declaration file inside each contract directory")
	flags.String("marker", layout.DefaultMarker, "Attribute that marks the storage struct")
	flags.String("rev", "", "Read declarations at this git revision instead of the working tree")
	flags.String("baselines", "storage-layouts.toml", "Baseline file (.toml, or legacy .json)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	for flag, key := range flagKeys {
		_ = cfg.BindPFlag(key, flags.Lookup(flag))
	}
}

// loadConfig applies, from lowest to highest precedence: defaults, the
// config file, .env and LAYOUTGUARD_* variables, then explicit flags.
func loadConfig(cmd *cobra.Command, cfg *viper.Viper) error {
	_ = godotenv.Load()

	cfg.SetDefault(sourceRootKey, ".")
	cfg.SetDefault(sourceFileKey, "lib.rs")
	cfg.SetDefault(sourceMarkerKey, layout.DefaultMarker)
	cfg.SetDefault(sourceRevKey, "")
	cfg.SetDefault(baselinesPathKey, "storage-layouts.toml")
	cfg.SetDefault(logLevelKey, "warn")

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg.SetConfigFile(configPath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		cfg.AddConfigPath(".")
		if err := cfg.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Set(logLevelKey, "debug")
	}

	return nil
}
