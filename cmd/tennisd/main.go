package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtpredict/tennis-core/pkg/config"
	"github.com/courtpredict/tennis-core/pkg/logger"
)

var (
	flagConfig   string
	flagPool     string
	flagLogLevel string
)

func main() {
	root := &cobra.Command{
		Use:          "tennisd",
		Short:        "Tennis match simulation and roster optimization",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to service config YAML")
	root.PersistentFlags().StringVar(&flagPool, "pool", "", "path to player pool YAML")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newOptimizeCmd())
	root.AddCommand(newBracketCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: the --config file when
// given, built-in defaults otherwise, with --log-level taking precedence.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadConfig(flagConfig)
	} else {
		cfg, err = config.ParseConfigYAML(nil)
	}
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// loadPool loads the pool named by --pool or the config, if any.
func loadPool(cfg *config.Config) (*config.Pool, error) {
	path := flagPool
	if path == "" {
		path = cfg.PoolPath
	}
	if path == "" {
		return nil, nil
	}
	return config.LoadPool(path)
}

func setupLogger(cfg *config.Config) {
	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stderr))
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
