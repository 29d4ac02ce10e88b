// FILE: lixenwraith/recorder/cmd/recorder/main.go
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/recorder"
	"github.com/spf13/cobra"
)

var version = "dev"

// Persistent flags shared by the subcommands that create a recorder
var (
	configPath string
	overrides  []string
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "recorder",
		Short:         "Async log recorder with masking and snapshot export",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file with a [recorder] table")
	root.PersistentFlags().StringArrayVar(&overrides, "set", nil, "config override key=value (repeatable)")

	root.AddCommand(newWriteCmd())
	root.AddCommand(newMaskCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newStressCmd())
	return root
}

func execute() error {
	return newRootCmd().Execute()
}

// loadConfig resolves the config file, then applies --set overrides on top
func loadConfig() (*recorder.Config, error) {
	cfg := recorder.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = recorder.NewConfigFromFile(configPath); err != nil {
			return nil, err
		}
	}
	if len(overrides) > 0 {
		if err := cfg.ApplyOverride(overrides...); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
