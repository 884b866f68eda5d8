package cmd

import (
	"fmt"

	"github.com/konchunas/rellic/refine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// initCmd: rellic init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = refine.DefaultConfigPath
	}
	return configurationPath, refine.WriteConfig(configurationPath, refine.DefaultConfig())
}
