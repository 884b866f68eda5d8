package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "rellic [paths...]",
	Short:            "rellic - structure decompiled control flow",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// rellic [path1 path2 ...] => behaves like the refine subcommand
		refineCmd.Run(refineCmd, args)
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	return config.Build()
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Stop structuring after this long")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every rewrite")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(refineCmd)
}
