// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/photovault/pkg/app"
	"github.com/yeisme/photovault/pkg/configs"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "photovault",
		Short: "A photo gallery service with collection level access control",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 子命令也需要配置就绪
			return configs.InitConfig(configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
	registerSeedCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
