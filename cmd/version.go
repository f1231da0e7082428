package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/watchword/watchword/config"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the version number of watchword",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "watchword version: %s %s/%s\nBuildTime: %s, Commit: %s\n", config.Version, runtime.GOOS, runtime.GOARCH, config.BuildTime, config.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
