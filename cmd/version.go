package cmd

import (
	"github.com/Tully9/CernAtlasSBOM/common"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the tool version.",
	Run: func(cmd *cobra.Command, args []string) {
		common.Stdout("%s\n", common.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
