package cmd

import (
	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/pretty"
	"github.com/Tully9/CernAtlasSBOM/settings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective settings as YAML.",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := settings.Global.AsYaml()
		pretty.Guard(err == nil, 1, "Could not render settings: %v", err)
		common.Stdout("%s", string(content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
