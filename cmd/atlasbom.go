package cmd

import (
	"os"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/journal"
	"github.com/Tully9/CernAtlasSBOM/pretty"
	"github.com/Tully9/CernAtlasSBOM/settings"

	"github.com/spf13/cobra"
)

var (
	configFile   string
	ledgerOption string
	silentFlag   bool
	debugFlag    bool
	traceFlag    bool
	numbersFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "atlasbom",
	Short: "Software bill of materials generation for ATLAS software releases.",
	Long: `atlasbom reconciles the external dependency declarations of an ATLAS
software release (manifests, CMake build trees, frozen environment
lists and the LCG version catalog) into one CycloneDX document per
project line, and keeps every generated document in a version ledger.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
		common.LogLinenumbers = numbersFlag
		pretty.Setup()
		if len(configFile) > 0 {
			settings.UseConfigFile(configFile)
		}
		config, err := settings.SummonSettings()
		pretty.Guard(err == nil, 1, "Could not load settings: %v", err)
		err = config.Validate()
		pretty.Guard(err == nil, 1, "Settings are not valid: %v", err)
		journal.Configure(ledgerRoot())
		common.Trace("Command %q started.", cmd.Name())
	},
}

// ledgerRoot is the --ledger override or the configured default.
func ledgerRoot() string {
	if len(ledgerOption) > 0 {
		return ledgerOption
	}
	if settings.Global != nil {
		return settings.Global.LedgerRoot
	}
	return settings.Defaults().LedgerRoot
}

func Execute() {
	defer common.WaitLogs()
	err := rootCmd.Execute()
	if err != nil {
		common.Fatal("atlasbom", err)
		common.WaitLogs()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Settings file to use instead of the discovered one.")
	rootCmd.PersistentFlags().StringVarP(&ledgerOption, "ledger", "", "", "Version ledger root directory (overrides settings).")
	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "s", false, "Be less verbose.")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "", false, "Show debug messages during command execution.")
	rootCmd.PersistentFlags().BoolVarP(&traceFlag, "trace", "", false, "Show trace messages during command execution (implies --debug).")
	rootCmd.PersistentFlags().BoolVarP(&numbersFlag, "numbers", "", false, "Prefix log lines with line numbers.")
}
