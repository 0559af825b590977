package cmd

import (
	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/ledger"
	"github.com/Tully9/CernAtlasSBOM/pretty"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <project>",
	Short: "Show the version ledger history of one project.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book := ledger.New(ledgerRoot())
		project := args[0]
		sequence, err := book.Sequence(project)
		pretty.Guard(err == nil, 1, "Could not read ledger for %q: %v", project, err)
		if len(sequence) == 0 {
			common.Stdout("No ledger entries for %q yet.\n", project)
			return nil
		}
		pretty.Highlight("Ledger history of %s:", project)
		for _, id := range sequence {
			record, err := book.Record(project, id)
			if err != nil {
				pretty.Warning("Entry v%d of %q is unreadable: %v", id, project, err)
				continue
			}
			common.Stdout("v%-4d %s  %4d dependencies  %3d change(s)\n",
				record.SequenceID,
				record.CreatedAt.Format("2006-01-02 15:04:05"),
				record.Document.Total(),
				len(record.Diff))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
