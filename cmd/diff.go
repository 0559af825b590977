package cmd

import (
	"fmt"
	"strconv"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/ledger"
	"github.com/Tully9/CernAtlasSBOM/pretty"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <project> [older newer]",
	Short: "Show dependency changes between two ledger entries.",
	Long: `Diff compares two ledger entries of one project. Without explicit
sequence ids it compares the two most recent entries. A version bump
shows up as a removal plus an addition for the same package.`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		book := ledger.New(ledgerRoot())
		project := args[0]
		older, newer, err := pickPair(book, project, args[1:])
		pretty.Guard(err == nil, 1, "Could not select entries for %q: %v", project, err)

		before, err := book.Record(project, older)
		pretty.Guard(err == nil, 1, "Could not read v%d of %q: %v", older, project, err)
		after, err := book.Record(project, newer)
		pretty.Guard(err == nil, 1, "Could not read v%d of %q: %v", newer, project, err)

		changes := ledger.Diff(before.Document, after.Document)
		if len(changes) == 0 {
			common.Stdout("No dependency changes between v%d and v%d.\n", older, newer)
			return nil
		}
		common.Stdout("Changes from v%d to v%d:\n", older, newer)
		for _, change := range changes {
			marker := "+"
			if change.Op == ledger.OpRemoved {
				marker = "-"
			}
			common.Stdout("%s %s %s (%s)\n", marker, change.Name, change.Version, change.Category)
		}
		return nil
	},
}

func pickPair(book *ledger.Ledger, project string, picks []string) (int, int, error) {
	sequence, err := book.Sequence(project)
	if err != nil {
		return 0, 0, err
	}
	if len(picks) == 2 {
		older, err := strconv.Atoi(picks[0])
		if err != nil {
			return 0, 0, err
		}
		newer, err := strconv.Atoi(picks[1])
		if err != nil {
			return 0, 0, err
		}
		return older, newer, nil
	}
	if len(sequence) < 2 {
		return 0, 0, fmt.Errorf("at least two ledger entries are needed, found %d", len(sequence))
	}
	return sequence[len(sequence)-2], sequence[len(sequence)-1], nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
