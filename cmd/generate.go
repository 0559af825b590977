package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/ledger"
	"github.com/Tully9/CernAtlasSBOM/operations"
	"github.com/Tully9/CernAtlasSBOM/pathlib"
	"github.com/Tully9/CernAtlasSBOM/pretty"
	"github.com/Tully9/CernAtlasSBOM/settings"

	"github.com/spf13/cobra"
)

var outputOption string

var generateCmd = &cobra.Command{
	Use:   "generate [project ...]",
	Short: "Generate SBOM documents and append them to the version ledger.",
	Long: `Generate collects dependency declarations from every configured source
of the named projects (all configured projects when none are named),
reconciles them into one version per package, and appends the result
to the version ledger. A run whose content matches the latest ledger
entry is suppressed, not duplicated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if common.DebugFlag() {
			defer common.Stopwatch("Generate command lasted").Report()
		}
		names := args
		if len(names) == 0 {
			names = settings.Global.ProjectNames()
		}
		book := ledger.New(ledgerRoot())
		failures := 0
		for _, name := range names {
			project, ok := settings.Global.Project(name)
			pretty.Guard(ok, 2, "Unknown project %q; configured projects are %v.", name, settings.Global.ProjectNames())
			summary := operations.Run(operations.PipelineFromProject(project), book)
			report(summary)
			for _, outcome := range summary.Sources {
				if outcome.Err != nil {
					pretty.Note("Source %s for %s degraded: %v", outcome.Origin, summary.Project, outcome.Err)
				}
			}
			if summary.Failed {
				failures += 1
				continue
			}
			if len(outputOption) > 0 && !summary.Unchanged {
				err := export(book, summary)
				if err != nil {
					pretty.Warning("Could not export %s documents: %v", summary.Project, err)
				}
			}
		}
		if failures > 0 {
			return pretty.Exit(3, "%d project run(s) failed.", failures)
		}
		pretty.Ok()
		return nil
	},
}

func report(summary operations.RunSummary) {
	rows := []pretty.SummaryRow{
		{Label: "Project", Value: summary.Project},
	}
	if summary.Failed {
		rows = append(rows, pretty.SummaryRow{Label: "Outcome", Value: fmt.Sprintf("failed at %s: %v", summary.Stage, summary.Err), Tone: pretty.ToneBad})
	} else if summary.Unchanged {
		rows = append(rows, pretty.SummaryRow{Label: "Outcome", Value: fmt.Sprintf("unchanged, still v%d", summary.SequenceID), Tone: pretty.ToneWarn})
	} else {
		rows = append(rows, pretty.SummaryRow{Label: "Outcome", Value: fmt.Sprintf("stored v%d", summary.SequenceID), Tone: pretty.ToneGood})
	}
	rows = append(rows, pretty.SummaryRow{Label: "Dependencies", Value: fmt.Sprintf("%d", summary.Total)})
	for _, outcome := range summary.Sources {
		tone := pretty.TonePlain
		value := fmt.Sprintf("%d", outcome.Count)
		if outcome.Err != nil {
			tone = pretty.ToneWarn
			value = fmt.Sprintf("%d (degraded: %v)", outcome.Count, outcome.Err)
		}
		rows = append(rows, pretty.SummaryRow{Label: string(outcome.Origin), Value: value, Tone: tone})
	}
	rows = append(rows, pretty.SummaryRow{Label: "Elapsed", Value: summary.Elapsed.String()})
	common.Stdout("%s\n", pretty.SummaryBox("SBOM generation", rows))
}

// export copies the freshly stored documents next to each other in
// the requested output directory, named by project.
func export(book *ledger.Ledger, summary operations.RunSummary) error {
	_, err := pathlib.EnsureDirectory(outputOption)
	if err != nil {
		return err
	}
	manifest, err := book.Manifest(summary.Project, summary.SequenceID)
	if err != nil {
		return err
	}
	markdown, err := book.Report(summary.Project, summary.SequenceID)
	if err != nil {
		return err
	}
	err = pathlib.WriteFile(filepath.Join(outputOption, fmt.Sprintf("%s.cdx.json", summary.Project)), manifest)
	if err != nil {
		return err
	}
	return pathlib.WriteFile(filepath.Join(outputOption, fmt.Sprintf("%s.md", summary.Project)), markdown)
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&outputOption, "output", "o", "", "Also export the generated documents into this directory.")
}
