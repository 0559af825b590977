// Package operations drives the full generation sequence for one
// project line: collect from every configured source, reconcile the
// records into one version per package, assemble the document and
// append the result to the version ledger.
package operations

import (
	"bytes"
	"fmt"

	"github.com/Tully9/CernAtlasSBOM/cloud"
	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/journal"
	"github.com/Tully9/CernAtlasSBOM/ledger"
	"github.com/Tully9/CernAtlasSBOM/normalize"
	"github.com/Tully9/CernAtlasSBOM/pathlib"
	"github.com/Tully9/CernAtlasSBOM/resolve"
	"github.com/Tully9/CernAtlasSBOM/sbom"
	"github.com/Tully9/CernAtlasSBOM/settings"
	"github.com/Tully9/CernAtlasSBOM/sources"
)

// Pipeline is one project line's fully resolved input set. Every
// field except Project is optional; a missing source contributes
// nothing and the run carries on.
type Pipeline struct {
	Project         string
	Manifest        string
	BuildTree       string
	FrozenList      string
	FallbackTree    string
	BuildLog        string
	CatalogRelease  string
	CatalogPlatform string
	CatalogSnapshot string
}

// PipelineFromProject lifts a settings project entry into a runnable
// pipeline.
func PipelineFromProject(project settings.Project) Pipeline {
	return Pipeline{
		Project:         project.Name,
		Manifest:        project.Manifest,
		BuildTree:       project.BuildTree,
		FrozenList:      project.FrozenList,
		FallbackTree:    project.FallbackTree,
		BuildLog:        project.BuildLog,
		CatalogRelease:  project.CatalogRelease,
		CatalogPlatform: project.CatalogPlatform,
		CatalogSnapshot: project.CatalogSnapshot,
	}
}

// SourceOutcome is one collector's contribution to a run, kept for
// reporting whether the source delivered or degraded.
type SourceOutcome struct {
	Origin sources.Origin
	Count  int
	Err    error
}

// RunSummary is everything the command layer needs to report one run.
type RunSummary struct {
	Project    string
	SequenceID int
	Unchanged  bool
	Failed     bool
	Stage      string
	Err        error
	Sources    []SourceOutcome
	Total      int
	Elapsed    common.Duration
}

func failed(summary RunSummary, stage string, err error) RunSummary {
	summary.Failed = true
	summary.Stage = stage
	summary.Err = err
	return summary
}

// Run executes the full generation sequence for one pipeline and
// appends the outcome to the given ledger. Collection failures
// degrade to empty contributions; only assembly and persistence
// failures fail the run.
func Run(pipeline Pipeline, book *ledger.Ledger) (summary RunSummary) {
	watch := common.Stopwatch("Generation for %s took", pipeline.Project)
	summary.Project = pipeline.Project
	defer func() {
		summary.Elapsed = watch.Elapsed()
	}()

	if len(pipeline.Project) == 0 {
		return failed(summary, "setup", fmt.Errorf("pipeline has no project name"))
	}

	journalRun(pipeline.Project, "run started")
	info := buildInformation(pipeline)
	records, outcomes := collect(pipeline, info)
	summary.Sources = outcomes
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			journalRun(pipeline.Project, fmt.Sprintf("source %s degraded: %v", outcome.Origin, outcome.Err))
		}
	}

	aliases := normalize.DefaultAliases()
	if settings.Global != nil {
		aliases = aliases.Merged(settings.Global.Aliases)
	}

	resolver := &resolve.Resolver{
		Precedence: precedence(),
		Fallback:   fallback(pipeline, aliases),
		Aliases:    aliases,
	}
	resolutions := resolver.Resolve(records)

	document := sbom.Assemble(pipeline.Project, resolutions, info)
	summary.Total = document.Total()

	manifest, err := sbom.GenerateCycloneDX(document)
	if err != nil {
		return failed(summary, "assemble", err)
	}
	report := sbom.GenerateMarkdown(document)

	appended, err := book.Append(document, manifest, []byte(report))
	if err != nil {
		journalRun(pipeline.Project, fmt.Sprintf("persist failed: %v", err))
		return failed(summary, "persist", err)
	}
	summary.SequenceID = appended.Record.SequenceID
	summary.Unchanged = appended.Unchanged
	if appended.Unchanged {
		journalRun(pipeline.Project, fmt.Sprintf("unchanged, still v%d", appended.Record.SequenceID))
	} else {
		journalRun(pipeline.Project, fmt.Sprintf("stored v%d with %d dependencies", appended.Record.SequenceID, summary.Total))
	}
	watch.Report()
	return summary
}

// buildInformation reads the externals build log when one is
// configured, then lets explicit catalog settings override what the
// log claims.
func buildInformation(pipeline Pipeline) *sources.BuildInfo {
	info := new(sources.BuildInfo)
	if len(pipeline.BuildLog) > 0 && pathlib.IsFile(pipeline.BuildLog) {
		parsed, err := sources.ParseBuildLog(pipeline.BuildLog)
		if err != nil {
			common.Uncritical(fmt.Sprintf("build log %s", pipeline.BuildLog), err)
		} else {
			info = parsed
		}
	}
	if len(pipeline.CatalogRelease) > 0 {
		info.CatalogRelease = pipeline.CatalogRelease
	}
	if len(pipeline.CatalogPlatform) > 0 {
		info.CatalogPlatform = pipeline.CatalogPlatform
	}
	return info
}

func collect(pipeline Pipeline, info *sources.BuildInfo) ([]sources.RawRecord, []SourceOutcome) {
	records := make([]sources.RawRecord, 0, 500)
	outcomes := make([]SourceOutcome, 0, 4)

	contribute := func(origin sources.Origin, found []sources.RawRecord, err error) {
		if err != nil {
			common.Uncritical(fmt.Sprintf("source %s", origin), err)
		}
		records = append(records, found...)
		outcomes = append(outcomes, SourceOutcome{Origin: origin, Count: len(found), Err: err})
	}

	var found []sources.RawRecord
	var err error

	found, err = nil, nil
	if len(pipeline.Manifest) > 0 {
		found, err = sources.ReadManifest(pipeline.Manifest, sources.CategoryNative)
	}
	contribute(sources.OriginManifest, found, err)

	found, err = nil, nil
	if len(pipeline.BuildTree) > 0 {
		found, err = sources.ScanBuildTree(pipeline.BuildTree)
	}
	contribute(sources.OriginBuildTree, found, err)

	found, err = nil, nil
	if len(pipeline.FrozenList) > 0 {
		found, err = sources.ReadFrozenList(pipeline.FrozenList)
	}
	contribute(sources.OriginFrozenList, found, err)

	found, err = catalog(pipeline, info)
	contribute(sources.OriginCatalogPage, found, err)

	return records, outcomes
}

// catalog fetches the live version-catalog page for the run's release
// and platform, falling back to a local snapshot when the live page
// is unreachable.
func catalog(pipeline Pipeline, info *sources.BuildInfo) ([]sources.RawRecord, error) {
	release := info.CatalogRelease
	platform := info.CatalogPlatform
	if len(release) == 0 || len(platform) == 0 {
		common.Debug("No catalog release/platform for %s, skipping catalog source.", pipeline.Project)
		return nil, nil
	}
	if settings.Global == nil {
		return nil, fmt.Errorf("settings are not loaded")
	}
	client, err := cloud.NewClient(settings.Global.CatalogEndpoint)
	if err != nil {
		return snapshot(pipeline, err)
	}
	client = client.WithTimeout(settings.Global.Timeout()).Uncritical()
	found, err := sources.FetchCatalog(client, settings.Global.CatalogPath(release, platform))
	if err != nil {
		return snapshot(pipeline, err)
	}
	return found, nil
}

// snapshot parses a configured catalog snapshot, a local file or a
// mirrored copy behind a URL, when the live page is out of reach.
func snapshot(pipeline Pipeline, cause error) ([]sources.RawRecord, error) {
	if len(pipeline.CatalogSnapshot) == 0 {
		return nil, cause
	}
	common.Uncritical("live catalog", cause)
	common.Log("Using catalog snapshot %q instead.", pipeline.CatalogSnapshot)
	blob, err := cloud.ReadFile(pipeline.CatalogSnapshot)
	if err != nil {
		return nil, err
	}
	return sources.ParseCatalogPage(bytes.NewReader(blob), pipeline.CatalogSnapshot)
}

func fallback(pipeline Pipeline, aliases normalize.Aliases) resolve.Fallback {
	if len(pipeline.FallbackTree) == 0 || !pathlib.IsDir(pipeline.FallbackTree) {
		return nil
	}
	found, err := sources.ScanBuildTree(pipeline.FallbackTree)
	if err != nil {
		common.Uncritical(fmt.Sprintf("fallback tree %s", pipeline.FallbackTree), err)
		return nil
	}
	tree := resolve.NewTreeFallback(found, aliases)
	common.Debug("Fallback tree knows %d package versions.", tree.Size())
	return tree
}

func precedence() []sources.Origin {
	if settings.Global == nil {
		return resolve.DefaultPrecedence()
	}
	return resolve.PrecedenceFromNames(settings.Global.Precedence)
}

func journalRun(project, detail string) {
	err := journal.Post("generate", project, detail)
	if err != nil {
		common.Debug("Journaling failed (ignored): %v", err)
	}
}
