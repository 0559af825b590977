// Package ledger persists successive SBOM snapshots per project
// line. Each partition is a directory of v<N> subdirectories; the
// highest N is the latest record. Appends stage into a temporary
// directory and become visible through a single rename, so a torn
// write can never surface as a new maximum sequence id.
package ledger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/pathlib"
	"github.com/Tully9/CernAtlasSBOM/sbom"
)

const (
	recordFile   = "record.json"
	manifestFile = "sbom.json"
	reportFile   = "sbom.md"
)

type Ledger struct {
	root string
}

func New(root string) *Ledger {
	return &Ledger{root: root}
}

func (it *Ledger) Root() string {
	return it.root
}

func (it *Ledger) partition(project string) string {
	return filepath.Join(it.root, project)
}

// Sequence returns the persisted sequence ids for one project line
// in increasing order.
func (it *Ledger) Sequence(project string) ([]int, error) {
	entries, err := os.ReadDir(it.partition(project))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "v") {
			continue
		}
		id, err := strconv.Atoi(entry.Name()[1:])
		if err != nil || id < 1 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// Latest returns the newest record, or nil when the partition is
// still empty.
func (it *Ledger) Latest(project string) (*VersionRecord, error) {
	ids, err := it.Sequence(project)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return it.Record(project, ids[len(ids)-1])
}

func (it *Ledger) Record(project string, sequenceID int) (*VersionRecord, error) {
	blob, err := os.ReadFile(filepath.Join(it.partition(project), fmt.Sprintf("v%d", sequenceID), recordFile))
	if err != nil {
		return nil, err
	}
	record := new(VersionRecord)
	err = json.Unmarshal(blob, record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Report reads the stored Markdown report of one record.
func (it *Ledger) Report(project string, sequenceID int) ([]byte, error) {
	return os.ReadFile(filepath.Join(it.partition(project), fmt.Sprintf("v%d", sequenceID), reportFile))
}

// Manifest reads the stored CycloneDX manifest of one record.
func (it *Ledger) Manifest(project string, sequenceID int) ([]byte, error) {
	return os.ReadFile(filepath.Join(it.partition(project), fmt.Sprintf("v%d", sequenceID), manifestFile))
}

// Append persists one freshly assembled document together with its
// rendered manifest and report. When the document's signature equals
// the latest record's, no new version is created. Returns a
// PersistenceError when durable storage fails; the partition is left
// exactly as it was.
func (it *Ledger) Append(document *sbom.Document, manifest, report []byte) (*Appended, error) {
	project := document.Project
	latest, err := it.Latest(project)
	if err != nil {
		return nil, &PersistenceError{Project: project, Err: err}
	}

	if latest != nil && Signature(latest.Document) == Signature(document) {
		common.Debug("Document for %s is identical to v%d; no new version created.", project, latest.SequenceID)
		return &Appended{Record: latest, Unchanged: true}, nil
	}

	next := 1
	var previous *sbom.Document
	if latest != nil {
		next = latest.SequenceID + 1
		previous = latest.Document
	}

	record := &VersionRecord{
		SequenceID: next,
		Project:    project,
		CreatedAt:  time.Now().UTC(),
		Diff:       Diff(previous, document),
		Document:   document,
	}

	err = it.store(project, record, manifest, report)
	if err != nil {
		return nil, &PersistenceError{Project: project, Err: err}
	}
	return &Appended{Record: record}, nil
}

func (it *Ledger) store(project string, record *VersionRecord, manifest, report []byte) error {
	partition, err := pathlib.EnsureDirectory(it.partition(project))
	if err != nil {
		return err
	}
	staging, err := os.MkdirTemp(partition, ".staging-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	blob, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	for filename, content := range map[string][]byte{
		recordFile:   blob,
		manifestFile: manifest,
		reportFile:   report,
	} {
		err = os.WriteFile(filepath.Join(staging, filename), content, 0o644)
		if err != nil {
			return err
		}
	}

	final := filepath.Join(partition, fmt.Sprintf("v%d", record.SequenceID))
	return os.Rename(staging, final)
}

// Diff computes the symmetric difference of (name, category,
// version) triples between two documents. Previous may be nil for
// the first record; the diff is then empty.
func Diff(previous, next *sbom.Document) []Change {
	changes := make([]Change, 0, 8)
	if previous == nil {
		return changes
	}
	before := triples(previous)
	after := triples(next)
	for _, key := range sortedTriples(before) {
		if !after[key] {
			changes = append(changes, asChange(OpRemoved, key))
		}
	}
	for _, key := range sortedTriples(after) {
		if !before[key] {
			changes = append(changes, asChange(OpAdded, key))
		}
	}
	return changes
}

type triple struct {
	name     string
	category string
	version  string
}

func triples(document *sbom.Document) map[triple]bool {
	result := make(map[triple]bool, len(document.Components))
	for _, component := range document.Components {
		result[triple{
			name:     component.Name,
			category: string(component.Category),
			version:  component.DisplayVersion(),
		}] = true
	}
	return result
}

func sortedTriples(source map[triple]bool) []triple {
	result := make([]triple, 0, len(source))
	for key := range source {
		result = append(result, key)
	}
	sort.Slice(result, func(left, right int) bool {
		if result[left].category != result[right].category {
			return result[left].category < result[right].category
		}
		if result[left].name != result[right].name {
			return result[left].name < result[right].name
		}
		return result[left].version < result[right].version
	})
	return result
}

func asChange(op string, key triple) Change {
	return Change{Op: op, Name: key.name, Category: key.category, Version: key.version}
}

// Signature digests everything that makes two documents meaningfully
// different: the component triples and the build information. The
// generation timestamp is excluded, so re-running over unchanged
// inputs does not spend a sequence id.
func Signature(document *sbom.Document) string {
	digester := sha256.New()
	for _, key := range sortedTriples(triples(document)) {
		fmt.Fprintf(digester, "%s\x00%s\x00%s\n", key.name, key.category, key.version)
	}
	if info := document.BuildInfo; info != nil {
		fmt.Fprintf(digester, "build:%s|%s|%s|%s\n",
			info.CCompiler, info.CXXCompiler, info.Platform, info.CatalogRelease)
	}
	return fmt.Sprintf("%x", digester.Sum(nil))
}
