package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tully9/CernAtlasSBOM/sbom"
	"github.com/Tully9/CernAtlasSBOM/sources"
	"github.com/google/go-cmp/cmp"
)

func document(project string, entries ...[3]string) *sbom.Document {
	components := make([]sbom.Component, 0, len(entries))
	for _, entry := range entries {
		components = append(components, sbom.Component{
			Name:     entry[0],
			Version:  entry[1],
			Category: sources.Category(entry[2]),
			Origins:  []sources.Origin{sources.OriginManifest},
		})
	}
	return &sbom.Document{
		Project:      project,
		GeneratedAt:  time.Now().UTC(),
		Components:   components,
		SourceCounts: map[string]int{"manifest": len(components)},
	}
}

func native(name, version string) [3]string {
	return [3]string{name, version, string(sources.CategoryNative)}
}

func TestAppendAssignsMonotonicSequence(t *testing.T) {
	book := New(t.TempDir())

	first, err := book.Append(document("Athena", native("Boost", "1.82.0")), []byte("{}"), []byte("# r"))
	if err != nil {
		t.Fatalf("first Append() error = %v", err)
	}
	if first.Record.SequenceID != 1 || first.Unchanged {
		t.Errorf("first append = v%d unchanged=%v, want v1 unchanged=false", first.Record.SequenceID, first.Unchanged)
	}

	second, err := book.Append(document("Athena", native("Boost", "1.83.0")), []byte("{}"), []byte("# r"))
	if err != nil {
		t.Fatalf("second Append() error = %v", err)
	}
	if second.Record.SequenceID != 2 {
		t.Errorf("second append = v%d, want v2", second.Record.SequenceID)
	}

	ids, err := book.Sequence("Athena")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2}, ids); diff != "" {
		t.Errorf("Sequence() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendSuppressesUnchangedDocuments(t *testing.T) {
	book := New(t.TempDir())

	if _, err := book.Append(document("Athena", native("Boost", "1.82.0")), []byte("{}"), []byte("# r")); err != nil {
		t.Fatal(err)
	}
	// Same content, later timestamp.
	repeat := document("Athena", native("Boost", "1.82.0"))
	repeat.GeneratedAt = repeat.GeneratedAt.Add(time.Hour)
	appended, err := book.Append(repeat, []byte("{}"), []byte("# r"))
	if err != nil {
		t.Fatalf("repeat Append() error = %v", err)
	}
	if !appended.Unchanged || appended.Record.SequenceID != 1 {
		t.Errorf("repeat append = v%d unchanged=%v, want v1 unchanged=true", appended.Record.SequenceID, appended.Unchanged)
	}

	ids, _ := book.Sequence("Athena")
	if len(ids) != 1 {
		t.Errorf("Sequence() = %v, an unchanged document must not spend an id", ids)
	}
}

func TestAppendPartitionsAreIndependent(t *testing.T) {
	book := New(t.TempDir())
	if _, err := book.Append(document("Athena", native("Boost", "1.82.0")), []byte("{}"), []byte("# r")); err != nil {
		t.Fatal(err)
	}
	appended, err := book.Append(document("AnalysisBase", native("ROOT", "6.28.12")), []byte("{}"), []byte("# r"))
	if err != nil {
		t.Fatal(err)
	}
	if appended.Record.SequenceID != 1 {
		t.Errorf("other partition starts at v%d, want v1", appended.Record.SequenceID)
	}
}

func TestAppendFailureLeavesPartitionUntouched(t *testing.T) {
	root := t.TempDir()
	book := New(root)
	if _, err := book.Append(document("Athena", native("Boost", "1.82.0")), []byte("{}"), []byte("# r")); err != nil {
		t.Fatal(err)
	}
	// Occupying the next version directory makes the final rename fail.
	blocker := filepath.Join(root, "Athena", "v2")
	if err := os.MkdirAll(filepath.Join(blocker, "occupied"), 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := book.Append(document("Athena", native("Boost", "1.83.0")), []byte("{}"), []byte("# r"))
	if err == nil {
		t.Skip("rename over an occupied directory succeeded on this platform")
	}
	if _, ok := err.(*PersistenceError); !ok {
		t.Errorf("Append() error type = %T, want *PersistenceError", err)
	}
	// No staging leftovers become visible sequence entries.
	ids, _ := book.Sequence("Athena")
	if diff := cmp.Diff([]int{1, 2}, ids); diff != "" {
		t.Errorf("Sequence() after failed append (-want +got):\n%s", diff)
	}
	latest, err := book.Latest("Athena")
	if err == nil && latest != nil && latest.SequenceID != 1 {
		t.Errorf("latest readable record = v%d, want v1", latest.SequenceID)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "Athena"))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".staging-") {
			t.Errorf("staging directory %s survived a failed append", entry.Name())
		}
	}
}

func TestRoundTrip(t *testing.T) {
	book := New(t.TempDir())
	original := document("StatAnalysis", native("ROOT", "6.28.12"), native("Boost", "1.82.0"))
	appended, err := book.Append(original, []byte(`{"bomFormat":"CycloneDX"}`), []byte("# StatAnalysis SBOM Report"))
	if err != nil {
		t.Fatal(err)
	}

	record, err := book.Record("StatAnalysis", appended.Record.SequenceID)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if record.Project != "StatAnalysis" || record.Document.Total() != 2 {
		t.Errorf("stored record = %s with %d components, want StatAnalysis with 2", record.Project, record.Document.Total())
	}

	manifest, err := book.Manifest("StatAnalysis", appended.Record.SequenceID)
	if err != nil || !strings.Contains(string(manifest), "CycloneDX") {
		t.Errorf("Manifest() = (%q, %v), want the stored manifest", manifest, err)
	}
	report, err := book.Report("StatAnalysis", appended.Record.SequenceID)
	if err != nil || !strings.HasPrefix(string(report), "# StatAnalysis") {
		t.Errorf("Report() = (%q, %v), want the stored report", report, err)
	}
}

func TestDiff(t *testing.T) {
	before := document("Athena",
		native("Boost", "1.82.0"),
		native("CLHEP", "2.4.6.4"),
		native("Davix", "0.8.4"))
	after := document("Athena",
		native("Boost", "1.83.0"),
		native("CLHEP", "2.4.6.4"),
		native("Eigen", "3.4.0"))

	changes := Diff(before, after)
	expected := []Change{
		{Op: OpRemoved, Name: "Boost", Category: string(sources.CategoryNative), Version: "1.82.0"},
		{Op: OpRemoved, Name: "Davix", Category: string(sources.CategoryNative), Version: "0.8.4"},
		{Op: OpAdded, Name: "Boost", Category: string(sources.CategoryNative), Version: "1.83.0"},
		{Op: OpAdded, Name: "Eigen", Category: string(sources.CategoryNative), Version: "3.4.0"},
	}
	if diff := cmp.Diff(expected, changes); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffAgainstNothing(t *testing.T) {
	changes := Diff(nil, document("Athena", native("Boost", "1.82.0")))
	if len(changes) != 0 {
		t.Errorf("Diff(nil, first) = %v, want empty", changes)
	}
}

func TestSignatureIgnoresTimestamp(t *testing.T) {
	first := document("Athena", native("Boost", "1.82.0"))
	second := document("Athena", native("Boost", "1.82.0"))
	second.GeneratedAt = second.GeneratedAt.Add(48 * time.Hour)
	if Signature(first) != Signature(second) {
		t.Error("signatures must not depend on the generation timestamp")
	}

	changed := document("Athena", native("Boost", "1.83.0"))
	if Signature(first) == Signature(changed) {
		t.Error("signatures must depend on component versions")
	}

	rebuilt := document("Athena", native("Boost", "1.82.0"))
	rebuilt.BuildInfo = &sources.BuildInfo{CCompiler: "GNU 14.1.0"}
	if Signature(first) == Signature(rebuilt) {
		t.Error("signatures must depend on build information")
	}
}
