package sbom

import (
	"testing"

	"github.com/Tully9/CernAtlasSBOM/resolve"
	"github.com/Tully9/CernAtlasSBOM/sources"
	"github.com/google/go-cmp/cmp"
)

func sampleResolutions() []resolve.Resolution {
	return []resolve.Resolution{
		{Name: "numpy", Version: "1.26.4", Category: sources.CategoryInterpreter,
			Origins: []sources.Origin{sources.OriginFrozenList}},
		{Name: "CLHEP", Version: "2.4.6.4", Category: sources.CategoryNative,
			Origins: []sources.Origin{sources.OriginManifest, sources.OriginCatalogPage}},
		{Name: "boost", Version: "1.82.0", Category: sources.CategoryNative,
			Origins: []sources.Origin{sources.OriginManifest}},
		{Name: "Acts", Version: "", Category: sources.CategoryNative,
			Origins: []sources.Origin{sources.OriginManifest}},
	}
}

func TestAssembleOrdersComponents(t *testing.T) {
	document := Assemble("Athena", sampleResolutions(), nil)
	names := make([]string, 0, document.Total())
	for _, component := range document.Components {
		names = append(names, component.Name)
	}
	// Native libraries first, case-insensitive within each category.
	expected := []string{"Acts", "boost", "CLHEP", "numpy"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("component order mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleSourceCounts(t *testing.T) {
	document := Assemble("Athena", sampleResolutions(), nil)
	expected := map[string]int{
		"manifest":     3,
		"cmake-tree":   0,
		"frozen-list":  1,
		"catalog-page": 1,
	}
	if diff := cmp.Diff(expected, document.SourceCounts); diff != "" {
		t.Errorf("SourceCounts mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleEmptyDocument(t *testing.T) {
	document := Assemble("StatAnalysis", nil, nil)
	if document.Total() != 0 {
		t.Errorf("Total() = %d, want 0", document.Total())
	}
	// Every origin still shows up as an explicit zero.
	for _, origin := range sources.KnownOrigins() {
		if count, ok := document.SourceCounts[string(origin)]; !ok || count != 0 {
			t.Errorf("SourceCounts[%s] = (%d, %v), want (0, true)", origin, count, ok)
		}
	}
	if document.GeneratedAt.IsZero() {
		t.Error("GeneratedAt must be stamped even on an empty document")
	}
}

func TestDisplayVersion(t *testing.T) {
	pinned := Component{Version: "1.2.3"}
	if got := pinned.DisplayVersion(); got != "1.2.3" {
		t.Errorf("DisplayVersion() = %q, want 1.2.3", got)
	}
	unpinned := Component{}
	if got := unpinned.DisplayVersion(); got != UndefinedVersion {
		t.Errorf("DisplayVersion() = %q, want %q", got, UndefinedVersion)
	}
}
