package sbom

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Tully9/CernAtlasSBOM/sources"
)

func TestGenerateCycloneDXShape(t *testing.T) {
	info := &sources.BuildInfo{
		CCompiler:      "GNU 13.1.0",
		CXXCompiler:    "GNU 13.1.0",
		Platform:       "x86_64-el9-gcc13-opt",
		CatalogRelease: "104d_ATLAS_7",
	}
	document := Assemble("AnalysisBase", sampleResolutions(), info)
	blob, err := GenerateCycloneDX(document)
	if err != nil {
		t.Fatalf("GenerateCycloneDX() error = %v", err)
	}

	var bom CycloneDX
	if err := json.Unmarshal(blob, &bom); err != nil {
		t.Fatalf("generated manifest is not valid JSON: %v", err)
	}
	if bom.BomFormat != "CycloneDX" || bom.SpecVersion != "1.4" {
		t.Errorf("format = %s/%s, want CycloneDX/1.4", bom.BomFormat, bom.SpecVersion)
	}
	if !strings.HasPrefix(bom.SerialNum, "urn:uuid:") {
		t.Errorf("SerialNum = %q, want an urn:uuid serial", bom.SerialNum)
	}
	if bom.Metadata.Component == nil || bom.Metadata.Component.Name != "AnalysisBase" {
		t.Errorf("metadata component = %+v, want the project name", bom.Metadata.Component)
	}
	if len(bom.Components) != document.Total() {
		t.Errorf("components = %d, want %d", len(bom.Components), document.Total())
	}
	for _, component := range bom.Components {
		if component.Name == "Acts" && component.Version != UndefinedVersion {
			t.Errorf("unversioned component rendered as %q, want %q", component.Version, UndefinedVersion)
		}
	}
}

func TestGenerateCycloneDXEmptyDocument(t *testing.T) {
	blob, err := GenerateCycloneDX(Assemble("Athena", nil, nil))
	if err != nil {
		t.Fatalf("GenerateCycloneDX() error = %v", err)
	}
	var bom CycloneDX
	if err := json.Unmarshal(blob, &bom); err != nil {
		t.Fatalf("empty manifest is not valid JSON: %v", err)
	}
	if bom.Components == nil || len(bom.Components) != 0 {
		t.Errorf("empty document must render an empty component array, got %v", bom.Components)
	}
}
