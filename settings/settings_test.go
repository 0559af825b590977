package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	if defaults.CatalogEndpoint != "https://lcginfo.cern.ch" {
		t.Errorf("CatalogEndpoint = %q", defaults.CatalogEndpoint)
	}
	if got := defaults.CatalogPath("104d_ATLAS_7", "x86_64-el9-gcc13-opt"); got != "/release_packages/104d_ATLAS_7/x86_64-el9-gcc13-opt/" {
		t.Errorf("CatalogPath() = %q", got)
	}
	if err := defaults.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
	if len(defaults.Projects) != 3 {
		t.Errorf("Projects = %d, want the three project lines", len(defaults.Projects))
	}
}

func TestSummonSettingsLayersFileOverDefaults(t *testing.T) {
	content := `
ledgerRoot: /data/sboms
timeoutSeconds: 5
precedence:
  - manifest
  - catalog-page
aliases:
  Py_Torch: pytorch
projects:
  - name: Athena
    manifest: /athena/cppDep.txt
`
	filename := filepath.Join(t.TempDir(), "atlasbom.yaml")
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	UseConfigFile(filename)
	defer UseConfigFile("")

	config, err := SummonSettings()
	if err != nil {
		t.Fatalf("SummonSettings() error = %v", err)
	}
	if config.LedgerRoot != "/data/sboms" {
		t.Errorf("LedgerRoot = %q, file value must win", config.LedgerRoot)
	}
	if config.CatalogEndpoint != "https://lcginfo.cern.ch" {
		t.Errorf("CatalogEndpoint = %q, unset keys must keep defaults", config.CatalogEndpoint)
	}
	if len(config.Precedence) != 2 || config.Precedence[0] != "manifest" {
		t.Errorf("Precedence = %v, file value must win", config.Precedence)
	}
	project, ok := config.Project("athena")
	if !ok || project.Manifest != "/athena/cppDep.txt" {
		t.Errorf("Project(athena) = (%+v, %v), lookup is case-insensitive", project, ok)
	}
	if Global != config {
		t.Error("SummonSettings() must publish the result as Global")
	}
}

func TestSummonSettingsMissingExplicitFile(t *testing.T) {
	UseConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	defer UseConfigFile("")
	if _, err := SummonSettings(); err == nil {
		t.Error("an explicitly named but missing settings file must fail")
	}
}

func TestValidate(t *testing.T) {
	broken := Defaults()
	broken.CatalogTemplate = "/static/path/"
	if err := broken.Validate(); err == nil {
		t.Error("a template without placeholders must not validate")
	}

	broken = Defaults()
	broken.Precedence = nil
	if err := broken.Validate(); err == nil {
		t.Error("an empty precedence list must not validate")
	}

	broken = Defaults()
	broken.Projects = append(broken.Projects, Project{})
	if err := broken.Validate(); err == nil {
		t.Error("a nameless project must not validate")
	}
}

func TestAsYaml(t *testing.T) {
	content, err := Defaults().AsYaml()
	if err != nil {
		t.Fatalf("AsYaml() error = %v", err)
	}
	text := string(content)
	for _, expected := range []string{"catalogEndpoint:", "precedence:", "ledgerRoot:", "- name: Athena"} {
		if !strings.Contains(text, expected) {
			t.Errorf("AsYaml() lacks %q", expected)
		}
	}
}

func TestTimeout(t *testing.T) {
	config := Defaults()
	if config.Timeout().Seconds() != 30 {
		t.Errorf("default Timeout() = %v, want 30s", config.Timeout())
	}
	config.TimeoutSeconds = 0
	if config.Timeout().Seconds() != 30 {
		t.Errorf("zero TimeoutSeconds must fall back to 30s, got %v", config.Timeout())
	}
	config.TimeoutSeconds = 5
	if config.Timeout().Seconds() != 5 {
		t.Errorf("Timeout() = %v, want 5s", config.Timeout())
	}
}
