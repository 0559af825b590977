package sources

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBuildLog(t *testing.T) {
	content := `-- The C compiler identification is GNU 13.1.0
-- The CXX compiler identification is GNU 13.1.0
-- Using platform name: x86_64-el9-gcc13-opt
-- Found LCG release "LCG_104d_ATLAS_7" for platform: x86_64-el9-gcc13-opt
-- Package filtering rules read:
--   + External/Boost
--   + External/CLHEP
--   + External/nlohmann_json
-- Configuring done
`
	filename := writeSource(t, "cmake_build.log", content)
	info, err := ParseBuildLog(filename)
	if err != nil {
		t.Fatalf("ParseBuildLog() error = %v", err)
	}
	expected := &BuildInfo{
		CCompiler:       "GNU 13.1.0",
		CXXCompiler:     "GNU 13.1.0",
		Platform:        "x86_64-el9-gcc13-opt",
		CatalogRelease:  "104d_ATLAS_7",
		CatalogPlatform: "x86_64-el9-gcc13-opt",
		Packages:        []string{"Boost", "CLHEP", "nlohmann_json"},
	}
	if diff := cmp.Diff(expected, info); diff != "" {
		t.Errorf("ParseBuildLog() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBuildLogEmpty(t *testing.T) {
	filename := writeSource(t, "empty.log", "")
	info, err := ParseBuildLog(filename)
	if err != nil {
		t.Fatalf("ParseBuildLog() error = %v", err)
	}
	if len(info.CCompiler) > 0 || len(info.CatalogRelease) > 0 || len(info.Packages) > 0 {
		t.Errorf("ParseBuildLog() on empty log = %+v, want zero value", info)
	}
}

func TestParseBuildLogMissing(t *testing.T) {
	_, err := ParseBuildLog("no/such/build.log")
	if err == nil {
		t.Fatal("ParseBuildLog() expected an error for a missing log")
	}
}
