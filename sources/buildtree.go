package sources

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Tully9/CernAtlasSBOM/common"
)

// The build tree grammar: one production per recognized declaration
// form. A production either names its package (tarball reference
// patterns, one per external the build system is known to carry) or
// captures both name and version from the declaration itself. Keeping
// the grammar declarative keeps in-file parsing testable without any
// filesystem traversal.
type Production struct {
	Package string
	Pattern *regexp.Regexp
}

var (
	findPackageProduction = regexp.MustCompile(`(?i)find_package\s*\(\s*([A-Za-z0-9_]+)(?:\s+([0-9][0-9A-Za-z.\-]*))?`)

	tarballProductions = []Production{
		{"Acts", regexp.MustCompile(`(?i)acts[-_/]?([0-9.]+)\.tar\.gz`)},
		{"BAT", regexp.MustCompile(`BAT[-_/]?([0-9]+(?:\.[0-9]+)+)\.tar\.gz`)},
		{"Blas", regexp.MustCompile(`OpenBLAS-([0-9.]+)\.tar\.gz`)},
		{"Boost", regexp.MustCompile(`boost_([0-9_]+)\.tar\.gz`)},
		{"CLHEP", regexp.MustCompile(`(?i)clhep[-_/]?([0-9.]+)\.tar\.gz`)},
		{"COOL", regexp.MustCompile(`(?i)cool[-_/]?([0-9.]+)\.tar\.gz`)},
		{"CORAL", regexp.MustCompile(`(?i)coral[-_/]?([0-9.]+)\.tar\.gz`)},
		{"Coin3D", regexp.MustCompile(`(?i)coin3d[-_/]?([0-9.]+)\.tar\.gz`)},
		{"Davix", regexp.MustCompile(`davix-([0-9.]+)\.tar\.gz`)},
		{"Eigen", regexp.MustCompile(`eigen-([0-9.]+)\.tar\.gz`)},
		{"FastJet", regexp.MustCompile(`fastjet-([0-9.]+)\.tar\.gz`)},
		{"FastJetContrib", regexp.MustCompile(`f(?:astjet|j)contrib-([0-9.]+)\.tar\.gz`)},
		{"Gaudi", regexp.MustCompile(`(?i)gaudi[-_/]?([0-9.]+)\.tar\.gz`)},
		{"Geant4", regexp.MustCompile(`(?i)geant4[-_/]?([0-9.]+)\.tar\.gz`)},
		{"GeoModel", regexp.MustCompile(`(?i)geomodel[-_/]?([0-9.]+)\.tar\.gz`)},
		{"GoogleTest", regexp.MustCompile(`googletest-([0-9.]+)\.tar\.gz`)},
		{"HDF5", regexp.MustCompile(`(?:ATLAS_HDF5_VERSION\s*"([^"]+)"|HDF5[-_]?([0-9.]+)\.tar\.gz)`)},
		{"KLFitter", regexp.MustCompile(`KLFitter[-/]v?([0-9.]+)\.tar\.gz`)},
		{"Lhapdf", regexp.MustCompile(`LHAPDF-([0-9.]+)\.tar\.gz`)},
		{"LibXml2", regexp.MustCompile(`libxml2-([0-9.]+)\.tar\.gz`)},
		{"ROOT", regexp.MustCompile(`root_v([0-9.]+?)\.source\.tar\.gz`)},
		{"SQLite", regexp.MustCompile(`sqlite-autoconf-([0-9]+)\.tar\.gz`)},
		{"TBB", regexp.MustCompile(`oneTBB-([0-9.]+)\.tar\.gz`)},
		{"XRootD", regexp.MustCompile(`xrootd-([0-9.]+)\.tar\.gz`)},
		{"dcap", regexp.MustCompile(`dcap-([0-9.]+)[-.]`)},
		{"lwtnn", regexp.MustCompile(`lwtnn[/\\]v?([0-9.]+)\.tar\.gz`)},
		{"nlohmann_json", regexp.MustCompile(`json-([0-9.]+)\.tar\.gz`)},
		{"onnxruntime", regexp.MustCompile(`onnxruntime[-\w]*-([0-9.]+)\.(?:tgz|tar\.gz)`)},
	}

	// Generic fallback form, tried for names the specific
	// productions did not cover.
	genericSourceProduction = regexp.MustCompile(`sources/([A-Za-z0-9_\-]+)-([0-9][0-9A-Za-z._\-]*?)\.tar\.gz`)

	requirementPin = regexp.MustCompile(`^([A-Za-z0-9_\-]+)==([^\s#]+)`)
)

// ParseBuildFile extracts package declarations from the content of a
// single CMake list file. Pure function over its inputs.
func ParseBuildFile(filename, content string) []RawRecord {
	records := make([]RawRecord, 0, 10)
	seen := make(map[string]bool)

	remember := func(name, version string) {
		if len(name) == 0 || seen[name] {
			return
		}
		seen[name] = true
		records = append(records, RawRecord{
			Name:     name,
			Version:  version,
			Category: CategoryNative,
			Origin:   OriginBuildTree,
			Path:     filename,
		})
	}

	for _, production := range tarballProductions {
		groups := production.Pattern.FindStringSubmatch(content)
		if groups == nil {
			continue
		}
		remember(production.Package, firstGroup(groups))
	}

	for _, groups := range genericSourceProduction.FindAllStringSubmatch(content, -1) {
		remember(groups[1], groups[2])
	}

	for _, groups := range findPackageProduction.FindAllStringSubmatch(content, -1) {
		remember(groups[1], groups[2])
	}

	return records
}

func firstGroup(groups []string) string {
	for _, group := range groups[1:] {
		if len(group) > 0 {
			return group
		}
	}
	return ""
}

// ParseRequirementsIn extracts "name==version" pins from a pip
// requirements template file.
func ParseRequirementsIn(filename, content string) []RawRecord {
	records := make([]RawRecord, 0, 10)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		groups := requirementPin.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		records = append(records, RawRecord{
			Name:     groups[1],
			Version:  groups[2],
			Category: CategoryInterpreter,
			Origin:   OriginBuildTree,
			Path:     filename,
		})
	}
	return records
}

// ScanBuildTree walks a checkout read-only, applying the grammar to
// every CMake list file and pip requirements template it finds.
func ScanBuildTree(root string) ([]RawRecord, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, collectionFailure(OriginBuildTree, root, "build tree root is not a readable directory")
	}
	records := make([]RawRecord, 0, 100)
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			common.Debug("Skipping unreadable path %s: %v", path, err)
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		base := entry.Name()
		switch {
		case base == "CMakeLists.txt":
			content, err := os.ReadFile(path)
			if err != nil {
				common.Debug("Cannot read %s: %v", path, err)
				return nil
			}
			records = append(records, ParseBuildFile(path, string(content))...)
		case strings.HasPrefix(base, "requirements") && strings.HasSuffix(base, ".txt.in"):
			content, err := os.ReadFile(path)
			if err != nil {
				common.Debug("Cannot read %s: %v", path, err)
				return nil
			}
			records = append(records, ParseRequirementsIn(path, string(content))...)
		}
		return nil
	})
	if err != nil {
		return nil, collectionFailure(OriginBuildTree, root, "walking build tree: %v", err)
	}
	return records, nil
}
