package sources

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// BuildInfo carries what the externals build log reveals about one
// release build: toolchain identities, the platform name, the
// version-catalog release tag, and the package filtering list the
// build enabled.
type BuildInfo struct {
	CCompiler       string
	CXXCompiler     string
	Platform        string
	CatalogRelease  string
	CatalogPlatform string
	Packages        []string
}

var (
	cCompilerLine   = regexp.MustCompile(`The C compiler identification is (.+)`)
	cxxCompilerLine = regexp.MustCompile(`The CXX compiler identification is (.+)`)
	platformLine    = regexp.MustCompile(`Using platform name: (.+)`)
	releaseLine     = regexp.MustCompile(`LCG release "LCG_([^"]+)" for platform: (.+)`)
	packageLine     = regexp.MustCompile(`--\s+\+\s+External/(.+)`)
)

// ParseBuildLog extracts build information from an externals build
// log. A missing log is a normal condition (not every project line
// keeps one); the caller decides whether the absence matters.
func ParseBuildLog(filename string) (*BuildInfo, error) {
	handle, err := os.Open(filename)
	if err != nil {
		return nil, collectionFailure(OriginManifest, filename, "cannot open build log: %v", err)
	}
	defer handle.Close()

	result := new(BuildInfo)
	inPackageSection := false
	scanner := bufio.NewScanner(handle)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if groups := cCompilerLine.FindStringSubmatch(line); groups != nil && len(result.CCompiler) == 0 {
			result.CCompiler = groups[1]
		}
		if groups := cxxCompilerLine.FindStringSubmatch(line); groups != nil && len(result.CXXCompiler) == 0 {
			result.CXXCompiler = groups[1]
		}
		if groups := platformLine.FindStringSubmatch(line); groups != nil && len(result.Platform) == 0 {
			result.Platform = groups[1]
		}
		if groups := releaseLine.FindStringSubmatch(line); groups != nil && len(result.CatalogRelease) == 0 {
			result.CatalogRelease = groups[1]
			result.CatalogPlatform = strings.TrimSpace(groups[2])
		}

		if strings.Contains(line, "Package filtering rules read:") {
			inPackageSection = true
			continue
		}
		if inPackageSection {
			if groups := packageLine.FindStringSubmatch(line); groups != nil {
				result.Packages = append(result.Packages, strings.TrimSpace(groups[1]))
				continue
			}
			if strings.HasPrefix(line, "-- Configuring") || strings.HasPrefix(line, "--   -") {
				inPackageSection = false
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, collectionFailure(OriginManifest, filename, "reading build log: %v", err)
	}
	return result, nil
}
