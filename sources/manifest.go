package sources

import (
	"bufio"
	"os"
	"strings"

	"github.com/Tully9/CernAtlasSBOM/common"
)

// ReadManifest parses a flat dependency listing, one package per
// line. Accepted forms are "name=version", "name: version" (the
// layout the build scripts emit) and a bare "name", which yields an
// unknown version. Comments and blank lines are skipped.
func ReadManifest(filename string, category Category) ([]RawRecord, error) {
	handle, err := os.Open(filename)
	if err != nil {
		return nil, collectionFailure(OriginManifest, filename, "cannot open manifest: %v", err)
	}
	defer handle.Close()

	records := make([]RawRecord, 0, 50)
	scanner := bufio.NewScanner(handle)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		name, version := splitManifestLine(line)
		if len(name) == 0 {
			common.Debug("Skipping unusable manifest line %q in %s", line, filename)
			continue
		}
		records = append(records, RawRecord{
			Name:     name,
			Version:  version,
			Category: category,
			Origin:   OriginManifest,
			Path:     filename,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, collectionFailure(OriginManifest, filename, "reading manifest: %v", err)
	}
	return records, nil
}

func splitManifestLine(line string) (string, string) {
	separator := strings.IndexAny(line, "=:")
	if separator < 0 {
		return line, ""
	}
	name := strings.TrimSpace(line[:separator])
	version := strings.TrimSpace(strings.TrimLeft(line[separator:], "=: "))
	// "version trailing-junk" keeps only the leading token
	if space := strings.IndexAny(version, " \t"); space >= 0 {
		version = version[:space]
	}
	return name, version
}
