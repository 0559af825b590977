package sources

import (
	"bufio"
	"os"
	"strings"

	"github.com/Tully9/CernAtlasSBOM/common"
)

// ReadFrozenList parses a "pip freeze" style listing: one
// "name==version" per line, every entry carrying a concrete version.
func ReadFrozenList(filename string) ([]RawRecord, error) {
	handle, err := os.Open(filename)
	if err != nil {
		return nil, collectionFailure(OriginFrozenList, filename, "cannot open frozen list: %v", err)
	}
	defer handle.Close()

	records := make([]RawRecord, 0, 100)
	scanner := bufio.NewScanner(handle)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		name, version, found := strings.Cut(line, "==")
		name, version = strings.TrimSpace(name), strings.TrimSpace(version)
		if !found || len(name) == 0 || len(version) == 0 {
			common.Debug("Skipping non-frozen line %q in %s", line, filename)
			continue
		}
		records = append(records, RawRecord{
			Name:     name,
			Version:  version,
			Category: CategoryInterpreter,
			Origin:   OriginFrozenList,
			Path:     filename,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, collectionFailure(OriginFrozenList, filename, "reading frozen list: %v", err)
	}
	return records, nil
}
