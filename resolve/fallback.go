package resolve

import (
	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/normalize"
	"github.com/Tully9/CernAtlasSBOM/sources"
)

// TreeFallback serves version lookups from a secondary dependency
// tree scan, typically the externals checkout whose build files pin
// versions the release manifest leaves out.
type TreeFallback struct {
	versions map[string]string
}

// NewTreeFallback indexes scanned records by comparison key. The
// first concrete version per package wins; later duplicates are
// reported at debug level and ignored.
func NewTreeFallback(records []sources.RawRecord, aliases normalize.Aliases) *TreeFallback {
	if aliases == nil {
		aliases = normalize.DefaultAliases()
	}
	versions := make(map[string]string, len(records))
	for _, raw := range records {
		record := normalize.Record(raw, aliases)
		if len(record.Version) == 0 {
			continue
		}
		key := normalize.Key(record.Name)
		if known, ok := versions[key]; ok {
			if known != record.Version {
				common.Debug("Fallback tree pins %s both as %s and %s; keeping %s.",
					record.Name, known, record.Version, known)
			}
			continue
		}
		versions[key] = record.Version
	}
	return &TreeFallback{versions: versions}
}

func (it *TreeFallback) Size() int {
	return len(it.versions)
}

func (it *TreeFallback) Lookup(name string) (string, bool) {
	version, ok := it.versions[normalize.Key(name)]
	return version, ok
}
