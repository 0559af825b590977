// Package resolve turns the combined raw record stream into one
// authoritative version per (name, category) pair. Missing versions
// are backfilled from a secondary dependency tree; disagreeing
// sources are settled by an explicit precedence order, never by
// collection order.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/normalize"
	"github.com/Tully9/CernAtlasSBOM/set"
	"github.com/Tully9/CernAtlasSBOM/sources"
)

// Resolution is the surviving record for one (name, category) pair.
// Origins lists every source that reported the package, each once.
// Note carries the conflict audit trail when sources disagreed.
type Resolution struct {
	Name     string
	Version  string
	Category sources.Category
	Origins  []sources.Origin
	Note     string
}

// Fallback answers version lookups for packages no primary source
// could version.
type Fallback interface {
	Lookup(name string) (string, bool)
}

type Resolver struct {
	Precedence []sources.Origin
	Fallback   Fallback
	Aliases    normalize.Aliases
}

// DefaultPrecedence mirrors the settings default; highest first.
func DefaultPrecedence() []sources.Origin {
	return []sources.Origin{
		sources.OriginCatalogPage,
		sources.OriginFrozenList,
		sources.OriginBuildTree,
		sources.OriginManifest,
	}
}

// PrecedenceFromNames maps configured origin names onto origin tags,
// ignoring unknown names so a typo cannot silently drop sources into
// undefined ordering.
func PrecedenceFromNames(names []string) []sources.Origin {
	result := make([]sources.Origin, 0, len(names))
	for _, name := range names {
		origin := sources.Origin(strings.TrimSpace(name))
		if set.Member(sources.KnownOrigins(), origin) {
			result = append(result, origin)
		} else {
			common.Debug("Ignoring unknown origin %q in precedence configuration.", name)
		}
	}
	if len(result) == 0 {
		return DefaultPrecedence()
	}
	return result
}

type groupKey struct {
	key      string
	category sources.Category
}

type group struct {
	display  string
	category sources.Category
	versions map[sources.Origin]string
	origins  []sources.Origin
}

// Resolve produces exactly one resolution per (name, category) pair
// present in the input, after folding manifest-only groups into their
// category-aware counterpart. A package is never dropped: when no
// source and no fallback knows a version, the resolution keeps an
// empty version and the report renders it as undefined.
func (it *Resolver) Resolve(records []sources.RawRecord) []Resolution {
	aliases := it.Aliases
	if aliases == nil {
		aliases = normalize.DefaultAliases()
	}
	precedence := it.Precedence
	if len(precedence) == 0 {
		precedence = DefaultPrecedence()
	}

	groups := make(map[groupKey]*group)
	order := make([]groupKey, 0, len(records))
	for _, raw := range records {
		record := normalize.Record(raw, aliases)
		key := groupKey{key: normalize.Key(record.Name), category: record.Category}
		bucket, ok := groups[key]
		if !ok {
			bucket = &group{
				display:  record.Name,
				category: record.Category,
				versions: make(map[sources.Origin]string),
			}
			groups[key] = bucket
			order = append(order, key)
		}
		if !set.Member(bucket.origins, record.Origin) {
			bucket.origins = append(bucket.origins, record.Origin)
		}
		if len(record.Version) > 0 {
			previous, reported := bucket.versions[record.Origin]
			if reported && previous != record.Version {
				common.Debug("Source %s reports %s both as %s and %s; keeping %s.",
					record.Origin, record.Name, previous, record.Version, previous)
				continue
			}
			bucket.versions[record.Origin] = record.Version
		}
	}

	order = foldManifestGroups(groups, order)

	sort.Slice(order, func(left, right int) bool {
		if order[left].category != order[right].category {
			return order[left].category < order[right].category
		}
		return order[left].key < order[right].key
	})

	resolutions := make([]Resolution, 0, len(order))
	for _, key := range order {
		bucket := groups[key]
		resolutions = append(resolutions, it.settle(bucket, precedence))
	}
	return resolutions
}

// foldManifestGroups reconciles one package split across the
// category boundary. The manifest reports every entry as a native
// library because it carries no category information; when the same
// key also arrives from a category-aware source, the manifest-only
// group folds into that group instead of standing as a second
// component.
func foldManifestGroups(groups map[groupKey]*group, order []groupKey) []groupKey {
	byKey := make(map[string][]groupKey, len(order))
	for _, key := range order {
		byKey[key.key] = append(byKey[key.key], key)
	}
	result := make([]groupKey, 0, len(order))
	for _, key := range order {
		bucket, ok := groups[key]
		if !ok {
			continue
		}
		if manifestOnly(bucket) {
			if target := categorySibling(groups, byKey[key.key], key); target != nil {
				absorb(target, bucket)
				delete(groups, key)
				common.Debug("Folding manifest entry %s into its %s record.", bucket.display, target.category)
				continue
			}
		}
		result = append(result, key)
	}
	return result
}

func manifestOnly(bucket *group) bool {
	return len(bucket.origins) == 1 && bucket.origins[0] == sources.OriginManifest
}

func categorySibling(groups map[groupKey]*group, siblings []groupKey, self groupKey) *group {
	for _, candidate := range siblings {
		if candidate == self {
			continue
		}
		if bucket, ok := groups[candidate]; ok && !manifestOnly(bucket) {
			return bucket
		}
	}
	return nil
}

func absorb(target, source *group) {
	for _, origin := range source.origins {
		if !set.Member(target.origins, origin) {
			target.origins = append(target.origins, origin)
		}
	}
	for origin, version := range source.versions {
		if known, ok := target.versions[origin]; ok {
			if known != version {
				common.Debug("Keeping %s version %s for origin %s over folded %s.",
					target.display, known, origin, version)
			}
			continue
		}
		target.versions[origin] = version
	}
}

func (it *Resolver) settle(bucket *group, precedence []sources.Origin) Resolution {
	resolution := Resolution{
		Name:     bucket.display,
		Category: bucket.category,
		Origins:  orderedOrigins(bucket.origins),
	}

	distinct := set.Set(set.Values(bucket.versions))
	switch len(distinct) {
	case 0:
		if it.Fallback != nil {
			if version, ok := it.Fallback.Lookup(bucket.display); ok {
				resolution.Version = normalize.Version(version)
				return resolution
			}
		}
		// Absence of a version is meaningful output, not a failure.
		return resolution
	case 1:
		resolution.Version = distinct[0]
		return resolution
	}

	for _, origin := range precedence {
		version, ok := bucket.versions[origin]
		if !ok {
			continue
		}
		resolution.Version = version
		resolution.Note = conflictNote(bucket, origin)
		common.Debug("Version conflict on %s (%s): %s", bucket.display, bucket.category, resolution.Note)
		return resolution
	}

	// Every reporting source sits outside the configured precedence
	// list; keep a deterministic pick so the run stays reproducible.
	fallbackOrigin := orderedOrigins(set.Keys(bucket.versions))[0]
	resolution.Version = bucket.versions[fallbackOrigin]
	resolution.Note = conflictNote(bucket, fallbackOrigin)
	return resolution
}

func conflictNote(bucket *group, winner sources.Origin) string {
	parts := make([]string, 0, len(bucket.versions))
	for _, origin := range orderedOrigins(set.Keys(bucket.versions)) {
		parts = append(parts, fmt.Sprintf("%s=%s", origin, bucket.versions[origin]))
	}
	return fmt.Sprintf("conflicting versions (%s); kept %s", strings.Join(parts, ", "), winner)
}

func orderedOrigins(origins []sources.Origin) []sources.Origin {
	result := make([]sources.Origin, 0, len(origins))
	for _, origin := range sources.KnownOrigins() {
		if set.Member(origins, origin) {
			result = append(result, origin)
		}
	}
	return result
}
