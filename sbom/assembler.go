package sbom

import (
	"sort"
	"strings"
	"time"

	"github.com/Tully9/CernAtlasSBOM/resolve"
	"github.com/Tully9/CernAtlasSBOM/sources"
)

// Assemble merges gap-resolved records into one canonical document.
// Components group by category (native libraries first), sorted
// case-insensitively within a group. SourceCounts tallies each
// component's contributing origins once per component, and always
// carries an entry for every known origin so an unavailable source
// shows up as an explicit zero.
func Assemble(project string, resolutions []resolve.Resolution, info *sources.BuildInfo) *Document {
	components := make([]Component, 0, len(resolutions))
	counts := make(map[string]int, 4)
	for _, origin := range sources.KnownOrigins() {
		counts[string(origin)] = 0
	}

	seen := make(map[string]bool, len(resolutions))
	for _, resolution := range resolutions {
		key := strings.ToLower(resolution.Name) + "\x00" + string(resolution.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		components = append(components, Component{
			Name:     resolution.Name,
			Version:  resolution.Version,
			Category: resolution.Category,
			Origins:  resolution.Origins,
			Note:     resolution.Note,
		})
		for _, origin := range resolution.Origins {
			counts[string(origin)] += 1
		}
	}

	sort.SliceStable(components, func(left, right int) bool {
		if components[left].Category != components[right].Category {
			return categoryRank(components[left].Category) < categoryRank(components[right].Category)
		}
		return strings.ToLower(components[left].Name) < strings.ToLower(components[right].Name)
	})

	return &Document{
		Project:      project,
		GeneratedAt:  time.Now().UTC(),
		BuildInfo:    info,
		Components:   components,
		SourceCounts: counts,
	}
}

func categoryRank(category sources.Category) int {
	switch category {
	case sources.CategoryNative:
		return 0
	case sources.CategoryInterpreter:
		return 1
	default:
		return 2
	}
}

// CategoryTitle is the report heading for one component category.
func CategoryTitle(category sources.Category) string {
	switch category {
	case sources.CategoryNative:
		return "Native Libraries"
	case sources.CategoryInterpreter:
		return "Interpreter Packages"
	default:
		return string(category)
	}
}
