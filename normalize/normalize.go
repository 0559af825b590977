// Package normalize canonicalizes package names and versions so that
// records from different sources become comparable. All functions are
// pure; the same input always normalizes the same way.
package normalize

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/Tully9/CernAtlasSBOM/sources"
)

var (
	innerWhitespace = regexp.MustCompile(`\s+`)
	underscoreOnly  = regexp.MustCompile(`^[0-9]+(_[0-9]+)+$`)
	platformSuffix  = regexp.MustCompile(`(?i)[-_](?:x86_64|aarch64|i686|el[0-9]+|cc[0-9]+|gcc[0-9]+|clang[0-9]+|linux|opt|dbg)$`)
)

// Name trims and collapses whitespace but keeps the reported casing
// for display.
func Name(name string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(name), " ")
}

// Key folds a name into the comparison key space: lower case, with
// dash/underscore treated as one separator. "nlohmann_json" and
// "Nlohmann-JSON" share a key.
func Key(name string) string {
	folded := strings.ToLower(Name(name))
	folded = strings.ReplaceAll(folded, "_", "-")
	return folded
}

// Version scrubs packaging decorations off a reported version while
// keeping the semantic core. Underscore-separated Boost versions
// become dotted, a leading "v" is dropped, semver build metadata and
// recognized platform/build suffixes are stripped. A version that is
// already clean passes through unchanged.
func Version(raw string) string {
	version := strings.TrimSpace(raw)
	if len(version) == 0 {
		return ""
	}
	if underscoreOnly.MatchString(version) {
		version = strings.ReplaceAll(version, "_", ".")
	}
	if len(version) > 1 && (version[0] == 'v' || version[0] == 'V') && version[1] >= '0' && version[1] <= '9' {
		version = version[1:]
	}
	if parsed, err := semver.NewVersion(version); err == nil {
		if len(parsed.Metadata()) > 0 {
			scrubbed, err := parsed.SetMetadata("")
			if err == nil {
				return scrubbed.String()
			}
		}
		return version
	}
	for {
		stripped := platformSuffix.ReplaceAllString(version, "")
		if stripped == version {
			break
		}
		version = stripped
	}
	return version
}

// Aliases maps reported names (by comparison key) to a canonical
// display name. Sources disagree on a handful of names; the catalog
// page calls nlohmann's JSON library "jsonmcpp" while the build logs
// say "nlohmann_json".
type Aliases map[string]string

func DefaultAliases() Aliases {
	return Aliases{
		"jsonmcpp":      "nlohmann_json",
		"nlohmann-json": "nlohmann_json",
		"openblas":      "Blas",
		"root":          "ROOT",
	}
}

// Merged layers overrides on top of the defaults. Override keys are
// folded through Key so settings files may use any casing.
func (it Aliases) Merged(overrides map[string]string) Aliases {
	result := make(Aliases, len(it)+len(overrides))
	for key, canonical := range it {
		result[key] = canonical
	}
	for key, canonical := range overrides {
		result[Key(key)] = canonical
	}
	return result
}

func (it Aliases) Canonical(name string) string {
	if canonical, ok := it[Key(name)]; ok {
		return canonical
	}
	return Name(name)
}

// Record normalizes one raw record: alias-resolved display name,
// scrubbed version. Category and origin pass through untouched.
func Record(record sources.RawRecord, aliases Aliases) sources.RawRecord {
	record.Name = aliases.Canonical(record.Name)
	record.Version = Version(record.Version)
	return record
}
