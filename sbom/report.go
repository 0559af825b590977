package sbom

import (
	"fmt"
	"strings"

	"github.com/Tully9/CernAtlasSBOM/sources"
)

// GenerateMarkdown renders the human readable report. Output is
// byte-identical across runs over the same document except for the
// generation timestamp line.
func GenerateMarkdown(document *Document) string {
	md := make([]string, 0, 64)
	md = append(md, fmt.Sprintf("# %s SBOM Report", document.Project))
	md = append(md, "")
	md = append(md, fmt.Sprintf("**Generated on:** %s", document.GeneratedAt.Format("2006-01-02 15:04:05")))
	md = append(md, fmt.Sprintf("**Total dependencies:** %d", document.Total()))
	md = append(md, "")

	if info := document.BuildInfo; info != nil {
		md = append(md, "## Build Information")
		md = append(md, "")
		md = append(md, "| Component | Version/Specification |")
		md = append(md, "|-----------|-----------------------|")
		if len(info.CCompiler) > 0 {
			md = append(md, fmt.Sprintf("| C Compiler | %s |", info.CCompiler))
		}
		if len(info.CXXCompiler) > 0 {
			md = append(md, fmt.Sprintf("| CXX Compiler | %s |", info.CXXCompiler))
		}
		if len(info.Platform) > 0 {
			md = append(md, fmt.Sprintf("| Platform | %s |", info.Platform))
		}
		if len(info.CatalogRelease) > 0 {
			md = append(md, fmt.Sprintf("| LCG Release | %s |", info.CatalogRelease))
		}
		md = append(md, "")
	}

	md = append(md, "## Collection Summary")
	md = append(md, "")
	md = append(md, "| Source | Components |")
	md = append(md, "|--------|------------|")
	for _, origin := range sources.KnownOrigins() {
		md = append(md, fmt.Sprintf("| %s | %d |", origin, document.SourceCounts[string(origin)]))
	}
	md = append(md, "")

	for _, category := range []sources.Category{sources.CategoryNative, sources.CategoryInterpreter} {
		group := componentsIn(document, category)
		if len(group) == 0 {
			continue
		}
		md = append(md, fmt.Sprintf("## %s (%d)", CategoryTitle(category), len(group)))
		md = append(md, "")
		md = append(md, "| Package | Version | Sources |")
		md = append(md, "|---------|---------|---------|")
		for _, component := range group {
			md = append(md, fmt.Sprintf("| %s | %s | %s |",
				component.Name, component.DisplayVersion(), joinOrigins(component.Origins)))
		}
		md = append(md, "")
	}

	known, unknown := splitByVersion(document)
	md = append(md, "## Version Analysis")
	md = append(md, "")
	md = append(md, fmt.Sprintf("- **Dependencies with known versions:** %d", len(known)))
	md = append(md, fmt.Sprintf("- **Dependencies with unknown versions:** %d", len(unknown)))
	md = append(md, "")
	if len(unknown) > 0 {
		md = append(md, "### Dependencies with Unknown Versions")
		md = append(md, "")
		for _, component := range unknown {
			md = append(md, fmt.Sprintf("- **%s** (%s)", component.Name, component.Category))
		}
		md = append(md, "")
	}

	conflicted := conflictedComponents(document)
	if len(conflicted) > 0 {
		md = append(md, "### Resolution Notes")
		md = append(md, "")
		for _, component := range conflicted {
			md = append(md, fmt.Sprintf("- **%s**: %s", component.Name, component.Note))
		}
		md = append(md, "")
	}

	return strings.Join(md, "\n")
}

func componentsIn(document *Document, category sources.Category) []Component {
	result := make([]Component, 0, len(document.Components))
	for _, component := range document.Components {
		if component.Category == category {
			result = append(result, component)
		}
	}
	return result
}

func splitByVersion(document *Document) (known, unknown []Component) {
	for _, component := range document.Components {
		if len(component.Version) == 0 {
			unknown = append(unknown, component)
		} else {
			known = append(known, component)
		}
	}
	return known, unknown
}

func conflictedComponents(document *Document) []Component {
	result := make([]Component, 0, 4)
	for _, component := range document.Components {
		if len(component.Note) > 0 {
			result = append(result, component)
		}
	}
	return result
}
