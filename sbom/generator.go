package sbom

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/sources"
	"github.com/google/uuid"
)

// GenerateCycloneDX renders the document as CycloneDX 1.4 JSON. A
// document with zero components still renders a valid manifest with
// an empty component array.
func GenerateCycloneDX(document *Document) ([]byte, error) {
	bom := CycloneDX{
		BomFormat:   "CycloneDX",
		SpecVersion: "1.4",
		SerialNum:   fmt.Sprintf("urn:uuid:%s", uuid.New()),
		Version:     1,
		Metadata: CycloneDXMetadata{
			Timestamp: document.GeneratedAt.Format(time.RFC3339),
			Tools: []CycloneDXTool{
				{
					Vendor:  "CERN ATLAS",
					Name:    common.Name,
					Version: common.Version,
				},
			},
			Properties: buildProperties(document.BuildInfo),
			Component: &struct {
				Type string `json:"type"`
				Name string `json:"name"`
			}{
				Type: "application",
				Name: document.Project,
			},
		},
		Components: make([]CycloneDXComponent, 0, len(document.Components)),
	}

	for _, component := range document.Components {
		entry := CycloneDXComponent{
			Type:    "library",
			Name:    component.Name,
			Version: component.DisplayVersion(),
		}
		entry.Properties = append(entry.Properties, CycloneDXProperty{
			Name:  "atlasbom:category",
			Value: string(component.Category),
		})
		entry.Properties = append(entry.Properties, CycloneDXProperty{
			Name:  "atlasbom:sources",
			Value: joinOrigins(component.Origins),
		})
		if len(component.Note) > 0 {
			entry.Properties = append(entry.Properties, CycloneDXProperty{
				Name:  "atlasbom:note",
				Value: component.Note,
			})
		}
		bom.Components = append(bom.Components, entry)
	}

	return json.MarshalIndent(bom, "", "  ")
}

func buildProperties(info *sources.BuildInfo) []CycloneDXProperty {
	if info == nil {
		return nil
	}
	properties := make([]CycloneDXProperty, 0, 4)
	push := func(name, value string) {
		if len(value) > 0 {
			properties = append(properties, CycloneDXProperty{Name: name, Value: value})
		}
	}
	push("atlasbom:cCompiler", info.CCompiler)
	push("atlasbom:cxxCompiler", info.CXXCompiler)
	push("atlasbom:platform", info.Platform)
	push("atlasbom:catalogRelease", info.CatalogRelease)
	return properties
}

func joinOrigins(origins []sources.Origin) string {
	names := make([]string, 0, len(origins))
	for _, origin := range origins {
		names = append(names, string(origin))
	}
	return strings.Join(names, ",")
}
