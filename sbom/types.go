package sbom

import (
	"time"

	"github.com/Tully9/CernAtlasSBOM/sources"
)

// UndefinedVersion is rendered for components that every source
// declared without a version and no fallback could pin.
const UndefinedVersion = "undefined"

// Component is one entry of the merged component list. (Name,
// Category) is unique within a document.
type Component struct {
	Name     string           `json:"name"`
	Version  string           `json:"version"`
	Category sources.Category `json:"category"`
	Origins  []sources.Origin `json:"origins"`
	Note     string           `json:"note,omitempty"`
}

func (it *Component) DisplayVersion() string {
	if len(it.Version) == 0 {
		return UndefinedVersion
	}
	return it.Version
}

// Document is one complete SBOM snapshot. Built fresh on every run;
// never mutated after assembly.
type Document struct {
	Project      string             `json:"project"`
	GeneratedAt  time.Time          `json:"generatedAt"`
	BuildInfo    *sources.BuildInfo `json:"buildInfo,omitempty"`
	Components   []Component        `json:"components"`
	SourceCounts map[string]int     `json:"sourceCounts"`
}

func (it *Document) Total() int {
	return len(it.Components)
}

// CycloneDX document shapes, JSON rendering only.

type CycloneDXProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CycloneDXComponent struct {
	Type       string              `json:"type"`
	Name       string              `json:"name"`
	Version    string              `json:"version"`
	Properties []CycloneDXProperty `json:"properties,omitempty"`
}

type CycloneDXTool struct {
	Vendor  string `json:"vendor"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type CycloneDXMetadata struct {
	Timestamp  string              `json:"timestamp"`
	Tools      []CycloneDXTool     `json:"tools"`
	Properties []CycloneDXProperty `json:"properties,omitempty"`
	Component  *struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"component,omitempty"`
}

type CycloneDX struct {
	BomFormat   string               `json:"bomFormat"`
	SpecVersion string               `json:"specVersion"`
	SerialNum   string               `json:"serialNumber"`
	Version     int                  `json:"version"`
	Metadata    CycloneDXMetadata    `json:"metadata"`
	Components  []CycloneDXComponent `json:"components"`
}

// CycloneDXMediaType is the media type for CycloneDX JSON.
const CycloneDXMediaType = "application/vnd.cyclonedx+json"
