// Package sbom assembles resolved dependency records into a Software
// Bill of Materials: a CycloneDX JSON manifest plus a human readable
// Markdown report.
package sbom
