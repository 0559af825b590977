package sources

import (
	"bytes"
	"io"
	"strings"

	"github.com/Tully9/CernAtlasSBOM/cloud"
	"github.com/Tully9/CernAtlasSBOM/common"
	"golang.org/x/net/html"
)

// FetchCatalog downloads and parses the version catalog page for one
// release/platform path. Unreachable endpoint, non-2xx status or a
// page without the expected release table all surface as a
// CollectionError; the caller treats that as "catalog unavailable",
// never as "no packages".
func FetchCatalog(client cloud.Client, path string) ([]RawRecord, error) {
	source := client.Endpoint() + path
	common.Debug("Fetching version catalog from %s", source)
	response := client.Get(client.NewRequest(path))
	if response.Err != nil {
		return nil, &CollectionError{Origin: OriginCatalogPage, Source: source, Err: response.Err}
	}
	if response.Status < 200 || response.Status >= 300 {
		return nil, collectionFailure(OriginCatalogPage, source, "unexpected status %d", response.Status)
	}
	records, err := ParseCatalogPage(bytes.NewReader(response.Body), source)
	if err != nil {
		return nil, err
	}
	common.Debug("Catalog page listed %d packages.", len(records))
	return records, nil
}

// ParseCatalogPage extracts package/version pairs from the catalog
// HTML. The page carries one table (id "release") whose rows pair a
// /pkg/<name>/ anchor with a /pkgver/<name>/<version>/ anchor.
func ParseCatalogPage(reader io.Reader, source string) ([]RawRecord, error) {
	document, err := html.Parse(reader)
	if err != nil {
		return nil, collectionFailure(OriginCatalogPage, source, "parsing catalog HTML: %v", err)
	}
	table := findReleaseTable(document)
	if table == nil {
		return nil, collectionFailure(OriginCatalogPage, source, "catalog page has no release table")
	}
	records := make([]RawRecord, 0, 200)
	walkRows(table, func(row *html.Node) {
		name, version := pairFromRow(row)
		if len(name) == 0 || len(version) == 0 {
			return
		}
		records = append(records, RawRecord{
			Name:     name,
			Version:  version,
			Category: CategoryNative,
			Origin:   OriginCatalogPage,
			Path:     source,
		})
	})
	return records, nil
}

func findReleaseTable(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.Data == "table" {
		for _, attribute := range node.Attr {
			if attribute.Key == "id" && attribute.Val == "release" {
				return node
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findReleaseTable(child); found != nil {
			return found
		}
	}
	return nil
}

func walkRows(node *html.Node, visit func(*html.Node)) {
	if node.Type == html.ElementNode && node.Data == "tr" {
		visit(node)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkRows(child, visit)
	}
}

// pairFromRow picks the package name and version from one table row.
// Anchor text wins; falls back to the href path segment when the
// text is empty.
func pairFromRow(row *html.Node) (string, string) {
	var name, version string
	var scan func(*html.Node)
	scan = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "a" {
			for _, attribute := range node.Attr {
				if attribute.Key != "href" {
					continue
				}
				href := attribute.Val
				switch {
				case strings.HasPrefix(href, "/pkg/"):
					name = anchorValue(node, pathSegment(href, 1))
				case strings.HasPrefix(href, "/pkgver/"):
					version = anchorValue(node, pathSegment(href, 2))
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			scan(child)
		}
	}
	scan(row)
	return name, version
}

func anchorValue(anchor *html.Node, fallback string) string {
	text := strings.TrimSpace(textContent(anchor))
	if len(text) > 0 {
		return text
	}
	return fallback
}

func textContent(node *html.Node) string {
	if node.Type == html.TextNode {
		return node.Data
	}
	var builder strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		builder.WriteString(textContent(child))
	}
	return builder.String()
}

func pathSegment(href string, index int) string {
	parts := strings.Split(strings.Trim(href, "/"), "/")
	if index < len(parts) {
		return parts[index]
	}
	return ""
}
