package sources

import "fmt"

// Origin tags which collector produced a record.
type Origin string

const (
	OriginManifest    Origin = "manifest"
	OriginBuildTree   Origin = "cmake-tree"
	OriginFrozenList  Origin = "frozen-list"
	OriginCatalogPage Origin = "catalog-page"
)

// KnownOrigins lists every origin in reporting order.
func KnownOrigins() []Origin {
	return []Origin{OriginManifest, OriginBuildTree, OriginFrozenList, OriginCatalogPage}
}

type Category string

const (
	CategoryNative      Category = "native-library"
	CategoryInterpreter Category = "interpreter-package"
)

// RawRecord is one package declaration as reported by a single
// source. Empty Version means "declared, version unknown".
type RawRecord struct {
	Name     string
	Version  string
	Category Category
	Origin   Origin
	Path     string
}

// CollectionError marks one source as unreadable, malformed or
// unreachable. The pipeline treats it as an empty contribution for
// that source, never as an abort.
type CollectionError struct {
	Origin Origin
	Source string
	Err    error
}

func (it *CollectionError) Error() string {
	return fmt.Sprintf("collection from %s (%s) failed: %v", it.Origin, it.Source, it.Err)
}

func (it *CollectionError) Unwrap() error {
	return it.Err
}

func collectionFailure(origin Origin, source, form string, details ...interface{}) *CollectionError {
	return &CollectionError{
		Origin: origin,
		Source: source,
		Err:    fmt.Errorf(form, details...),
	}
}
