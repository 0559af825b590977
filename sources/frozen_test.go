package sources

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadFrozenList(t *testing.T) {
	content := `# frozen environment
numpy==1.26.4
scipy == 1.11.4
matplotlib
loose=1.0
pandas==
==2.0
`
	filename := writeSource(t, "frozen.txt", content)
	records, err := ReadFrozenList(filename)
	if err != nil {
		t.Fatalf("ReadFrozenList() error = %v", err)
	}
	expected := []RawRecord{
		{Name: "numpy", Version: "1.26.4", Category: CategoryInterpreter, Origin: OriginFrozenList, Path: filename},
		{Name: "scipy", Version: "1.11.4", Category: CategoryInterpreter, Origin: OriginFrozenList, Path: filename},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("ReadFrozenList() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFrozenListMissingFile(t *testing.T) {
	_, err := ReadFrozenList("no/such/frozen.txt")
	if err == nil {
		t.Fatal("ReadFrozenList() expected an error for a missing file")
	}
	if failure, ok := err.(*CollectionError); !ok || failure.Origin != OriginFrozenList {
		t.Errorf("ReadFrozenList() error = %v, want *CollectionError with origin %q", err, OriginFrozenList)
	}
}
