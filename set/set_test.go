package set

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSet(t *testing.T) {
	got := Set([]string{"b", "a", "b", "c", "a"})
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueKeepsFirstOccurrenceOrder(t *testing.T) {
	got := Unique([]int{3, 1, 3, 2, 1})
	if diff := cmp.Diff([]int{3, 1, 2}, got); diff != "" {
		t.Errorf("Unique() mismatch (-want +got):\n%s", diff)
	}
}

func TestMember(t *testing.T) {
	values := []string{"manifest", "cmake-tree"}
	if !Member(values, "manifest") {
		t.Error("Member() missed a present value")
	}
	if Member(values, "frozen-list") {
		t.Error("Member() found an absent value")
	}
}

func TestKeysAndValues(t *testing.T) {
	source := map[string]int{"b": 2, "a": 1, "c": 3}
	if diff := cmp.Diff([]string{"a", "b", "c"}, Keys(source)); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, Values(source)); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}
