package ledger

import (
	"fmt"
	"time"

	"github.com/Tully9/CernAtlasSBOM/sbom"
)

// VersionRecord wraps one persisted SBOM snapshot. Records are
// append-only: once written under a sequence id they never change.
type VersionRecord struct {
	SequenceID int            `json:"sequenceId"`
	Project    string         `json:"project"`
	CreatedAt  time.Time      `json:"createdAt"`
	Diff       []Change       `json:"diffFromPrevious"`
	Document   *sbom.Document `json:"document"`
}

// Change is one entry of the symmetric difference between two
// documents. A version bump shows up as a removal plus an addition
// for the same (name, category).
type Change struct {
	Op       string `json:"op"` // "added" or "removed"
	Name     string `json:"name"`
	Category string `json:"category"`
	Version  string `json:"version"`
}

const (
	OpAdded   = "added"
	OpRemoved = "removed"
)

// Appended reports the outcome of one Append call. Unchanged means
// the new document matched the latest snapshot and no sequence id
// was spent.
type Appended struct {
	Record    *VersionRecord
	Unchanged bool
}

// PersistenceError means the ledger could not durably store a new
// record. The ledger is left at its previous state; no partial
// record is ever observable as a new maximum sequence id.
type PersistenceError struct {
	Project string
	Err     error
}

func (it *PersistenceError) Error() string {
	return fmt.Sprintf("ledger append for %s failed: %v", it.Project, it.Err)
}

func (it *PersistenceError) Unwrap() error {
	return it.Err
}
