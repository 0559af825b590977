// Package journal keeps an append-only audit trail of generation
// runs. Journaling is best effort: a failure to journal never fails
// the run it describes.
package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Tully9/CernAtlasSBOM/pathlib"
)

var (
	lock        sync.Mutex
	journalname string
)

// Configure points the journal at its backing file; usually
// <ledger root>/journal.log.
func Configure(directory string) {
	lock.Lock()
	defer lock.Unlock()
	if len(directory) == 0 {
		journalname = ""
		return
	}
	journalname = filepath.Join(directory, "journal.log")
}

type Event struct {
	When    int64
	Event   string
	Detail  string
	Comment string
}

var flattener = regexp.MustCompile(`\s+`)

// Unify collapses any whitespace runs into single spaces, so that
// multiline details stay on one journal line.
func Unify(value string) string {
	return strings.TrimSpace(flattener.ReplaceAllString(value, " "))
}

// Post appends one event to the journal.
func Post(event, detail, comment string) error {
	lock.Lock()
	defer lock.Unlock()
	if len(journalname) == 0 {
		return fmt.Errorf("journal is not configured")
	}
	_, err := pathlib.EnsureDirectory(filepath.Dir(journalname))
	if err != nil {
		return err
	}
	handle, err := os.OpenFile(journalname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer handle.Close()
	when := time.Now().Unix()
	_, err = fmt.Fprintf(handle, "%d\t%s\t%s\t%s\n", when, Unify(event), Unify(detail), Unify(comment))
	if err != nil {
		return err
	}
	return handle.Sync()
}

// Events reads the full journal back, oldest first.
func Events() ([]Event, error) {
	lock.Lock()
	defer lock.Unlock()
	if len(journalname) == 0 {
		return nil, fmt.Errorf("journal is not configured")
	}
	handle, err := os.Open(journalname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer handle.Close()
	result := make([]Event, 0, 100)
	scanner := bufio.NewScanner(handle)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), "\t", 4)
		if len(parts) != 4 {
			continue
		}
		when, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			continue
		}
		result = append(result, Event{
			When:    when,
			Event:   parts[1],
			Detail:  parts[2],
			Comment: parts[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
