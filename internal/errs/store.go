package errs

import "errors"

var (
	OutsideRoot   = errors.New("notes: path escapes notes root")
	EntryNotFound = errors.New("journal: entry not found")
	NoJournal     = errors.New("journal: disabled")
)
