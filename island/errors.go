package island

import (
	"errors"
	"fmt"
)

// ErrLookupNotFound is matched by every LookupNotFoundError
var ErrLookupNotFound = errors.New("lookup not found")

// LookupNotFoundError reports a key missing from a reference table
type LookupNotFoundError struct {
	// Table names the data set that was searched (distance, location, item, recipe)
	Table string
	Key   string
}

func (e *LookupNotFoundError) Error() string {
	return fmt.Sprintf("%s lookup: %s not found", e.Table, e.Key)
}

func (e *LookupNotFoundError) Is(target error) bool {
	return target == ErrLookupNotFound
}
