package station

import (
	"fmt"
	"strings"
)

// MissingRequirementsError reports requirement names that none of a
// station's suppliers register.
type MissingRequirementsError struct {
	Station   string
	Missing   []string
	Suppliers []string
}

func (e *MissingRequirementsError) Error() string {
	return fmt.Sprintf("station %q: missing requirements [%s] from suppliers [%s]",
		e.Station, strings.Join(e.Missing, ", "), strings.Join(e.Suppliers, ", "))
}

// DuplicateResourceError reports a resource key exported by more than one
// supplier of the same station.
type DuplicateResourceError struct {
	Station   string
	Key       string
	Suppliers []string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("station %q: resource %q exported by multiple suppliers [%s]",
		e.Station, e.Key, strings.Join(e.Suppliers, ", "))
}
