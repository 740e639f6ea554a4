package dag

import "fmt"

// CycleError reports the station that closes a cycle of supplier edges.
type CycleError struct {
	Station string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency found at station '%s'", e.Station)
}

// BrokenLinkError reports a supplier edge that is not mirrored by the
// supplier listing the manager.
type BrokenLinkError struct {
	Supplier string
	Manager  string
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("broken dependency found at station '%s': it does not list '%s' as a manager", e.Supplier, e.Manager)
}
