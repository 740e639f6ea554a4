package dag

import (
	"cmp"
	"slices"

	"github.com/specialistvlad/workgrid/internal/station"
)

// frame is one level of an explicit depth-first stack.
type frame struct {
	st        *station.Station
	suppliers []*station.Station
	next      int
}

// edgeFunc is called for every supplier edge walked. onPath reports whether
// the supplier is an ancestor of the manager on the current walk.
type edgeFunc func(manager, supplier *station.Station, onPath bool) error

// walk performs a depth-first traversal along supplier edges from start,
// calling edge for every edge it meets, including edges into stations that
// were already visited. It returns the stations in pre- and post-order.
func walk(start *station.Station, edge edgeFunc) (pre, post []*station.Station, err error) {
	if start == nil {
		return nil, nil, nil
	}
	visited := map[*station.Station]bool{start: true}
	onPath := map[*station.Station]bool{start: true}
	stack := []frame{{st: start, suppliers: start.Suppliers()}}
	pre = append(pre, start)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.suppliers) {
			onPath[top.st] = false
			post = append(post, top.st)
			stack = stack[:len(stack)-1]
			continue
		}
		supplier := top.suppliers[top.next]
		top.next++

		if edge != nil {
			if err := edge(top.st, supplier, onPath[supplier]); err != nil {
				return pre, post, err
			}
		}
		if visited[supplier] {
			continue
		}
		visited[supplier] = true
		onPath[supplier] = true
		pre = append(pre, supplier)
		stack = append(stack, frame{st: supplier, suppliers: supplier.Suppliers()})
	}
	return pre, post, nil
}

// Reachable returns every station reachable from start through supplier
// edges, in depth-first discovery order, start first.
func Reachable(start *station.Station) []*station.Station {
	pre, _, _ := walk(start, nil)
	return pre
}

// FindCycle reports the first station found to close a cycle of supplier
// edges as a *CycleError.
func FindCycle(start *station.Station) error {
	_, _, err := walk(start, func(_, supplier *station.Station, onPath bool) error {
		if onPath {
			return &CycleError{Station: supplier.Name()}
		}
		return nil
	})
	return err
}

// FindBrokenLink checks that every supplier edge is mirrored by the supplier
// listing its manager. The first violation is reported as a
// *BrokenLinkError naming the supplier.
func FindBrokenLink(start *station.Station) error {
	_, _, err := walk(start, func(manager, supplier *station.Station, _ bool) error {
		if !supplier.HasManager(manager) {
			return &BrokenLinkError{Supplier: supplier.Name(), Manager: manager.Name()}
		}
		return nil
	})
	return err
}

// AssignDepths raises the depth of every station reachable from start to its
// longest supplier-hop distance from start. The graph must be acyclic.
// Depths are never lowered, so assigning twice is harmless.
func AssignDepths(start *station.Station) {
	_, post, _ := walk(start, nil)

	// Reverse post-order is a topological order: managers before suppliers.
	longest := make(map[*station.Station]int, len(post))
	for i := len(post) - 1; i >= 0; i-- {
		st := post[i]
		for _, supplier := range st.Suppliers() {
			if d := longest[st] + 1; d > longest[supplier] {
				longest[supplier] = d
			}
		}
	}
	for _, st := range post {
		st.RaiseDepth(longest[st])
	}
}

// Validate rejects cyclic graphs and broken links, in that order, and then
// assigns depths.
func Validate(start *station.Station) error {
	if err := FindCycle(start); err != nil {
		return err
	}
	if err := FindBrokenLink(start); err != nil {
		return err
	}
	AssignDepths(start)
	return nil
}

// OrderByDepth returns a copy of stations sorted by ascending depth. Stations
// of equal depth keep their relative order.
func OrderByDepth(stations []*station.Station) []*station.Station {
	out := slices.Clone(stations)
	slices.SortStableFunc(out, func(a, b *station.Station) int {
		return cmp.Compare(a.Depth(), b.Depth())
	})
	return out
}
