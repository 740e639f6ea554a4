// Package station implements the nodes of the pipeline graph.
//
// A Station owns an ordered registry of tools it is able to instantiate and
// is wired to its managers (downstream consumers) and suppliers (upstream
// producers) with Connect. A run takes every station through three states:
//
//	Connected -> Engaged -> Built
//
// Engage combines the requirement sets of the managers, instantiates exactly
// the tool variants that match the station's registry and computes the
// station's own requirement set, which its suppliers will see in turn. Build
// imports the resources exported by the suppliers and builds every
// instantiated tool against them.
//
// Stations perform no locking. The graph driver in package dag guarantees
// that a station is engaged or built by one goroutine at a time and only
// after the stations it depends on.
package station
