// Package dag drives a pipeline graph of stations from a start station.
//
// A run has three passes over the stations reachable through supplier edges:
//
//  1. Validate rejects cyclic graphs and one-sided supplier edges, then
//     assigns every station its depth (the longest supplier-hop distance from
//     the start).
//  2. Plan engages the stations from the start outward. Stations are taken
//     shallowest first, so every manager is engaged before its suppliers and
//     the order is reproducible from run to run.
//  3. Run builds the engaged stations in reverse order, suppliers first,
//     sequentially or with a bounded number of workers.
//
// Graph walks use explicit stacks and never recurse, so graph size is not
// limited by goroutine stack depth.
package dag
