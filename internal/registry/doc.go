// Package registry provides the central "glue" for the module system.
//
// The Registry maps the tool kinds named in pipeline files (e.g.
// "csv_writer") to the Go factories that implement them. Modules register
// their kinds at startup; the registry is then checked against the loaded
// pipeline so that every declared tool has an implementation before any
// station is built.
package registry
