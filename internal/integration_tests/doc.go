// Package integration_tests drives whole pipelines through the application,
// from pipeline files on disk to built tools. The scenarios live in
// sub-packages grouped by behavior.
package integration_tests
