// Package requirements implements the algebra over requirement sets.
//
// A requirement set maps a tool name to the option variants a consumer needs
// from it. A nil (or empty) option list means the consumer is indifferent to
// the option and any single instance of the tool satisfies it:
//
//	{"csv_writer": ["bus", "car"], "env": nil}
//
// Sets flow upstream through the station graph. Each station combines the
// sets of its managers, instantiates the matching tools and pushes their own
// needs further up. The functions here are pure and never mutate their
// inputs.
package requirements
