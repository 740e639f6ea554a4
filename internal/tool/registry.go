package tool

import "fmt"

// Entry pairs a descriptor with the constructor that instantiates it. A nil
// New falls back to NewConstructor(Descriptor).
type Entry struct {
	Descriptor *Descriptor
	New        Constructor
}

// Registry is the ordered, read-only set of tools a station type can
// instantiate. Declaration order is preserved: stations instantiate and build
// tools in this order.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry builds a registry from entries in declaration order. It panics
// on a nil descriptor or a duplicate name, as both are programming errors in
// a station type definition.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Descriptor == nil {
			panic("tool registry entry has no descriptor")
		}
		if _, exists := r.index[e.Descriptor.Name]; exists {
			panic(fmt.Sprintf("tool with name '%s' already registered", e.Descriptor.Name))
		}
		if e.New == nil {
			e.New = NewConstructor(e.Descriptor)
		}
		r.index[e.Descriptor.Name] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r
}

// Len returns the number of registered tools. A nil registry is empty.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of the entries in declaration order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return append([]Entry(nil), r.entries...)
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Descriptor.Name
	}
	return names
}
