package requirements

import (
	"sort"
	"strings"
)

// Separator joins a tool name and an option into a unique resource key.
const Separator = ":"

// Set maps a tool name to the option variants required from it. A nil or
// empty slice means "no option distinction".
type Set map[string][]string

// Key returns the unique resource key for a tool instance.
func Key(name, option string) string {
	if option == "" {
		return name
	}
	return name + Separator + option
}

// SplitKey is the inverse of Key.
func SplitKey(key string) (name, option string) {
	name, option, _ = strings.Cut(key, Separator)
	return name, option
}

// Combine merges any number of sets. Names are unioned; for every name the
// options contributed by all inputs are unioned, de-duplicated and sorted.
// Inputs that carry the name without options contribute nothing to the
// option union, so they never erase options contributed by other inputs.
// Combine with no inputs returns an empty, non-nil set.
func Combine(sets ...Set) Set {
	combined := make(Set)
	for _, s := range sets {
		for name, options := range s {
			existing, seen := combined[name]
			if !seen {
				combined[name] = nil
			}
			if len(options) == 0 {
				continue
			}
			combined[name] = unionSorted(existing, options)
		}
	}
	return combined
}

// UniqueKeys expands a set into flat resource keys: one "name:option" key per
// option, or the bare name when the entry has no options. The result is
// sorted.
func UniqueKeys(s Set) []string {
	keys := make([]string, 0, len(s))
	for name, options := range s {
		if len(options) == 0 {
			keys = append(keys, name)
			continue
		}
		for _, option := range options {
			keys = append(keys, Key(name, option))
		}
	}
	sort.Strings(keys)
	return unique(keys)
}

// Equal reports whether two sets hold the same names and, per name, the same
// options regardless of order and duplicates.
func Equal(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for name, aOptions := range a {
		bOptions, ok := b[name]
		if !ok {
			return false
		}
		if !optionsEqual(aOptions, bOptions) {
			return false
		}
	}
	return true
}

// Names returns the sorted tool names of the set.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the set requires the named tool.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Clone returns a deep copy of the set. Cloning nil yields an empty set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for name, options := range s {
		if len(options) == 0 {
			out[name] = nil
			continue
		}
		out[name] = append([]string(nil), options...)
	}
	return out
}

// String renders the set deterministically, e.g. {csv:[bus car] env}.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range s.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		if options := s[name]; len(options) > 0 {
			sorted := unionSorted(nil, options)
			sb.WriteString(":[")
			sb.WriteString(strings.Join(sorted, " "))
			sb.WriteByte(']')
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func unionSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.Strings(out)
	return unique(out)
}

// unique drops adjacent duplicates from a sorted slice in place.
func unique(sorted []string) []string {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func optionsEqual(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}
	as := unionSorted(nil, a)
	bs := unionSorted(nil, b)
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
