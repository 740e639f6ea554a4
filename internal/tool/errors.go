package tool

import "fmt"

// InvalidOptionError is returned when a tool is instantiated with an option
// rejected by its allow or deny list.
type InvalidOptionError struct {
	Tool   string
	Option string
	// Reason is "unsupported" for allow-list misses and "invalid" for
	// deny-list hits.
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("%s option %q at tool %q", e.Reason, e.Option, e.Tool)
}

// MissingResourceError is returned by Build when a required resource key is
// absent from the pool.
type MissingResourceError struct {
	Tool string
	Key  string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing requirement at tool %q: %s", e.Tool, e.Key)
}
