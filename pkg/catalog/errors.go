package catalog

import "fmt"

// LoadError reports a catalog that could not be fetched or parsed.
type LoadError struct {
	// Locator is the URL or path that was loaded.
	Locator string
	// Override is true when the locator came from the caller rather than the
	// configured default.
	Override bool
	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load site catalog from %q: %v", e.Locator, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
