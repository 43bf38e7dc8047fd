// Package catalog provides the static country, state and city data behind the
// registration form's cascading selects, plus a small net/http handler that
// returns the option lists as JSON.
//
// The default catalog is embedded from data/locations.yaml. Lookups for an
// unset or unknown country or state yield empty sequences rather than errors.
package catalog
