package catalog

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingReader is returned when Load receives a nil reader.
var ErrMissingReader = errors.New("catalog: missing reader")

// Option is a single select entry.
type Option struct {
	Value string `json:"value" yaml:"value" msgpack:"value"`
	Label string `json:"label" yaml:"label" msgpack:"label"`
}

// Catalog maps countries to ordered states and (country, state) pairs to
// ordered cities. A Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	countries []string
	states    map[string][]string
	cities    map[cityKey][]string
}

type cityKey struct {
	country string
	state   string
}

type document struct {
	Countries []countryEntry `yaml:"countries"`
}

type countryEntry struct {
	Name   string       `yaml:"name"`
	States []stateEntry `yaml:"states"`
}

type stateEntry struct {
	Name   string   `yaml:"name"`
	Cities []string `yaml:"cities"`
}

// Builder assembles a catalog in declaration order.
type Builder struct {
	catalog *Catalog
	err     error
}

// NewBuilder starts an empty catalog.
func NewBuilder() *Builder {
	return &Builder{catalog: &Catalog{
		states: make(map[string][]string),
		cities: make(map[cityKey][]string),
	}}
}

// Add registers a country/state pair with its cities. Countries and states
// keep first-seen order; duplicate cities are ignored.
func (b *Builder) Add(country, state string, cities ...string) *Builder {
	if b.err != nil {
		return b
	}
	country = strings.TrimSpace(country)
	state = strings.TrimSpace(state)
	if country == "" {
		b.err = errors.New("catalog: country name is empty")
		return b
	}

	c := b.catalog
	if _, ok := c.states[country]; !ok {
		c.countries = append(c.countries, country)
		c.states[country] = nil
	}
	if state == "" {
		return b
	}
	key := cityKey{country: country, state: state}
	if _, ok := c.cities[key]; !ok {
		c.states[country] = append(c.states[country], state)
		c.cities[key] = nil
	}
	for _, city := range cities {
		city = strings.TrimSpace(city)
		if city == "" || contains(c.cities[key], city) {
			continue
		}
		c.cities[key] = append(c.cities[key], city)
	}
	return b
}

// Build returns the assembled catalog.
func (b *Builder) Build() (*Catalog, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.catalog, nil
}

// Load parses a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, ErrMissingReader
	}
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog: document is empty")
		}
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	b := NewBuilder()
	for i, country := range doc.Countries {
		if strings.TrimSpace(country.Name) == "" {
			return nil, fmt.Errorf("catalog: country at index %d has no name", i)
		}
		b.Add(country.Name, "")
		for j, state := range country.States {
			if strings.TrimSpace(state.Name) == "" {
				return nil, fmt.Errorf("catalog: %s: state at index %d has no name", country.Name, j)
			}
			b.Add(country.Name, state.Name, state.Cities...)
		}
	}
	return b.Build()
}

// Countries yields every country in catalog order.
func (c *Catalog) Countries() iter.Seq[string] {
	if c == nil {
		return empty
	}
	return values(c.countries)
}

// States yields the states of country; the sequence is empty when the country
// is unset or unknown.
func (c *Catalog) States(country string) iter.Seq[string] {
	if c == nil || country == "" {
		return empty
	}
	return values(c.states[country])
}

// Cities yields the cities of (country, state); the sequence is empty when
// either key is unset or unknown.
func (c *Catalog) Cities(country, state string) iter.Seq[string] {
	if c == nil || country == "" || state == "" {
		return empty
	}
	return values(c.cities[cityKey{country: country, state: state}])
}

// HasCountry reports whether the catalog lists country.
func (c *Catalog) HasCountry(country string) bool {
	if c == nil {
		return false
	}
	_, ok := c.states[country]
	return ok
}

// HasState reports whether state belongs to country.
func (c *Catalog) HasState(country, state string) bool {
	if c == nil {
		return false
	}
	_, ok := c.cities[cityKey{country: country, state: state}]
	return ok
}

// HasCity reports whether city belongs to (country, state).
func (c *Catalog) HasCity(country, state, city string) bool {
	if c == nil {
		return false
	}
	return contains(c.cities[cityKey{country: country, state: state}], city)
}

// Collect drains a sequence into a slice; an empty sequence yields nil.
func Collect(seq iter.Seq[string]) []string {
	var out []string
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// AsOptions converts names into select options using the name as both value
// and label.
func AsOptions(seq iter.Seq[string]) []Option {
	var out []Option
	for v := range seq {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

func values(items []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func empty(func(string) bool) {}

func contains(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
