package catalog

import (
	"embed"
	"sync"
)

//go:embed data/locations.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/locations.yaml"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog. It is parsed once and shared.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultCatalog, defaultErr = Load(f)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for call sites where the embedded data is known good.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
