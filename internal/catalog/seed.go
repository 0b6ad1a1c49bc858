package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var seedYAML []byte

// Parse decodes a YAML catalog document and builds a Catalog from it
func Parse(data []byte) (*Catalog, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(seed)
}

// Load builds the catalog compiled into the binary
func Load() (*Catalog, error) {
	return Parse(seedYAML)
}

// MustLoad is Load for program start; a broken embedded catalog is a build defect
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}
