// Package seed holds the static product catalog used to populate the
// products collection and to answer product reads when the store cannot.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/solar-catalog-api/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var embeddedProducts []byte

var defaultDataset = mustParse(embeddedProducts)

type file struct {
	Products []*models.Product `yaml:"products"`
}

// Dataset is an immutable set of seed products ordered by name
type Dataset struct {
	products []*models.Product
	byID     map[string]*models.Product
}

// Default returns the embedded dataset
func Default() *Dataset {
	return defaultDataset
}

// Load reads a dataset from a YAML file
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a YAML dataset. Ids must be present and unique.
func Parse(data []byte) (*Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Products)
}

// New builds a dataset from products, copying them
func New(products []*models.Product) (*Dataset, error) {
	ds := &Dataset{byID: make(map[string]*models.Product, len(products))}
	for i, p := range products {
		if p == nil || p.ID == "" {
			return nil, fmt.Errorf("product %d has no id", i)
		}
		if _, dup := ds.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c := p.Clone()
		ds.byID[c.ID] = c
		ds.products = append(ds.products, c)
	}
	sort.SliceStable(ds.products, func(i, j int) bool {
		if ds.products[i].Name != ds.products[j].Name {
			return ds.products[i].Name < ds.products[j].Name
		}
		return ds.products[i].ID < ds.products[j].ID
	})
	return ds, nil
}

// Products returns copies of all seed products ordered by name
func (d *Dataset) Products() []*models.Product {
	return d.Filter(func(*models.Product) bool { return true })
}

// Filter returns copies of the seed products matching keep, ordered by name
func (d *Dataset) Filter(keep func(*models.Product) bool) []*models.Product {
	out := make([]*models.Product, 0, len(d.products))
	for _, p := range d.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Get returns a copy of the seed product with id, or nil
func (d *Dataset) Get(id string) *models.Product {
	if p, ok := d.byID[id]; ok {
		return p.Clone()
	}
	return nil
}

// Len returns the number of seed products
func (d *Dataset) Len() int {
	return len(d.products)
}

func mustParse(data []byte) *Dataset {
	ds, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded seed products are invalid: %v", err))
	}
	return ds
}
