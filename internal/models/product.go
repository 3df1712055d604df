package models

import "slices"

// Product categories
const (
	ProductCategoryControlUnit = "control-unit"
	ProductCategorySolarPanel  = "solar-panel"
	ProductCategoryAccessory   = "accessory"
)

// Product availability states
const (
	AvailabilityAvailable    = "available"
	AvailabilityPreOrder     = "pre-order"
	AvailabilityComingSoon   = "coming-soon"
	AvailabilityDiscontinued = "discontinued"
)

// ValidProductCategories defines allowed product categories
var ValidProductCategories = map[string]bool{
	ProductCategoryControlUnit: true,
	ProductCategorySolarPanel:  true,
	ProductCategoryAccessory:   true,
}

// ValidAvailabilities defines allowed availability states
var ValidAvailabilities = map[string]bool{
	AvailabilityAvailable:    true,
	AvailabilityPreOrder:     true,
	AvailabilityComingSoon:   true,
	AvailabilityDiscontinued: true,
}

// Feature is a single product feature card
type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

// Specification is a label/value pair. Value is always display text.
type Specification struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Image references a product image asset
type Image struct {
	Path    string `json:"path" yaml:"path"`
	Alt     string `json:"alt" yaml:"alt"`
	Caption string `json:"caption,omitempty" yaml:"caption"`
}

// Model3D references an external 3D asset file
type Model3D struct {
	Path        string `json:"path" yaml:"path"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Product represents a catalog entry stored in the products collection.
// ID is a slug chosen when the product is defined and shared with the seed dataset.
type Product struct {
	ID               string          `json:"id" yaml:"id"`
	Name             string          `json:"name" yaml:"name"`
	Tagline          string          `json:"tagline" yaml:"tagline"`
	ShortDescription string          `json:"shortDescription" yaml:"shortDescription"`
	Description      string          `json:"description" yaml:"description"`
	Category         string          `json:"category" yaml:"category"`
	Availability     string          `json:"availability" yaml:"availability"`
	Price            string          `json:"price" yaml:"price"`
	Highlights       []string        `json:"highlights" yaml:"highlights"`
	Features         []Feature       `json:"features" yaml:"features"`
	Specifications   []Specification `json:"specifications" yaml:"specifications"`
	Images           []Image         `json:"images" yaml:"images"`
	Models3D         []Model3D       `json:"models3D" yaml:"models3D"`
}

// ProductUpdate is a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name             *string          `json:"name,omitempty"`
	Tagline          *string          `json:"tagline,omitempty"`
	ShortDescription *string          `json:"shortDescription,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Category         *string          `json:"category,omitempty"`
	Availability     *string          `json:"availability,omitempty"`
	Price            *string          `json:"price,omitempty"`
	Highlights       *[]string        `json:"highlights,omitempty"`
	Features         *[]Feature       `json:"features,omitempty"`
	Specifications   *[]Specification `json:"specifications,omitempty"`
	Images           *[]Image         `json:"images,omitempty"`
	Models3D         *[]Model3D       `json:"models3D,omitempty"`
}

// IsEmpty reports whether the update carries no field
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Tagline == nil && u.ShortDescription == nil && u.Description == nil &&
		u.Category == nil && u.Availability == nil && u.Price == nil && u.Highlights == nil &&
		u.Features == nil && u.Specifications == nil && u.Images == nil && u.Models3D == nil
}

// Apply merges the non-nil fields of u into p
func (u *ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Tagline != nil {
		p.Tagline = *u.Tagline
	}
	if u.ShortDescription != nil {
		p.ShortDescription = *u.ShortDescription
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Availability != nil {
		p.Availability = *u.Availability
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Highlights != nil {
		p.Highlights = slices.Clone(*u.Highlights)
	}
	if u.Features != nil {
		p.Features = slices.Clone(*u.Features)
	}
	if u.Specifications != nil {
		p.Specifications = slices.Clone(*u.Specifications)
	}
	if u.Images != nil {
		p.Images = slices.Clone(*u.Images)
	}
	if u.Models3D != nil {
		p.Models3D = slices.Clone(*u.Models3D)
	}
}

// Clone returns a deep copy of the product
func (p *Product) Clone() *Product {
	c := *p
	c.Highlights = slices.Clone(p.Highlights)
	c.Features = slices.Clone(p.Features)
	c.Specifications = slices.Clone(p.Specifications)
	c.Images = slices.Clone(p.Images)
	c.Models3D = slices.Clone(p.Models3D)
	return &c
}

// Source tells where product data came from
type Source string

const (
	SourceStore Source = "store"
	SourceSeed  Source = "seed"
)

// ProductSet is the result of a product read. Source is SourceSeed when the
// store was unreachable or had nothing for the query.
type ProductSet struct {
	Products []*Product `json:"products"`
	Source   Source     `json:"source"`
}

// SeedReport summarizes a seed run
type SeedReport struct {
	Inserted []string `json:"inserted"`
	Skipped  []string `json:"skipped"`
}
