// Package taxonomy holds the static category tree used for per-category ad
// fields and for grounding the LLM prompts. It is read-only at runtime.
package taxonomy

import (
	"fmt"
	"strings"
)

// Field describes one dynamic form field for a category or subcategory.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Subcategory refines a category with its own extra fields.
type Subcategory struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields,omitempty"`
}

// Category is one top-level node of the tree.
type Category struct {
	Name          string        `json:"name"`
	Fields        []Field       `json:"fields,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

var categories = []Category{
	{
		Name:   "Vehicles",
		Fields: []Field{{Name: "make", Type: "string"}, {Name: "model", Type: "string"}, {Name: "year", Type: "number"}},
		Subcategories: []Subcategory{
			{Name: "Cars", Fields: []Field{{Name: "mileage_km", Type: "number"}, {Name: "fuel", Type: "string"}}},
			{Name: "Motorcycles", Fields: []Field{{Name: "engine_cc", Type: "number"}}},
			{Name: "Bicycles"},
			{Name: "Boats"},
		},
	},
	{
		Name:   "Real Estate",
		Fields: []Field{{Name: "size_sqm", Type: "number"}, {Name: "rooms", Type: "number"}},
		Subcategories: []Subcategory{
			{Name: "Apartments"},
			{Name: "Houses"},
			{Name: "Land"},
			{Name: "Commercial"},
		},
	},
	{
		Name:   "Electronics",
		Fields: []Field{{Name: "brand", Type: "string"}, {Name: "condition", Type: "string"}},
		Subcategories: []Subcategory{
			{Name: "Phones"},
			{Name: "Computers"},
			{Name: "TV & Audio"},
			{Name: "Gaming"},
		},
	},
	{
		Name:   "Home & Garden",
		Fields: []Field{{Name: "condition", Type: "string"}},
		Subcategories: []Subcategory{
			{Name: "Furniture"},
			{Name: "Appliances"},
			{Name: "Tools"},
		},
	},
	{
		Name: "Jobs",
		Subcategories: []Subcategory{
			{Name: "Full-time"},
			{Name: "Part-time"},
			{Name: "Freelance"},
		},
	},
	{
		Name: "Services",
		Subcategories: []Subcategory{
			{Name: "Lessons"},
			{Name: "Repairs"},
			{Name: "Events"},
		},
	},
	{
		Name:   "Fashion",
		Fields: []Field{{Name: "size", Type: "string"}, {Name: "condition", Type: "string"}},
		Subcategories: []Subcategory{
			{Name: "Clothing"},
			{Name: "Shoes"},
			{Name: "Accessories"},
		},
	},
	{
		Name: "Pets",
		Subcategories: []Subcategory{
			{Name: "Dogs"},
			{Name: "Cats"},
			{Name: "Supplies"},
		},
	},
}

// All returns the full category tree.
func All() []Category {
	return categories
}

// Find returns the category with the given name, nil when absent.
func Find(name string) *Category {
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i]
		}
	}
	return nil
}

// FieldsFor returns the base fields of a category merged with the fields of
// the named subcategory. Unknown names yield an empty slice.
func FieldsFor(category, subcategory string) []Field {
	cat := Find(category)
	if cat == nil {
		return nil
	}
	fields := append([]Field{}, cat.Fields...)
	for _, sub := range cat.Subcategories {
		if strings.EqualFold(sub.Name, subcategory) {
			fields = append(fields, sub.Fields...)
			break
		}
	}
	return fields
}

// PromptSample renders the first maxCats categories with up to maxSubs
// subcategories each as a human-readable block for system prompts.
func PromptSample(maxCats, maxSubs int) string {
	var b strings.Builder
	for i, cat := range categories {
		if i >= maxCats {
			break
		}
		subs := cat.Subcategories
		if len(subs) > maxSubs {
			subs = subs[:maxSubs]
		}
		names := make([]string, len(subs))
		for j, s := range subs {
			names[j] = s.Name
		}
		fmt.Fprintf(&b, "- %s (%s)\n", cat.Name, strings.Join(names, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
