// Package facet defines the categorical filter dimensions of the catalog.
package facet

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/huematch/internal/domain"
)

// PersonalColor is the seasonal color group a product is recommended for.
type PersonalColor string

// Personal color constants. Values match the catalog's stored labels.
const (
	SpringWarm PersonalColor = "Spring Warm"
	SummerCool PersonalColor = "Summer Cool"
	AutumnWarm PersonalColor = "Autumn Warm"
	WinterCool PersonalColor = "Winter Cool"
)

// PersonalColors lists all personal colors in display order.
func PersonalColors() []PersonalColor {
	return []PersonalColor{SpringWarm, SummerCool, AutumnWarm, WinterCool}
}

// IsValid checks if the personal color is one of the supported values.
func (p PersonalColor) IsValid() bool {
	return p == SpringWarm || p == SummerCool || p == AutumnWarm || p == WinterCool
}

// Slug returns the URL-friendly form, e.g. "spring-warm".
func (p PersonalColor) Slug() string { return slugify(string(p)) }

// ParsePersonalColor accepts a display name or slug, case-insensitively.
func ParsePersonalColor(s string) (PersonalColor, error) {
	key := slugify(s)
	for _, p := range PersonalColors() {
		if p.Slug() == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: personal color %q", domain.ErrUnknownFacet, s)
}

// ProductType is the formulation facet. All disables the filter.
type ProductType string

// Product type constants.
const (
	All      ProductType = "All"
	Lipstick ProductType = "Lipstick"
	LipTint  ProductType = "Lip Tint"
	LipBalm  ProductType = "Lip Balm"
	LipGloss ProductType = "Lip Gloss"
	LipLiner ProductType = "Lip Liner"
)

// storeLabels maps product types to the labels stored in catalog rows.
var storeLabels = map[ProductType]string{
	Lipstick: "립스틱",
	LipTint:  "립틴트",
	LipBalm:  "립밤",
	LipGloss: "립글로스",
	LipLiner: "립라이너",
}

// ProductTypes lists all product types in display order, All first.
func ProductTypes() []ProductType {
	return []ProductType{All, Lipstick, LipTint, LipBalm, LipGloss, LipLiner}
}

// IsValid checks if the product type is one of the supported values.
func (t ProductType) IsValid() bool {
	if t == All {
		return true
	}
	_, ok := storeLabels[t]
	return ok
}

// IsAll reports whether the product type filter is disabled.
func (t ProductType) IsAll() bool { return t == All }

// StoreLabel returns the label used in catalog rows. Empty for All.
func (t ProductType) StoreLabel() string { return storeLabels[t] }

// Slug returns the URL-friendly form, e.g. "lip-tint".
func (t ProductType) Slug() string { return slugify(string(t)) }

// ParseProductType accepts a display name, slug, or stored label. Empty means All.
func ParseProductType(s string) (ProductType, error) {
	if strings.TrimSpace(s) == "" {
		return All, nil
	}
	key := slugify(s)
	for _, t := range ProductTypes() {
		if t.Slug() == key || (t.StoreLabel() != "" && t.StoreLabel() == strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: product type %q", domain.ErrUnknownFacet, s)
}

// Selection is the pair of facet values a query filters on.
type Selection struct {
	PersonalColor PersonalColor
	ProductType   ProductType
}

// NewSelection parses both facets from raw input.
func NewSelection(personalColor, productType string) (Selection, error) {
	pc, err := ParsePersonalColor(personalColor)
	if err != nil {
		return Selection{}, err
	}
	pt, err := ParseProductType(productType)
	if err != nil {
		return Selection{}, err
	}
	return Selection{PersonalColor: pc, ProductType: pt}, nil
}

// Matches reports whether a row's stored facet labels satisfy the selection.
func (s Selection) Matches(personalColor, productType string) bool {
	if personalColor != string(s.PersonalColor) {
		return false
	}
	return s.ProductType.IsAll() || productType == s.ProductType.StoreLabel()
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.Join(strings.Fields(s), "-")
}
