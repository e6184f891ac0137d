package catalog

import (
	"strings"

	"github.com/kailas-cloud/huematch/internal/domain/facet"
)

// Key layout:
//
//	<prefix>product:<id>                     hash, one per catalog row
//	<prefix>idx:<personal-color>             set of ids
//	<prefix>idx:<personal-color>:<type>      set of ids
func productKey(prefix, id string) string {
	return prefix + "product:" + id
}

func personalColorIndexKey(prefix, personalColor string) string {
	return prefix + "idx:" + slug(personalColor)
}

func productTypeIndexKey(prefix, personalColor, productType string) string {
	return personalColorIndexKey(prefix, personalColor) + ":" + slug(productType)
}

// indexKey returns the set holding the ids for a selection.
func indexKey(prefix string, sel facet.Selection) string {
	if sel.ProductType.IsAll() {
		return personalColorIndexKey(prefix, string(sel.PersonalColor))
	}
	return productTypeIndexKey(prefix, string(sel.PersonalColor), sel.ProductType.StoreLabel())
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
