package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/framequote/internal/catalog"
)

// PostUnitPrice is the composite price of one structural post: the ply rate
// over the post length plus every add-on whose own row is enabled.
func PostUnitPrice(items []catalog.LineItem, height float64, frame catalog.FrameConfig) decimal.Decimal {
	price := catalog.PostBaseRate(frame.PostSize).Mul(catalog.PostLength(height))
	for _, key := range catalog.AddOns {
		if addOnEnabled(items, key) {
			price = price.Add(catalog.PostAddOnPrice(key, frame.PostDiameter))
		}
	}
	return price
}

func addOnEnabled(items []catalog.LineItem, key catalog.PostSubKey) bool {
	for _, it := range items {
		if it.PostSubKey == key {
			return it.Enabled
		}
	}
	return false
}

// applyPostPrice refreshes the add-on rows at the configured diameter and the
// composite base of the post row. The post unit price follows unless the user
// pinned it with a manual price.
func applyPostPrice(items []catalog.LineItem, in Inputs) {
	for i := range items {
		if key := items[i].PostSubKey; key != "" {
			p := catalog.PostAddOnPrice(key, in.Frame.PostDiameter)
			items[i].BaseUnitPrice = p
			items[i].UnitPrice = p
			items[i].ManualPriceOverride = false
		}
	}
	i := catalog.Find(items, catalog.IDPosts)
	if i < 0 {
		return
	}
	price := PostUnitPrice(items, in.Dimensions.Height, in.Frame)
	items[i].BaseUnitPrice = price
	if !items[i].ManualPriceOverride {
		items[i].UnitPrice = price
	}
}
