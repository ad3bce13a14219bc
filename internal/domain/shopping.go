package domain

// Shopping categories, in display order. The values are what clients store.
const (
	CategoryMustBuy = "必買" // must buy
	CategoryErrand  = "代購" // buying for someone else
	CategorySnacks  = "零食"
	CategoryBeauty  = "美妝"
)

// Categories lists the shopping categories in display order.
var Categories = []string{CategoryMustBuy, CategoryErrand, CategorySnacks, CategoryBeauty}

// ShoppingItem is one entry of the shopping list.
// ID is the creation time in Unix milliseconds and never changes.
type ShoppingItem struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"task" yaml:"task"`
	Category string `json:"category" yaml:"category"`
	Price    Amount `json:"price" yaml:"price"`
	Currency string `json:"currency" yaml:"currency"`
	Done     bool   `json:"done" yaml:"done"`
	Photo    string `json:"img,omitempty" yaml:"img,omitempty"`
}

// CategoryGroup is the non-empty set of items in one category.
type CategoryGroup struct {
	Category string         `json:"category"`
	Items    []ShoppingItem `json:"items"`
}

// GroupByCategory groups items by the fixed category order. Empty categories
// are omitted, and so are items whose category is not one of Categories.
func GroupByCategory(items []ShoppingItem) []CategoryGroup {
	var groups []CategoryGroup
	for _, cat := range Categories {
		var in []ShoppingItem
		for _, it := range items {
			if it.Category == cat {
				in = append(in, it)
			}
		}
		if len(in) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Items: in})
		}
	}
	return groups
}
