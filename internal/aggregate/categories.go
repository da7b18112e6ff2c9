package aggregate

import "github.com/Veraticus/hamyon/internal/model"

// FindCategory looks up a category by id. A deleted category is simply not found.
func FindCategory(cats []model.Category, id string) (model.Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoriesByType returns the categories of type t in their stored order.
func CategoriesByType(cats []model.Category, t model.TransactionType) []model.Category {
	out := make([]model.Category, 0, len(cats))
	for _, c := range cats {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// SplitDefault separates seeded categories from user-created ones.
func SplitDefault(cats []model.Category) (defaults, custom []model.Category) {
	defaults = make([]model.Category, 0, len(cats))
	custom = make([]model.Category, 0)
	for _, c := range cats {
		if c.IsDefault {
			defaults = append(defaults, c)
		} else {
			custom = append(custom, c)
		}
	}
	return defaults, custom
}
