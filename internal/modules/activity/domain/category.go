package domain

import "fmt"

// Category is the fixed activity taxonomy. Keys are stable storage
// identifiers; display text comes from the language tables.
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryHomework Category = "homework"
	CategoryRelax    Category = "relax"
	CategoryOther    Category = "other"
)

// AllCategories returns the taxonomy in its fixed display order.
func AllCategories() []Category {
	return []Category{CategoryStudy, CategoryHomework, CategoryRelax, CategoryOther}
}

func (c Category) Validate() error {
	switch c {
	case CategoryStudy, CategoryHomework, CategoryRelax, CategoryOther:
		return nil
	default:
		return fmt.Errorf("unsupported category %q", string(c))
	}
}

// Known reports taxonomy membership without allocating an error. Aggregation
// uses this to drop foreign keys silently instead of failing.
func (c Category) Known() bool {
	return c.Validate() == nil
}
