package core

import "strings"

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryHousing        Category = "Housing"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBills          Category = "Bills"
	CategoryOther          Category = "Other"
)

// Category is a closed set: a value outside the constants above never
// validates, so anything past the ingestion boundary can trust it.
type Category string

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransportation,
		CategoryHousing,
		CategoryEntertainment,
		CategoryBills,
		CategoryOther,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransportation, CategoryHousing,
		CategoryEntertainment, CategoryBills, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory trims surrounding whitespace and requires an exact match
// against the category set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}
