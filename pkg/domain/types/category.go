package types

// Category represents an issue category. The set is closed: values outside
// the known list are mapped to CategoryOther so that downstream scoring is
// total over every input.
type Category string

const (
	CategorySafety      Category = "safety"
	CategoryStructural  Category = "structural"
	CategoryElectrical  Category = "electrical"
	CategoryPlumbing    Category = "plumbing"
	CategoryHVAC        Category = "hvac"
	CategoryITEquipment Category = "it_equipment"
	CategoryCleaning    Category = "cleaning"
	CategoryFurniture   Category = "furniture"
	CategoryLandscaping Category = "landscaping"
	CategoryOther       Category = "other"
)

// Categories returns all known categories in display order
func Categories() []Category {
	return []Category{
		CategorySafety,
		CategoryStructural,
		CategoryElectrical,
		CategoryPlumbing,
		CategoryHVAC,
		CategoryITEquipment,
		CategoryCleaning,
		CategoryFurniture,
		CategoryLandscaping,
		CategoryOther,
	}
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a known value
func (c Category) IsValid() bool {
	switch c {
	case CategorySafety, CategoryStructural, CategoryElectrical,
		CategoryPlumbing, CategoryHVAC, CategoryITEquipment,
		CategoryCleaning, CategoryFurniture, CategoryLandscaping,
		CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory maps a raw string to a Category, falling back to
// CategoryOther for unknown values. Unknown input is a policy fallback,
// not an error.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.IsValid() {
		return c
	}
	return CategoryOther
}
