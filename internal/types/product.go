package types

// ProductFilter represents the filter options for listing products
type ProductFilter struct {
	*QueryFilter
	ProductIDs []string `json:"product_ids,omitempty" form:"product_ids"`
}

// NewNoLimitProductFilter creates an unpaginated product filter
func NewNoLimitProductFilter() *ProductFilter {
	return &ProductFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}
