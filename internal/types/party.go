package types

// PartyFilter represents the filter options for listing parties
type PartyFilter struct {
	*QueryFilter
	PartyIDs []string `json:"party_ids,omitempty" form:"party_ids"`
}

// NewNoLimitPartyFilter creates an unpaginated party filter
func NewNoLimitPartyFilter() *PartyFilter {
	return &PartyFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}
