package models

// PageQuery carries the optional limit/offset query parameters of a
// list request. Unset values fall back to the configured defaults.
type PageQuery struct {
	Limit  *int `form:"limit" json:"limit,omitempty"`
	Offset *int `form:"offset" json:"offset,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	TotalCount int `json:"total_count"`
}
