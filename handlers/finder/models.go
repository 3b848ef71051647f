package finder

import "grantsassist/backend/services/recommend"

// SearchRequest lists the recommendations the client has already seen,
// so "find more" never resubmits them.
type SearchRequest struct {
	Exclude []recommend.Key `json:"exclude"`
}
