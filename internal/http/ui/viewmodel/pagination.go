package viewmodel

// Pagination contains pagination metadata for list views. Backends report page counts,
// not cursors, so only page numbers are tracked.
type Pagination struct {
	Page    int
	Pages   int
	Total   int
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
}
