package query

// MaxLimit caps the page size accepted from clients.
const MaxLimit = 100

// Pagination is the metadata envelope returned by every list endpoint.
// Next and Prev carry the adjacent page numbers, or null at the edges.
type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
	Next        *int  `json:"next"`
	Prev        *int  `json:"prev"`
}

// NewPagination computes the envelope for a result of total rows at the
// given page and limit. totalPages is ceil(total/limit); hasNext is
// page < totalPages and hasPrev is page > 1.
func NewPagination(total int64, page, limit int) Pagination {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	p := Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
	if p.HasNext {
		n := page + 1
		p.Next = &n
	}
	if p.HasPrev {
		n := page - 1
		p.Prev = &n
	}
	return p
}
