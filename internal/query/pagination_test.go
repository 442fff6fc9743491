package query

import "testing"

func TestNewPagination_Arithmetic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"exact multiple", 30, 1, 10, 3, true, false},
		{"partial last page", 25, 1, 10, 3, true, false},
		{"middle page", 25, 2, 10, 3, true, true},
		{"last page", 25, 3, 10, 3, false, true},
		{"empty result", 0, 1, 10, 0, false, false},
		{"single row", 1, 1, 10, 1, false, false},
		{"limit one", 5, 5, 1, 5, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, tc.page, tc.limit)
			if p.TotalPages != tc.totalPages {
				t.Fatalf("total_pages: got %d want %d", p.TotalPages, tc.totalPages)
			}
			if p.HasNext != tc.hasNext {
				t.Fatalf("has_next: got %v want %v", p.HasNext, tc.hasNext)
			}
			if p.HasPrev != tc.hasPrev {
				t.Fatalf("has_prev: got %v want %v", p.HasPrev, tc.hasPrev)
			}
		})
	}
}

func TestNewPagination_NextPrevPointers(t *testing.T) {
	t.Parallel()

	p := NewPagination(25, 2, 10)
	if p.Next == nil || *p.Next != 3 {
		t.Fatalf("next: got %v want 3", p.Next)
	}
	if p.Prev == nil || *p.Prev != 1 {
		t.Fatalf("prev: got %v want 1", p.Prev)
	}

	edge := NewPagination(25, 1, 10)
	if edge.Prev != nil {
		t.Fatalf("prev on first page should be nil, got %v", *edge.Prev)
	}
	last := NewPagination(25, 3, 10)
	if last.Next != nil {
		t.Fatalf("next on last page should be nil, got %v", *last.Next)
	}
}
