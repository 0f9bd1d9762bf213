package catalog

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name        string
		total       int64
		page        int
		pageSize    int
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"empty", 0, 1, 20, 0, false, false},
		{"exact fit", 40, 1, 20, 2, true, false},
		{"remainder rounds up", 41, 1, 20, 3, true, false},
		{"last page", 41, 3, 20, 3, false, true},
		{"middle page", 100, 3, 10, 10, true, true},
		{"single page", 5, 1, 20, 1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, tc.page, tc.pageSize)

			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.HasNextPage != tc.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tc.wantHasNext)
			}
			if p.HasPreviousPage != tc.wantHasPrev {
				t.Errorf("HasPreviousPage = %v, want %v", p.HasPreviousPage, tc.wantHasPrev)
			}
			if p.Total != tc.total {
				t.Errorf("Total = %d, want %d", p.Total, tc.total)
			}
		})
	}
}
