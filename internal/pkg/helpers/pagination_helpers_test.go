package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page default size", 1, 20, 0, 20},
		{"second page", 2, 20, 20, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -3, 10, 0, 10},
		{"zero size uses default", 1, 0, 0, DefaultPageSize},
		{"oversized uses default", 1, 500, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	if info.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", info.CurrentPage)
	}
	if info.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", info.TotalPages)
	}
	if info.TotalItems != 45 {
		t.Errorf("TotalItems = %d, want 45", info.TotalItems)
	}

	empty := NewPaginationInfo(0, 1, 20)
	if empty.TotalPages != 1 {
		t.Errorf("empty TotalPages = %d, want 1", empty.TotalPages)
	}

	past := NewPaginationInfo(10, 9, 20)
	if past.CurrentPage != 1 {
		t.Errorf("CurrentPage past the end = %d, want 1", past.CurrentPage)
	}
}
