package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative size falls back", 1, -5, 0, DefaultPageSize},
		{"oversized page size falls back", 2, 5000, DefaultPageSize, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("got (%d, %d), want (%d, %d)", offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	if info.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", info.TotalPages)
	}
	if info.CurrentPage != 2 || info.PageSize != 20 || info.TotalItems != 45 {
		t.Errorf("unexpected info: %+v", info)
	}

	empty := NewPaginationInfo(0, 1, 20)
	if empty.TotalPages != 1 {
		t.Errorf("TotalPages for empty set = %d, want 1", empty.TotalPages)
	}

	beyond := NewPaginationInfo(10, 9, 20)
	if beyond.CurrentPage != 1 {
		t.Errorf("CurrentPage beyond range = %d, want clamped to 1", beyond.CurrentPage)
	}
}
