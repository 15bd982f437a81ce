package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		page, per   string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "3", "20", 3, 20},
		{"per page outside the allowed set", "1", "7", 1, 10},
		{"garbage", "abc", "xyz", 1, 10},
		{"zero page clamps", "0", "5", 1, 5},
		{"negative page clamps", "-2", "50", 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := parsePaging(tt.page, tt.per)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestSlicePage(t *testing.T) {
	t.Parallel()

	start, end, page, totalPages := slicePage(23, 1, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
	assert.Equal(t, 1, page)
	assert.Equal(t, 3, totalPages)

	start, end, page, _ = slicePage(23, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 23, end)
	assert.Equal(t, 3, page)

	// Beyond the last page clamps to it.
	start, end, page, totalPages = slicePage(23, 9, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 23, end)
	assert.Equal(t, 3, page)
	assert.Equal(t, 3, totalPages)

	// No items still reports one (empty) page.
	start, end, page, totalPages = slicePage(0, 1, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, totalPages)
}
