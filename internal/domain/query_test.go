package domain_test

import (
	"testing"

	"github.com/api-sage/account-management/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPageRequestOffset(t *testing.T) {
	page := domain.PageRequest{Page: 3, Size: 10}
	assert.Equal(t, 30, page.Offset())

	first := domain.PageRequest{Page: 0, Size: 25}
	assert.Equal(t, 0, first.Offset())
}

func TestNewPageMetadata(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		size        int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{name: "first of two pages", page: 0, size: 2, total: 3, totalPages: 2, hasNext: true, hasPrevious: false},
		{name: "last of two pages", page: 1, size: 2, total: 3, totalPages: 2, hasNext: false, hasPrevious: true},
		{name: "exact fit", page: 0, size: 10, total: 10, totalPages: 1, hasNext: false, hasPrevious: false},
		{name: "empty result", page: 0, size: 10, total: 0, totalPages: 0, hasNext: false, hasPrevious: false},
		{name: "past the end", page: 5, size: 10, total: 12, totalPages: 2, hasNext: false, hasPrevious: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := domain.NewPageMetadata(domain.PageRequest{Page: tt.page, Size: tt.size}, tt.total)

			assert.Equal(t, tt.total, meta.TotalElements)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.size, meta.Size)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, tt.hasPrevious, meta.HasPrevious)
		})
	}
}

func TestIsSortableField(t *testing.T) {
	for _, field := range []string{
		"createdAt", "updatedAt", "lastActivityAt", "accountType",
		"status", "currency", "balance", "accountNickname",
	} {
		assert.True(t, domain.IsSortableField(field), field)
	}

	assert.False(t, domain.IsSortableField("accountNumber"))
	assert.False(t, domain.IsSortableField("customer_id"))
	assert.False(t, domain.IsSortableField(""))
}

func TestParseSortDirection(t *testing.T) {
	dir, ok := domain.ParseSortDirection("asc")
	assert.True(t, ok)
	assert.Equal(t, domain.SortAsc, dir)

	dir, ok = domain.ParseSortDirection("desc")
	assert.True(t, ok)
	assert.Equal(t, domain.SortDesc, dir)

	_, ok = domain.ParseSortDirection("ASC")
	assert.False(t, ok)
	_, ok = domain.ParseSortDirection("descending")
	assert.False(t, ok)
}
