package pagination_test

import (
	"estatehub/backend/internal/pagination"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Clamps(t *testing.T) {
	assert.Equal(t, pagination.Page{Page: 1, Limit: 10}, pagination.New(0, 0))
	assert.Equal(t, pagination.Page{Page: 3, Limit: 100}, pagination.New(3, 1000))
	assert.Equal(t, pagination.Page{Page: 1, Limit: 10}, pagination.FromQuery("abc", "-5"))
}

func TestSecondPageOffset(t *testing.T) {
	p := pagination.FromQuery("2", "10")

	assert.Equal(t, 10, p.Offset(), "page 2 starts at row 11")
	assert.Equal(t, 10, p.Limit)
}

func TestMeta_TotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 5, 5},
	}
	for _, tt := range tests {
		meta := pagination.New(1, tt.limit).Meta(tt.total)
		assert.Equal(t, tt.want, meta.TotalPages, "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, tt.total, meta.Total)
	}
}
