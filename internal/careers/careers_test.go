package careers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Filter
		wantPage  int
		wantLimit int
	}{
		{"defaults", Filter{}, 1, DefaultPageSize},
		{"negative page", Filter{Page: -3, Limit: 5}, 1, 5},
		{"limit capped", Filter{Page: 2, Limit: 500}, 2, MaxPageSize},
		{"limit at cap", Filter{Page: 1, Limit: MaxPageSize}, 1, MaxPageSize},
		{"zero limit", Filter{Page: 4, Limit: 0}, 4, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestFilter_NormalizeTrimsText(t *testing.T) {
	got := Filter{Query: "  go ", Department: " eng ", Location: "\tSeoul", EmploymentType: "full-time "}.Normalize()

	assert.Equal(t, "go", got.Query)
	assert.Equal(t, "eng", got.Department)
	assert.Equal(t, "Seoul", got.Location)
	assert.Equal(t, "full-time", got.EmploymentType)
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Filter{Page: 3, Limit: 10}.Offset())
}

func TestParsePaging(t *testing.T) {
	page, limit := ParsePaging("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = ParsePaging("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	page, limit = ParsePaging("abc", "1.5")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)
}
