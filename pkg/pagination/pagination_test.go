package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)

	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_Explicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/items?page=3&per_page=10", nil)

	p := FromRequest(r)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset)
}

func TestFromRequest_IgnoresInvalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/items?page=-1&per_page=5000", nil)

	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestNewResult(t *testing.T) {
	data := []string{"a", "b", "c"}

	r := NewResult(data, 7, Params{Page: 2, PerPage: 3})

	assert.Equal(t, 7, r.TotalCount)
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.True(t, r.HasPrev)
}

func TestNewResult_LastPage(t *testing.T) {
	r := NewResult([]int{1}, 7, Params{Page: 3, PerPage: 3})

	assert.False(t, r.HasNext)
	assert.True(t, r.HasPrev)
}

func TestNewResult_NilData(t *testing.T) {
	r := NewResult[int](nil, 0, Params{Page: 1, PerPage: 20})

	assert.NotNil(t, r.Data)
	assert.Empty(t, r.Data)
	assert.Zero(t, r.TotalPages)
	assert.False(t, r.HasNext)
	assert.False(t, r.HasPrev)
}
