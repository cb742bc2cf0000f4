package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, size := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, size)

	offset, size = CalculateOffsetLimit(3, 25)
	assert.Equal(t, uint64(50), offset)
	assert.Equal(t, 25, size)

	// Out-of-range values fall back to defaults.
	offset, size = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, size)

	_, size = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, size)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 10)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.Pages)

	p = NewPagination(0, 1, 10)
	assert.Equal(t, 0, p.Pages)

	p = NewPagination(10, 0, 0)
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Equal(t, 1, p.Pages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/students"+query, nil)
		return c
	}

	page, limit := ParsePaginationParams(newContext("?page=3&limit=20"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePaginationParams(newContext(""))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = ParsePaginationParams(newContext("?page=-1&limit=9999"))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, limit)
}
