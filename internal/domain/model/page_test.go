package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Recompute(t *testing.T) {
	p := Pagination{Page: 1, PerPage: 20, Total: 41}
	p.Recompute()
	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasNext())

	p.Total = 0
	p.Recompute()
	assert.Equal(t, 0, p.Pages)
	assert.False(t, p.HasNext())

	p = Pagination{PerPage: 0, Total: 5, Pages: 9}
	p.Recompute()
	assert.Equal(t, 0, p.Pages)
}

func TestDateRange_Validate(t *testing.T) {
	assert.NoError(t, DateRange{}.Validate())
	assert.NoError(t, DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}.Validate())
	assert.Error(t, DateRange{StartDate: "2024/01/01"}.Validate())
	assert.Error(t, DateRange{EndDate: "tomorrow"}.Validate())
	assert.Error(t, DateRange{StartDate: "2024-02-01", EndDate: "2024-01-01"}.Validate())
}

func TestSaleQuery_ValuesDropsEmptyFilters(t *testing.T) {
	v := SaleQuery{
		PageParams: PageParams{Page: 2, PerPage: 500},
		DateRange:  DateRange{StartDate: " ", EndDate: "2024-01-31"},
	}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "100", v.Get("per_page"))
	assert.Equal(t, "2024-01-31", v.Get("end_date"))
	assert.False(t, v.Has("start_date"))
	assert.False(t, v.Has("status"))
}
