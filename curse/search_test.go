package curse

import (
	"errors"
	"testing"
)

func TestSearchSortString(t *testing.T) {
	tests := []struct {
		sort SearchSort
		want string
	}{
		{SortFeatured, "featured"},
		{SortPopularity, "popularity"},
		{SortLastUpdated, "last-updated"},
		{SortName, "name"},
		{SortAuthor, "author"},
		{SortTotalDownloads, "total-downloads"},
		{SearchSort(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sort.String(); got != tt.want {
			t.Errorf("SearchSort(%d).String() = %q, want %q", tt.sort, got, tt.want)
		}
	}
}

func TestSearchQueryValidate(t *testing.T) {
	valid := []SearchQuery{
		{},
		{GameID: 432, CategorySectionID: 6, CategoryID: 423},
		{Filter: "patches", PageIndex: 2, PageSize: 25, Sort: SortPopularity},
	}
	for _, q := range valid {
		if err := q.validate(); err != nil {
			t.Errorf("validate(%+v) = %v, want nil", q, err)
		}
	}

	invalid := []struct {
		name  string
		query SearchQuery
	}{
		{"negative game id", SearchQuery{GameID: -1}},
		{"negative section id", SearchQuery{CategorySectionID: -1}},
		{"negative category id", SearchQuery{CategoryID: -1}},
		{"negative page index", SearchQuery{PageIndex: -1}},
		{"negative page size", SearchQuery{PageSize: -1}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.query.validate(); !errors.Is(err, ErrPrecondition) {
				t.Errorf("got err %v, want ErrPrecondition", err)
			}
		})
	}
}
