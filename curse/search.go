package curse

// SearchSort selects the ordering of project search results.
type SearchSort int

const (
	SortFeatured SearchSort = iota
	SortPopularity
	SortLastUpdated
	SortName
	SortAuthor
	SortTotalDownloads
)

// String returns the sort's service-side identifier.
func (s SearchSort) String() string {
	switch s {
	case SortFeatured:
		return "featured"
	case SortPopularity:
		return "popularity"
	case SortLastUpdated:
		return "last-updated"
	case SortName:
		return "name"
	case SortAuthor:
		return "author"
	case SortTotalDownloads:
		return "total-downloads"
	default:
		return "unknown"
	}
}

// SearchQuery describes a project search. Zero-valued fields are left out of
// the search; IDs that are set must satisfy their minimum-ID thresholds.
type SearchQuery struct {
	GameID            int
	CategorySectionID int
	CategoryID        int
	GameVersion       string
	PageIndex         int
	PageSize          int
	Filter            string
	Sort              SearchSort
}

func (q SearchQuery) validate() error {
	if q.GameID != 0 {
		if err := checkGameID(q.GameID, "query.GameID"); err != nil {
			return err
		}
	}
	if q.CategorySectionID != 0 {
		if err := checkCategorySectionID(q.CategorySectionID, "query.CategorySectionID"); err != nil {
			return err
		}
	}
	if q.CategoryID != 0 {
		if err := checkCategoryID(q.CategoryID, "query.CategoryID"); err != nil {
			return err
		}
	}
	if q.PageIndex < 0 {
		return preconditionf("query.PageIndex should not be negative")
	}
	if q.PageSize < 0 {
		return preconditionf("query.PageSize should not be negative")
	}
	return nil
}
