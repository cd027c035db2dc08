package curse

// Category is a project category. Identity is the category ID.
type Category struct {
	ID        int
	GameID    int
	SectionID int
	Name      string
	Slug      string
	URL       string
	LogoURL   string
}

// Equal reports whether both categories have the same ID.
func (c Category) Equal(other Category) bool {
	return c.ID == other.ID
}

// CategorySection is a group of categories within a game, e.g. "Mods".
// Identity is the section ID.
type CategorySection struct {
	ID     int
	GameID int
	Name   string
}

// Equal reports whether both sections have the same ID.
func (s CategorySection) Equal(other CategorySection) bool {
	return s.ID == other.ID
}
