package curse

// Member is a project author. Identity is the member ID.
type Member struct {
	ID   int
	Name string
	URL  string
}

// Equal reports whether both members have the same ID.
func (m Member) Equal(other Member) bool {
	return m.ID == other.ID
}
