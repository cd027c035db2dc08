package curse

import (
	"cmp"
	"sync"
)

// Game is a game the service hosts projects for, e.g. Minecraft. Identity is
// the game ID; ordering is by name.
//
// The primary fields are immutable. Categories and Versions are fetched
// lazily through the owning Client and cached per instance; the Refresh
// methods force a fresh fetch. A failed refresh keeps the previously cached
// value.
type Game struct {
	ID       int
	Name     string
	Slug     string
	Sections []CategorySection

	client *Client

	mu         sync.Mutex
	categories []*Category
	versions   []*GameVersion
}

func (g *Game) attach(c *Client) {
	g.client = c
}

// Equal reports whether both games have the same ID.
func (g *Game) Equal(other *Game) bool {
	return other != nil && g.ID == other.ID
}

// Compare orders games by name.
func (g *Game) Compare(other *Game) int {
	return cmp.Compare(g.Name, other.Name)
}

// URL returns the game's site URL.
func (g *Game) URL() string {
	return "https://www.curseforge.com/" + g.Slug
}

// Section returns the game's category section with the given ID, or nil if
// the game has no such section.
func (g *Game) Section(id int) (*CategorySection, error) {
	if err := checkCategorySectionID(id, "id"); err != nil {
		return nil, err
	}
	for i := range g.Sections {
		if g.Sections[i].ID == id {
			return &g.Sections[i], nil
		}
	}
	return nil, nil
}

// Categories returns the game's project categories. The value is cached;
// RefreshCategories forces a new fetch.
func (g *Game) Categories() ([]*Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.categories != nil {
		return g.categories, nil
	}
	return g.fetchCategoriesLocked()
}

// RefreshCategories fetches the game's categories again and returns them.
func (g *Game) RefreshCategories() ([]*Category, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchCategoriesLocked()
}

func (g *Game) fetchCategoriesLocked() ([]*Category, error) {
	all, err := g.client.Categories()
	if err != nil {
		return g.categories, err
	}
	if all == nil {
		return g.categories, unresolvedf("categories of game %d", g.ID)
	}
	categories := make([]*Category, 0, len(all))
	for _, category := range all {
		if category.GameID == g.ID {
			categories = append(categories, category)
		}
	}
	g.categories = categories
	return g.categories, nil
}

// Versions returns all known versions of the game, newest last in provider
// order. The value is cached; RefreshVersions forces a new fetch.
func (g *Game) Versions() ([]*GameVersion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.versions != nil {
		return g.versions, nil
	}
	return g.fetchVersionsLocked()
}

// RefreshVersions fetches the game's versions again and returns them.
func (g *Game) RefreshVersions() ([]*GameVersion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchVersionsLocked()
}

func (g *Game) fetchVersionsLocked() ([]*GameVersion, error) {
	versions, err := g.client.GameVersions(g.ID)
	if err != nil {
		return g.versions, err
	}
	if versions == nil {
		return g.versions, unresolvedf("versions of game %d", g.ID)
	}
	g.versions = versions
	return g.versions, nil
}
