package curse

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Client resolves entities by trying an ordered, mutable list of providers.
// The first provider to return a non-empty answer wins; a provider error
// aborts the whole resolution immediately, so a hard backend failure is never
// silently masked by a fallback. Only "not found" moves on to the next
// provider.
//
// A Client is safe for concurrent use; registry mutation is serialized
// internally. Construct isolated Clients in tests instead of sharing one.
type Client struct {
	log *zap.SugaredLogger

	mu        sync.RWMutex
	providers []Provider
}

// NewClient returns a Client with the given providers, tried in order.
// A nil logger disables logging.
func NewClient(log *zap.SugaredLogger, providers ...Provider) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Client{log: log}
	for _, p := range providers {
		c.AddProvider(p, false)
	}
	return c
}

// AddProvider registers a provider if it is not already registered and
// reports whether it was added. With firstPriority the provider is consulted
// before all currently registered providers, otherwise after them.
// Providers are deduplicated by interface equality, so a provider registered
// twice is kept once.
func (c *Client) AddProvider(p Provider, firstPriority bool) bool {
	if p == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(c.providers, p) {
		return false
	}
	if firstPriority {
		c.providers = slices.Insert(c.providers, 0, p)
	} else {
		c.providers = append(c.providers, p)
	}
	return true
}

// RemoveProvider unregisters a provider and reports whether it was registered.
func (c *Client) RemoveProvider(p Provider) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, registered := range c.providers {
		if registered == p {
			c.providers = slices.Delete(c.providers, i, i+1)
			return true
		}
	}
	return false
}

// Providers returns a snapshot of the registered providers in resolution
// order. Mutating the returned slice does not affect the registry.
func (c *Client) Providers() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.providers)
}

// resolve runs one lookup against each provider in registry order until one
// returns a non-empty result. Provider errors propagate immediately.
func resolve[T any](c *Client, op string, call func(Provider) (T, bool, error)) (T, bool, error) {
	var zero T
	providers := c.Providers()
	if len(providers) == 0 {
		c.log.Warnw("No providers registered", zap.String("operation", op))
		return zero, false, nil
	}
	for _, p := range providers {
		v, ok, err := call(p)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return zero, false, nil
}

// resolveEntity adapts resolve for lookups returning a single entity pointer.
func resolveEntity[T any](c *Client, op string, call func(Provider) (*T, error)) (*T, error) {
	v, _, err := resolve(c, op, func(p Provider) (*T, bool, error) {
		e, err := call(p)
		return e, e != nil, err
	})
	return v, err
}

// resolveSlice adapts resolve for lookups returning a slice. A nil slice is
// "not found"; an empty non-nil slice is a present, empty answer.
func resolveSlice[T any](c *Client, op string, call func(Provider) ([]T, error)) ([]T, error) {
	v, _, err := resolve(c, op, func(p Provider) ([]T, bool, error) {
		s, err := call(p)
		return s, s != nil, err
	})
	return v, err
}

// Project returns the project with the given ID, or nil if no provider
// knows it.
func (c *Client) Project(id int) (*Project, error) {
	if err := checkProjectID(id, "id"); err != nil {
		return nil, err
	}
	p, err := resolveEntity(c, "project", func(pr Provider) (*Project, error) {
		return pr.Project(id)
	})
	if p != nil {
		p.attach(c)
	}
	return p, err
}

// ProjectByPath returns the project with the given site URL path.
func (c *Client) ProjectByPath(path string) (*Project, error) {
	if path == "" {
		return nil, preconditionf("path should not be empty")
	}
	p, err := resolveEntity(c, "projectByPath", func(pr Provider) (*Project, error) {
		return pr.ProjectByPath(path)
	})
	if p != nil {
		p.attach(c)
	}
	return p, err
}

// SearchProjects returns the projects matching the query, or nil if no
// provider supports searching.
func (c *Client) SearchProjects(query SearchQuery) ([]*Project, error) {
	if err := query.validate(); err != nil {
		return nil, err
	}
	projects, err := resolveSlice(c, "searchProjects", func(pr Provider) ([]*Project, error) {
		return pr.SearchProjects(query)
	})
	for _, p := range projects {
		p.attach(c)
	}
	return projects, err
}

// ProjectDescription returns the description of a project as an HTML
// fragment. The boolean reports whether the project was found.
func (c *Client) ProjectDescription(id int) (string, bool, error) {
	if err := checkProjectID(id, "id"); err != nil {
		return "", false, err
	}
	return resolve(c, "projectDescription", func(pr Provider) (string, bool, error) {
		return pr.ProjectDescription(id)
	})
}

// ProjectDescriptionPlainText returns the description of a project as plain
// text, word-wrapped to maxLineLength.
func (c *Client) ProjectDescriptionPlainText(id, maxLineLength int) (string, bool, error) {
	if err := checkProjectID(id, "id"); err != nil {
		return "", false, err
	}
	if err := checkMaxLineLength(maxLineLength); err != nil {
		return "", false, err
	}
	description, ok, err := c.ProjectDescription(id)
	if err != nil || !ok {
		return "", ok, err
	}
	return plainText(description, maxLineLength), true, nil
}

// Files returns all files of a project ordered newest first, or nil if no
// provider knows the project.
func (c *Client) Files(projectID int) (*Files, error) {
	if err := checkProjectID(projectID, "projectID"); err != nil {
		return nil, err
	}
	files, err := resolveSlice(c, "files", func(pr Provider) ([]*File, error) {
		return pr.Files(projectID)
	})
	if err != nil || files == nil {
		return nil, err
	}
	for _, f := range files {
		f.attach(c)
	}
	return NewFiles(files), nil
}

// File returns a single file of a project. Alternate files cannot be
// retrieved this way; use File.AlternateFile instead.
func (c *Client) File(projectID, fileID int) (*File, error) {
	if err := checkProjectID(projectID, "projectID"); err != nil {
		return nil, err
	}
	if err := checkFileID(fileID, "fileID"); err != nil {
		return nil, err
	}
	f, err := resolveEntity(c, "file", func(pr Provider) (*File, error) {
		return pr.File(projectID, fileID)
	})
	if f != nil {
		f.attach(c)
	}
	return f, err
}

// FileChangelog returns a file's changelog as an HTML fragment. A file
// without a changelog yields an empty string with found == true.
func (c *Client) FileChangelog(projectID, fileID int) (string, bool, error) {
	if err := checkProjectID(projectID, "projectID"); err != nil {
		return "", false, err
	}
	if err := checkFileID(fileID, "fileID"); err != nil {
		return "", false, err
	}
	return resolve(c, "fileChangelog", func(pr Provider) (string, bool, error) {
		return pr.FileChangelog(projectID, fileID)
	})
}

// FileChangelogPlainText returns a file's changelog as plain text,
// word-wrapped to maxLineLength.
func (c *Client) FileChangelogPlainText(projectID, fileID, maxLineLength int) (string, bool, error) {
	if err := checkProjectID(projectID, "projectID"); err != nil {
		return "", false, err
	}
	if err := checkFileID(fileID, "fileID"); err != nil {
		return "", false, err
	}
	if err := checkMaxLineLength(maxLineLength); err != nil {
		return "", false, err
	}
	changelog, ok, err := c.FileChangelog(projectID, fileID)
	if err != nil || !ok {
		return "", ok, err
	}
	return plainText(changelog, maxLineLength), true, nil
}

// FileDownloadURL returns the download URL for a file.
func (c *Client) FileDownloadURL(projectID, fileID int) (string, bool, error) {
	if err := checkProjectID(projectID, "projectID"); err != nil {
		return "", false, err
	}
	if err := checkFileID(fileID, "fileID"); err != nil {
		return "", false, err
	}
	return resolve(c, "fileDownloadURL", func(pr Provider) (string, bool, error) {
		return pr.FileDownloadURL(projectID, fileID)
	})
}

// Games returns all games the service supports.
func (c *Client) Games() ([]*Game, error) {
	games, err := resolveSlice(c, "games", func(pr Provider) ([]*Game, error) {
		return pr.Games()
	})
	for _, g := range games {
		g.attach(c)
	}
	return games, err
}

// Game returns the game with the given ID.
func (c *Client) Game(id int) (*Game, error) {
	if err := checkGameID(id, "id"); err != nil {
		return nil, err
	}
	g, err := resolveEntity(c, "game", func(pr Provider) (*Game, error) {
		return pr.Game(id)
	})
	if g != nil {
		g.attach(c)
	}
	return g, err
}

// GameVersions returns all known versions of a game.
func (c *Client) GameVersions(gameID int) ([]*GameVersion, error) {
	if err := checkGameID(gameID, "gameID"); err != nil {
		return nil, err
	}
	return resolveSlice(c, "gameVersions", func(pr Provider) ([]*GameVersion, error) {
		return pr.GameVersions(gameID)
	})
}

// GameVersion returns the version of a game with the given version string.
// The version string may be empty.
func (c *Client) GameVersion(gameID int, versionString string) (*GameVersion, error) {
	if err := checkGameID(gameID, "gameID"); err != nil {
		return nil, err
	}
	return resolveEntity(c, "gameVersion", func(pr Provider) (*GameVersion, error) {
		return pr.GameVersion(gameID, versionString)
	})
}

// Categories returns all project categories.
func (c *Client) Categories() ([]*Category, error) {
	return resolveSlice(c, "categories", func(pr Provider) ([]*Category, error) {
		return pr.Categories()
	})
}

// CategoriesIn returns all categories in a category section.
func (c *Client) CategoriesIn(sectionID int) ([]*Category, error) {
	if err := checkCategorySectionID(sectionID, "sectionID"); err != nil {
		return nil, err
	}
	return resolveSlice(c, "categoriesIn", func(pr Provider) ([]*Category, error) {
		return pr.CategoriesIn(sectionID)
	})
}

// Category returns the category with the given ID.
func (c *Client) Category(id int) (*Category, error) {
	if err := checkCategoryID(id, "id"); err != nil {
		return nil, err
	}
	return resolveEntity(c, "category", func(pr Provider) (*Category, error) {
		return pr.Category(id)
	})
}
