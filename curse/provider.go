package curse

// Provider is the contract a backend adapter must satisfy. Each method either
// returns the requested value, an explicit "not found" result, or a domain
// error; an adapter must never signal failure for an ordinary miss.
//
// "Not found" is represented as (nil, nil) for entity and slice results and
// as (zero value, false, nil) for scalar results, so it is always
// distinguishable from a failure. Slice results that are present but empty
// must be non-nil.
//
// Adapters that do not support an operation (a lightweight fallback backend,
// a local cache) simply report "not found" for it, which makes the resolver
// fall through to the next provider in registry order.
type Provider interface {
	// Project returns the project with the given ID.
	Project(id int) (*Project, error)

	// ProjectByPath returns the project with the given site URL path.
	ProjectByPath(path string) (*Project, error)

	// SearchProjects returns the projects matching the query.
	SearchProjects(query SearchQuery) ([]*Project, error)

	// ProjectDescription returns the description of the project with the
	// given ID as an HTML fragment.
	ProjectDescription(id int) (string, bool, error)

	// Files returns all files of a project, or nil if the project is unknown.
	Files(projectID int) ([]*File, error)

	// File returns a single file of a project.
	File(projectID, fileID int) (*File, error)

	// FileChangelog returns a file's changelog as an HTML fragment. A file
	// without a changelog yields ("", true, nil).
	FileChangelog(projectID, fileID int) (string, bool, error)

	// FileDownloadURL returns the download URL for a file.
	FileDownloadURL(projectID, fileID int) (string, bool, error)

	// Games returns all games the service supports.
	Games() ([]*Game, error)

	// Game returns the game with the given ID.
	Game(id int) (*Game, error)

	// GameVersions returns all known versions of a game.
	GameVersions(gameID int) ([]*GameVersion, error)

	// GameVersion returns the version of a game with the given version string.
	GameVersion(gameID int, versionString string) (*GameVersion, error)

	// Categories returns all project categories.
	Categories() ([]*Category, error)

	// CategoriesIn returns all categories in a category section.
	CategoriesIn(sectionID int) ([]*Category, error)

	// Category returns the category with the given ID.
	Category(id int) (*Category, error)
}
