package curse

import (
	"cmp"
	"fmt"
	"sync"
	"time"
)

// Project is a hosted project. Identity is the project ID; ordering is by
// name. Instances are produced by providers, never constructed by callers.
//
// The primary fields are immutable. Description, Game and Files are fetched
// lazily through the owning Client and cached per instance; the paired
// Refresh methods force a fresh fetch. A failed refresh keeps the previously
// cached value. Cache slots are instance-local; there is no cache shared
// across instances.
type Project struct {
	ID            int
	Name          string
	Slug          string
	Summary       string
	URL           string
	GameID        int
	DownloadCount int
	Created       time.Time
	LastUpdated   time.Time
	LastModified  time.Time
	Experimental  bool

	Author          Member
	Authors         []Member
	PrimaryCategory Category
	Categories      []Category
	Section         CategorySection

	// attachments excludes the logo; logo is nil when the project has none.
	attachments []Attachment
	logo        *Attachment

	client *Client

	mu          sync.Mutex
	description *string
	game        *Game
	files       *Files
}

// NewProject assembles a project from provider data. attachments must not
// include the logo. Only provider adapters should call this.
func NewProject(p Project, attachments []Attachment, logo *Attachment) *Project {
	project := p
	project.attachments = attachments
	project.logo = logo
	return &project
}

func (p *Project) attach(c *Client) {
	p.client = c
}

// Equal reports whether both projects have the same ID.
func (p *Project) Equal(other *Project) bool {
	return other != nil && p.ID == other.ID
}

// Compare orders projects by name, case-sensitively.
func (p *Project) Compare(other *Project) int {
	return cmp.Compare(p.Name, other.Name)
}

func (p *Project) String() string {
	return fmt.Sprintf("Project{id=%d, name=%q, url=%q}", p.ID, p.Name, p.URL)
}

// Attachments returns the project's attachment images, excluding its logo.
func (p *Project) Attachments() []Attachment {
	return p.attachments
}

// Logo returns the project's logo, or PlaceholderLogo if it has none.
func (p *Project) Logo() Attachment {
	if p.logo == nil {
		return PlaceholderLogo
	}
	return *p.logo
}

// Attachment returns the project's attachment with the given ID, or nil if
// there is none. Unlike Attachments, this may also return the project's real
// logo; the placeholder logo is never returned since its ID is below
// MinAttachmentID.
func (p *Project) Attachment(id int) (*Attachment, error) {
	if err := checkAttachmentID(id, "id"); err != nil {
		return nil, err
	}
	if logo := p.Logo(); logo.ID == id {
		return &logo, nil
	}
	for i := range p.attachments {
		if p.attachments[i].ID == id {
			return &p.attachments[i], nil
		}
	}
	return nil, nil
}

// FileURL returns the site URL of the file with the given ID. The existence
// of the file is not verified.
func (p *Project) FileURL(fileID int) (string, error) {
	if err := checkFileID(fileID, "fileID"); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/files/%d", p.URL, fileID), nil
}

// Description returns the project's description as an HTML fragment. The
// value is cached; RefreshDescription forces a new fetch.
func (p *Project) Description() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.description != nil {
		return *p.description, nil
	}
	return p.fetchDescriptionLocked()
}

// DescriptionPlainText returns the project's description as plain text,
// word-wrapped to maxLineLength.
func (p *Project) DescriptionPlainText(maxLineLength int) (string, error) {
	if err := checkMaxLineLength(maxLineLength); err != nil {
		return "", err
	}
	description, err := p.Description()
	if err != nil {
		return "", err
	}
	return plainText(description, maxLineLength), nil
}

// RefreshDescription fetches the project's description again and returns it.
func (p *Project) RefreshDescription() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchDescriptionLocked()
}

func (p *Project) fetchDescriptionLocked() (string, error) {
	description, ok, err := p.client.ProjectDescription(p.ID)
	if err != nil {
		return stringOrEmpty(p.description), err
	}
	if !ok {
		return stringOrEmpty(p.description), unresolvedf("description of %s", p)
	}
	p.description = &description
	return description, nil
}

// Game returns the project's game. The value is cached; RefreshGame forces a
// new fetch.
func (p *Project) Game() (*Game, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.game != nil {
		return p.game, nil
	}
	return p.fetchGameLocked()
}

// RefreshGame fetches the project's game again and returns it.
func (p *Project) RefreshGame() (*Game, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchGameLocked()
}

func (p *Project) fetchGameLocked() (*Game, error) {
	game, err := p.client.Game(p.GameID)
	if err != nil {
		return p.game, err
	}
	if game == nil {
		return p.game, unresolvedf("game of %s", p)
	}
	p.game = game
	return p.game, nil
}

// Files returns the project's files ordered newest first. The value is
// cached; RefreshFiles forces a new fetch.
func (p *Project) Files() (*Files, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.files != nil {
		return p.files, nil
	}
	return p.fetchFilesLocked()
}

// RefreshFiles fetches the project's files again and returns them.
func (p *Project) RefreshFiles() (*Files, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchFilesLocked()
}

func (p *Project) fetchFilesLocked() (*Files, error) {
	files, err := p.client.Files(p.ID)
	if err != nil {
		return p.files, err
	}
	if files == nil {
		return p.files, unresolvedf("files of %s", p)
	}
	p.files = files
	return p.files, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
