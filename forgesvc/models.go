package forgesvc

import (
	"time"

	"curseapi/curse"
)

// --- Structs for API responses ---

type svcProject struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Summary           string          `json:"summary"`
	WebsiteURL        string          `json:"websiteUrl"`
	GameID            int             `json:"gameId"`
	DownloadCount     float64         `json:"downloadCount"`
	DateCreated       time.Time       `json:"dateCreated"`
	DateReleased      time.Time       `json:"dateReleased"`
	DateModified      time.Time       `json:"dateModified"`
	IsExperimental    bool            `json:"isExperiemental"` // sic, service-side typo
	PrimaryCategoryID int             `json:"primaryCategoryId"`
	Authors           []svcAuthor     `json:"authors"`
	Attachments       []svcAttachment `json:"attachments"`
	Categories        []svcCategory   `json:"categories"`
	CategorySection   svcSection      `json:"categorySection"`
}

type svcAuthor struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	UserID int    `json:"userId"`
}

type svcAttachment struct {
	ID           int    `json:"id"`
	ProjectID    int    `json:"projectId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	IsDefault    bool   `json:"isDefault"`
}

type svcCategory struct {
	CategoryID int    `json:"categoryId"`
	GameID     int    `json:"gameId"`
	RootID     int    `json:"rootGameCategoryId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	URL        string `json:"url"`
	AvatarURL  string `json:"avatarUrl"`
}

type svcSection struct {
	ID     int    `json:"id"`
	GameID int    `json:"gameId"`
	Name   string `json:"name"`
}

type svcFile struct {
	ID              int       `json:"id"`
	DisplayName     string    `json:"displayName"`
	FileName        string    `json:"fileName"`
	FileDate        time.Time `json:"fileDate"`
	FileLength      int64     `json:"fileLength"`
	ReleaseType     int       `json:"releaseType"`
	GameVersion     []string  `json:"gameVersion"`
	AlternateFileID int       `json:"alternateFileId"`
	IsAlternate     bool      `json:"isAlternate"`
}

type svcGame struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	CategorySections []svcSection `json:"categorySections"`
}

// --- Conversions to domain entities ---

func (p svcProject) toProject() *curse.Project {
	authors := make([]curse.Member, 0, len(p.Authors))
	for _, a := range p.Authors {
		authors = append(authors, curse.Member{ID: a.UserID, Name: a.Name, URL: a.URL})
	}
	var author curse.Member
	if len(authors) > 0 {
		author = authors[0]
	}

	var logo *curse.Attachment
	attachments := make([]curse.Attachment, 0, len(p.Attachments))
	for _, a := range p.Attachments {
		converted := a.toAttachment()
		if a.IsDefault {
			logo = &converted
			continue
		}
		attachments = append(attachments, converted)
	}

	var primary curse.Category
	categories := make([]curse.Category, 0, len(p.Categories))
	for _, c := range p.Categories {
		converted := c.toCategory()
		if c.CategoryID == p.PrimaryCategoryID {
			primary = converted
		}
		categories = append(categories, converted)
	}

	return curse.NewProject(curse.Project{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Summary:         p.Summary,
		URL:             p.WebsiteURL,
		GameID:          p.GameID,
		DownloadCount:   int(p.DownloadCount),
		Created:         p.DateCreated,
		LastUpdated:     p.DateReleased,
		LastModified:    p.DateModified,
		Experimental:    p.IsExperimental,
		Author:          author,
		Authors:         authors,
		PrimaryCategory: primary,
		Categories:      categories,
		Section: curse.CategorySection{
			ID:     p.CategorySection.ID,
			GameID: p.CategorySection.GameID,
			Name:   p.CategorySection.Name,
		},
	}, attachments, logo)
}

func (a svcAttachment) toAttachment() curse.Attachment {
	return curse.Attachment{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		Title:        a.Title,
		Description:  a.Description,
		URL:          a.URL,
		ThumbnailURL: a.ThumbnailURL,
	}
}

func (c svcCategory) toCategory() curse.Category {
	return curse.Category{
		ID:        c.CategoryID,
		GameID:    c.GameID,
		SectionID: c.RootID,
		Name:      c.Name,
		Slug:      c.Slug,
		URL:       c.URL,
		LogoURL:   c.AvatarURL,
	}
}

func (f svcFile) toFile(projectID int) *curse.File {
	return &curse.File{
		ID:              f.ID,
		ProjectID:       projectID,
		DisplayName:     f.DisplayName,
		FileName:        f.FileName,
		ReleaseType:     releaseType(f.ReleaseType),
		UploadTime:      f.FileDate,
		FileSize:        f.FileLength,
		GameVersions:    f.GameVersion,
		AlternateFileID: f.AlternateFileID,
	}
}

func releaseType(svc int) curse.ReleaseType {
	switch svc {
	case 2:
		return curse.ReleaseTypeBeta
	case 3:
		return curse.ReleaseTypeAlpha
	default:
		return curse.ReleaseTypeRelease
	}
}

func (g svcGame) toGame() *curse.Game {
	sections := make([]curse.CategorySection, 0, len(g.CategorySections))
	for _, s := range g.CategorySections {
		sections = append(sections, curse.CategorySection{ID: s.ID, GameID: s.GameID, Name: s.Name})
	}
	return &curse.Game{ID: g.ID, Name: g.Name, Slug: g.Slug, Sections: sections}
}
