package cachedb

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"curseapi/curse"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store is a curse.Provider backed by a local SQLite database. It answers
// from previously saved entities and reports "not found" for everything else,
// so registered at first priority it acts as a read-through cache in front of
// a network provider. The Save methods populate it.
type Store struct {
	db *gorm.DB
}

var _ curse.Provider = (*Store)(nil)

// Open opens (creating if necessary) the cache database at the given path and
// migrates its schema.
func Open(dbPath string) (*Store, error) {
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(gormlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(&CachedProject{}, &CachedFile{}, &CachedGame{}, &CachedCategory{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// --- Provider surface ---

// Project implements curse.Provider.
func (s *Store) Project(id int) (*curse.Project, error) {
	var cached CachedProject
	if found, err := s.first(&cached, "project_id = ?", id); err != nil || !found {
		return nil, err
	}
	return cached.toProject()
}

// ProjectByPath implements curse.Provider. The lookup matches the final path
// segment against the cached slug.
func (s *Store) ProjectByPath(path string) (*curse.Project, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	slug := segments[len(segments)-1]
	if slug == "" {
		return nil, nil
	}
	var cached CachedProject
	if found, err := s.first(&cached, "slug = ?", slug); err != nil || !found {
		return nil, err
	}
	return cached.toProject()
}

// SearchProjects implements curse.Provider. The cache does not search.
func (s *Store) SearchProjects(curse.SearchQuery) ([]*curse.Project, error) {
	return nil, nil
}

// ProjectDescription implements curse.Provider. Descriptions are not cached.
func (s *Store) ProjectDescription(int) (string, bool, error) {
	return "", false, nil
}

// Files implements curse.Provider. A project's files are only answered when
// the project itself has been saved, so a partial file set is never mistaken
// for the full list.
func (s *Store) Files(projectID int) ([]*curse.File, error) {
	var project CachedProject
	if found, err := s.first(&project, "project_id = ?", projectID); err != nil || !found {
		return nil, err
	}

	var cached []CachedFile
	if err := s.db.Where("project_id = ?", projectID).Find(&cached).Error; err != nil {
		return nil, fmt.Errorf("failed to query cached files: %w", err)
	}
	if len(cached) == 0 {
		return nil, nil
	}

	files := make([]*curse.File, 0, len(cached))
	for _, c := range cached {
		file, err := c.toFile()
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// File implements curse.Provider.
func (s *Store) File(projectID, fileID int) (*curse.File, error) {
	var cached CachedFile
	if found, err := s.first(&cached, "project_id = ? AND file_id = ?", projectID, fileID); err != nil || !found {
		return nil, err
	}
	return cached.toFile()
}

// FileChangelog implements curse.Provider. Changelogs are not cached.
func (s *Store) FileChangelog(int, int) (string, bool, error) {
	return "", false, nil
}

// FileDownloadURL implements curse.Provider.
func (s *Store) FileDownloadURL(projectID, fileID int) (string, bool, error) {
	var cached CachedFile
	found, err := s.first(&cached, "project_id = ? AND file_id = ?", projectID, fileID)
	if err != nil || !found || cached.DownloadURL == "" {
		return "", false, err
	}
	return cached.DownloadURL, true, nil
}

// Games implements curse.Provider. The full game list is never answered from
// the cache; single games are.
func (s *Store) Games() ([]*curse.Game, error) {
	return nil, nil
}

// Game implements curse.Provider.
func (s *Store) Game(id int) (*curse.Game, error) {
	var cached CachedGame
	if found, err := s.first(&cached, "game_id = ?", id); err != nil || !found {
		return nil, err
	}
	return cached.toGame()
}

// GameVersions implements curse.Provider. Versions are not cached.
func (s *Store) GameVersions(int) ([]*curse.GameVersion, error) {
	return nil, nil
}

// GameVersion implements curse.Provider.
func (s *Store) GameVersion(int, string) (*curse.GameVersion, error) {
	return nil, nil
}

// Categories implements curse.Provider. The full category list is never
// answered from the cache.
func (s *Store) Categories() ([]*curse.Category, error) {
	return nil, nil
}

// CategoriesIn implements curse.Provider.
func (s *Store) CategoriesIn(sectionID int) ([]*curse.Category, error) {
	var cached []CachedCategory
	if err := s.db.Where("section_id = ?", sectionID).Find(&cached).Error; err != nil {
		return nil, fmt.Errorf("failed to query cached categories: %w", err)
	}
	if len(cached) == 0 {
		return nil, nil
	}
	categories := make([]*curse.Category, 0, len(cached))
	for _, c := range cached {
		categories = append(categories, c.toCategory())
	}
	return categories, nil
}

// Category implements curse.Provider.
func (s *Store) Category(id int) (*curse.Category, error) {
	var cached CachedCategory
	if found, err := s.first(&cached, "category_id = ?", id); err != nil || !found {
		return nil, err
	}
	return cached.toCategory(), nil
}

// --- Population ---

// SaveProject stores or updates a project.
func (s *Store) SaveProject(p *curse.Project) error {
	record := CachedProject{
		ProjectID:     p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Summary:       p.Summary,
		URL:           p.URL,
		GameID:        p.GameID,
		DownloadCount: p.DownloadCount,
		Created:       p.Created,
		LastUpdated:   p.LastUpdated,
		LastModified:  p.LastModified,
		Experimental:  p.Experimental,
	}

	var err error
	if record.AuthorsJSON, err = marshal(p.Authors); err != nil {
		return err
	}
	if record.AttachmentsJSON, err = marshal(p.Attachments()); err != nil {
		return err
	}
	if logo := p.Logo(); !logo.IsPlaceholder() {
		if record.LogoJSON, err = marshal(logo); err != nil {
			return err
		}
	}
	if record.CategoriesJSON, err = marshal(p.Categories); err != nil {
		return err
	}
	if record.PrimaryJSON, err = marshal(p.PrimaryCategory); err != nil {
		return err
	}
	if record.SectionJSON, err = marshal(p.Section); err != nil {
		return err
	}

	return s.upsert(&record, "project_id", record.ProjectID)
}

// SaveFile stores or updates a single file.
func (s *Store) SaveFile(f *curse.File) error {
	versions, err := marshal(f.GameVersions)
	if err != nil {
		return err
	}
	record := CachedFile{
		FileID:           f.ID,
		ProjectID:        f.ProjectID,
		DisplayName:      f.DisplayName,
		FileName:         f.FileName,
		ReleaseType:      int(f.ReleaseType),
		UploadTime:       f.UploadTime,
		FileSize:         f.FileSize,
		GameVersionsJSON: versions,
		AlternateFileID:  f.AlternateFileID,
	}
	return s.upsert(&record, "file_id", record.FileID)
}

// SaveFiles stores or updates all files of a project.
func (s *Store) SaveFiles(files *curse.Files) error {
	for _, f := range files.Slice() {
		if err := s.SaveFile(f); err != nil {
			return err
		}
	}
	return nil
}

// SaveDownloadURL records the download URL of a previously saved file.
func (s *Store) SaveDownloadURL(projectID, fileID int, url string) error {
	result := s.db.Model(&CachedFile{}).
		Where("project_id = ? AND file_id = ?", projectID, fileID).
		Update("download_url", url)
	if result.Error != nil {
		return fmt.Errorf("failed to save download URL: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("file %d of project %d is not cached", fileID, projectID)
	}
	return nil
}

// SaveGame stores or updates a game.
func (s *Store) SaveGame(g *curse.Game) error {
	sections, err := marshal(g.Sections)
	if err != nil {
		return err
	}
	record := CachedGame{
		GameID:       g.ID,
		Name:         g.Name,
		Slug:         g.Slug,
		SectionsJSON: sections,
	}
	return s.upsert(&record, "game_id", record.GameID)
}

// SaveCategory stores or updates a category.
func (s *Store) SaveCategory(c *curse.Category) error {
	record := CachedCategory{
		CategoryID: c.ID,
		GameID:     c.GameID,
		SectionID:  c.SectionID,
		Name:       c.Name,
		Slug:       c.Slug,
		URL:        c.URL,
		LogoURL:    c.LogoURL,
	}
	return s.upsert(&record, "category_id", record.CategoryID)
}

// --- Helpers ---

func (s *Store) first(dest any, query string, args ...any) (bool, error) {
	err := s.db.Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query cache: %w", err)
	}
	return true, nil
}

func (s *Store) upsert(record any, column string, value int) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: column}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to save cache record (%s = %d): %w", column, value, err)
	}
	return nil
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache column: %w", err)
	}
	return string(data), nil
}

func unmarshal[T any](data string) (T, error) {
	var v T
	if data == "" {
		return v, nil
	}
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return v, fmt.Errorf("failed to decode cache column: %w", err)
	}
	return v, nil
}

func (c CachedProject) toProject() (*curse.Project, error) {
	authors, err := unmarshal[[]curse.Member](c.AuthorsJSON)
	if err != nil {
		return nil, err
	}
	attachments, err := unmarshal[[]curse.Attachment](c.AttachmentsJSON)
	if err != nil {
		return nil, err
	}
	var logo *curse.Attachment
	if c.LogoJSON != "" {
		l, err := unmarshal[curse.Attachment](c.LogoJSON)
		if err != nil {
			return nil, err
		}
		logo = &l
	}
	categories, err := unmarshal[[]curse.Category](c.CategoriesJSON)
	if err != nil {
		return nil, err
	}
	primary, err := unmarshal[curse.Category](c.PrimaryJSON)
	if err != nil {
		return nil, err
	}
	section, err := unmarshal[curse.CategorySection](c.SectionJSON)
	if err != nil {
		return nil, err
	}

	var author curse.Member
	if len(authors) > 0 {
		author = authors[0]
	}

	return curse.NewProject(curse.Project{
		ID:              c.ProjectID,
		Name:            c.Name,
		Slug:            c.Slug,
		Summary:         c.Summary,
		URL:             c.URL,
		GameID:          c.GameID,
		DownloadCount:   c.DownloadCount,
		Created:         c.Created,
		LastUpdated:     c.LastUpdated,
		LastModified:    c.LastModified,
		Experimental:    c.Experimental,
		Author:          author,
		Authors:         authors,
		PrimaryCategory: primary,
		Categories:      categories,
		Section:         section,
	}, attachments, logo), nil
}

func (c CachedFile) toFile() (*curse.File, error) {
	versions, err := unmarshal[[]string](c.GameVersionsJSON)
	if err != nil {
		return nil, err
	}
	return &curse.File{
		ID:              c.FileID,
		ProjectID:       c.ProjectID,
		DisplayName:     c.DisplayName,
		FileName:        c.FileName,
		ReleaseType:     curse.ReleaseType(c.ReleaseType),
		UploadTime:      c.UploadTime,
		FileSize:        c.FileSize,
		GameVersions:    versions,
		AlternateFileID: c.AlternateFileID,
	}, nil
}

func (c CachedGame) toGame() (*curse.Game, error) {
	sections, err := unmarshal[[]curse.CategorySection](c.SectionsJSON)
	if err != nil {
		return nil, err
	}
	return &curse.Game{ID: c.GameID, Name: c.Name, Slug: c.Slug, Sections: sections}, nil
}

func (c CachedCategory) toCategory() *curse.Category {
	return &curse.Category{
		ID:        c.CategoryID,
		GameID:    c.GameID,
		SectionID: c.SectionID,
		Name:      c.Name,
		Slug:      c.Slug,
		URL:       c.URL,
		LogoURL:   c.LogoURL,
	}
}
