package cachedb

import (
	"time"

	"gorm.io/gorm"
)

// CachedProject is a locally stored project. Nested value types (authors,
// attachments, categories) are kept as JSON columns; they are read back
// verbatim, never queried.
type CachedProject struct {
	gorm.Model
	ProjectID       int `gorm:"uniqueIndex"`
	Name            string
	Slug            string
	Summary         string
	URL             string
	GameID          int
	DownloadCount   int
	Created         time.Time
	LastUpdated     time.Time
	LastModified    time.Time
	Experimental    bool
	AuthorsJSON     string
	AttachmentsJSON string
	LogoJSON        string
	CategoriesJSON  string
	PrimaryJSON     string
	SectionJSON     string
}

// CachedFile is a locally stored file of a project. DownloadURL is empty
// until SaveDownloadURL records one.
type CachedFile struct {
	gorm.Model
	FileID           int `gorm:"uniqueIndex"`
	ProjectID        int `gorm:"index"`
	DisplayName      string
	FileName         string
	ReleaseType      int
	UploadTime       time.Time
	FileSize         int64
	GameVersionsJSON string
	AlternateFileID  int
	DownloadURL      string
}

// CachedGame is a locally stored game.
type CachedGame struct {
	gorm.Model
	GameID       int `gorm:"uniqueIndex"`
	Name         string
	Slug         string
	SectionsJSON string
}

// CachedCategory is a locally stored project category.
type CachedCategory struct {
	gorm.Model
	CategoryID int `gorm:"uniqueIndex"`
	GameID     int
	SectionID  int `gorm:"index"`
	Name       string
	Slug       string
	URL        string
	LogoURL    string
}
