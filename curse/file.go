package curse

import (
	"cmp"
	"fmt"
	"sync"
	"time"
)

// ReleaseType classifies a file release.
type ReleaseType int

const (
	ReleaseTypeRelease ReleaseType = iota + 1
	ReleaseTypeBeta
	ReleaseTypeAlpha
)

// String returns the release type's lowercase name.
func (r ReleaseType) String() string {
	switch r {
	case ReleaseTypeRelease:
		return "release"
	case ReleaseTypeBeta:
		return "beta"
	case ReleaseTypeAlpha:
		return "alpha"
	default:
		return "unknown"
	}
}

// ParseReleaseType returns the ReleaseType with the given name, defaulting to
// ReleaseTypeRelease for unknown names.
func ParseReleaseType(name string) ReleaseType {
	switch name {
	case "beta":
		return ReleaseTypeBeta
	case "alpha":
		return ReleaseTypeAlpha
	default:
		return ReleaseTypeRelease
	}
}

// File is a single file of a project. Identity is the file ID; the canonical
// ordering is chronological by upload time with the ID as tie-break.
// Instances are produced by providers, never constructed by callers.
//
// The primary fields are immutable. Project, Changelog and DownloadURL are
// fetched lazily through the owning Client and cached per instance; the
// paired Refresh methods force a fresh fetch. A failed refresh keeps the
// previously cached value.
type File struct {
	ID              int
	ProjectID       int
	DisplayName     string
	FileName        string
	ReleaseType     ReleaseType
	UploadTime      time.Time
	FileSize        int64
	GameVersions    []string
	AlternateFileID int

	client *Client

	mu          sync.Mutex
	project     *Project
	changelog   *string
	downloadURL *string
}

func (f *File) attach(c *Client) {
	f.client = c
}

// Equal reports whether both files have the same ID.
func (f *File) Equal(other *File) bool {
	return other != nil && f.ID == other.ID
}

// SameProject reports whether both files belong to the same project.
func (f *File) SameProject(other *File) bool {
	return other != nil && f.ProjectID == other.ProjectID
}

// NewerThan reports whether this file is chronologically newer than other.
func (f *File) NewerThan(other *File) bool {
	return SortByNewest(f, other) < 0
}

// OlderThan reports whether this file is chronologically older than other.
func (f *File) OlderThan(other *File) bool {
	return SortByNewest(f, other) > 0
}

func (f *File) String() string {
	return fmt.Sprintf("File{id=%d, project=%d, name=%q}", f.ID, f.ProjectID, f.DisplayName)
}

// HasAlternateFile reports whether the file has an alternate file.
func (f *File) HasAlternateFile() bool {
	return f.AlternateFileID != 0
}

// AlternateFile returns the file's alternate file, or nil if it has none.
func (f *File) AlternateFile() *AlternateFile {
	if !f.HasAlternateFile() {
		return nil
	}
	return &AlternateFile{
		ID:         f.AlternateFileID,
		ProjectID:  f.ProjectID,
		MainFileID: f.ID,
		client:     f.client,
	}
}

// Project returns the file's project. The value is cached; RefreshProject
// forces a new fetch.
func (f *File) Project() (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project != nil {
		return f.project, nil
	}
	return f.fetchProjectLocked()
}

// RefreshProject fetches the file's project again and returns it.
func (f *File) RefreshProject() (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchProjectLocked()
}

func (f *File) fetchProjectLocked() (*Project, error) {
	project, err := f.client.Project(f.ProjectID)
	if err != nil {
		return f.project, err
	}
	if project == nil {
		return f.project, unresolvedf("project of %s", f)
	}
	f.project = project
	return f.project, nil
}

// URL returns the file's site URL.
func (f *File) URL() (string, error) {
	project, err := f.Project()
	if err != nil {
		return "", err
	}
	return project.FileURL(f.ID)
}

// Changelog returns the file's changelog as an HTML fragment. A file without
// a changelog yields an empty string. The value is cached; RefreshChangelog
// forces a new fetch.
func (f *File) Changelog() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changelog != nil {
		return *f.changelog, nil
	}
	return f.fetchChangelogLocked()
}

// ChangelogPlainText returns the file's changelog as plain text, word-wrapped
// to maxLineLength.
func (f *File) ChangelogPlainText(maxLineLength int) (string, error) {
	if err := checkMaxLineLength(maxLineLength); err != nil {
		return "", err
	}
	changelog, err := f.Changelog()
	if err != nil {
		return "", err
	}
	return plainText(changelog, maxLineLength), nil
}

// RefreshChangelog fetches the file's changelog again and returns it.
func (f *File) RefreshChangelog() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchChangelogLocked()
}

func (f *File) fetchChangelogLocked() (string, error) {
	changelog, ok, err := f.client.FileChangelog(f.ProjectID, f.ID)
	if err != nil {
		return stringOrEmpty(f.changelog), err
	}
	if !ok {
		return stringOrEmpty(f.changelog), unresolvedf("changelog of %s", f)
	}
	f.changelog = &changelog
	return changelog, nil
}

// DownloadURL returns the file's download URL. The value is cached;
// RefreshDownloadURL forces a new fetch.
func (f *File) DownloadURL() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadURL != nil {
		return *f.downloadURL, nil
	}
	return f.fetchDownloadURLLocked()
}

// RefreshDownloadURL fetches the file's download URL again and returns it.
func (f *File) RefreshDownloadURL() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchDownloadURLLocked()
}

func (f *File) fetchDownloadURLLocked() (string, error) {
	url, ok, err := f.client.FileDownloadURL(f.ProjectID, f.ID)
	if err != nil {
		return stringOrEmpty(f.downloadURL), err
	}
	if !ok {
		return stringOrEmpty(f.downloadURL), unresolvedf("download URL of %s", f)
	}
	f.downloadURL = &url
	return url, nil
}

// FileComparator is a total order over files. Implementations must be strong
// enough to distinguish every file that matters to the caller; files that
// compare as equal are indistinguishable as members of a Files collection.
type FileComparator func(a, b *File) int

// SortByNewest is the canonical file ordering: newest upload first, falling
// back to the higher ID first for identical upload times.
var SortByNewest FileComparator = func(a, b *File) int {
	if c := b.UploadTime.Compare(a.UploadTime); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// SortByOldest is the exact reverse of SortByNewest.
var SortByOldest FileComparator = func(a, b *File) int {
	return SortByNewest(b, a)
}
