package curse

import (
	"fmt"
	"sync"
)

// AlternateFile is a secondary file attached to a main file, e.g. a
// deobfuscated counterpart. Alternate files cannot be retrieved through
// Client.File; they are reached from their main file's AlternateFile method.
//
// Project, DownloadURL and MainFile follow the same lazy cache contract as
// File.
type AlternateFile struct {
	ID         int
	ProjectID  int
	MainFileID int

	client *Client

	mu          sync.Mutex
	project     *Project
	downloadURL *string
	mainFile    *File
}

// Equal reports whether both alternate files have the same ID.
func (f *AlternateFile) Equal(other *AlternateFile) bool {
	return other != nil && f.ID == other.ID
}

func (f *AlternateFile) String() string {
	return fmt.Sprintf("AlternateFile{id=%d, project=%d, mainFile=%d}", f.ID, f.ProjectID, f.MainFileID)
}

// Project returns the project the alternate file belongs to. The value is
// cached; RefreshProject forces a new fetch.
func (f *AlternateFile) Project() (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project != nil {
		return f.project, nil
	}
	return f.fetchProjectLocked()
}

// RefreshProject fetches the alternate file's project again and returns it.
func (f *AlternateFile) RefreshProject() (*Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchProjectLocked()
}

func (f *AlternateFile) fetchProjectLocked() (*Project, error) {
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

// URL returns the alternate file's site URL.
func (f *AlternateFile) URL() (string, error) {
	project, err := f.Project()
	if err != nil {
		return "", err
	}
	return project.FileURL(f.ID)
}

// DownloadURL returns the alternate file's download URL. The value is cached;
// RefreshDownloadURL forces a new fetch.
func (f *AlternateFile) DownloadURL() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadURL != nil {
		return *f.downloadURL, nil
	}
	return f.fetchDownloadURLLocked()
}

// RefreshDownloadURL fetches the alternate file's download URL again and
// returns it.
func (f *AlternateFile) RefreshDownloadURL() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchDownloadURLLocked()
}

func (f *AlternateFile) fetchDownloadURLLocked() (string, error) {
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

// MainFile returns the alternate file's main file. The value is cached;
// RefreshMainFile forces a new fetch.
func (f *AlternateFile) MainFile() (*File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mainFile != nil {
		return f.mainFile, nil
	}
	return f.fetchMainFileLocked()
}

// RefreshMainFile fetches the alternate file's main file again and returns it.
func (f *AlternateFile) RefreshMainFile() (*File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchMainFileLocked()
}

func (f *AlternateFile) fetchMainFileLocked() (*File, error) {
	file, err := f.client.File(f.ProjectID, f.MainFileID)
	if err != nil {
		return f.mainFile, err
	}
	if file == nil {
		return f.mainFile, unresolvedf("main file of %s", f)
	}
	f.mainFile = file
	return f.mainFile, nil
}
