package curse

// FileChange couples two different files of the same project, a designated
// old file and a designated new file. The designation is the caller's claim
// about direction; OlderFile and NewerFile always resolve the pair
// chronologically, and a change whose designated old file is chronologically
// newer is a downgrade.
type FileChange struct {
	oldFile *File
	newFile *File
}

// NewFileChange returns a FileChange for the given pair. Both files must be
// non-nil, belong to the same project and not be equal.
func NewFileChange(oldFile, newFile *File) (*FileChange, error) {
	if oldFile == nil {
		return nil, preconditionf("oldFile should not be nil")
	}
	if newFile == nil {
		return nil, preconditionf("newFile should not be nil")
	}
	if !oldFile.SameProject(newFile) {
		return nil, preconditionf("oldFile and newFile should belong to the same project")
	}
	if oldFile.Equal(newFile) {
		return nil, preconditionf("oldFile and newFile should represent different files")
	}
	return &FileChange{oldFile: oldFile, newFile: newFile}, nil
}

// ProjectID returns the project ID shared by both files.
func (fc *FileChange) ProjectID() int {
	return fc.oldFile.ProjectID
}

// Project returns the project shared by both files.
func (fc *FileChange) Project() (*Project, error) {
	return fc.oldFile.Project()
}

// OldFile returns the designated old file. It is not necessarily the
// chronologically older one.
func (fc *FileChange) OldFile() *File {
	return fc.oldFile
}

// NewFile returns the designated new file. It is not necessarily the
// chronologically newer one.
func (fc *FileChange) NewFile() *File {
	return fc.newFile
}

// OlderFile returns the chronologically older file of the pair.
func (fc *FileChange) OlderFile() *File {
	if fc.IsDowngrade() {
		return fc.newFile
	}
	return fc.oldFile
}

// NewerFile returns the chronologically newer file of the pair.
func (fc *FileChange) NewerFile() *File {
	if fc.IsDowngrade() {
		return fc.oldFile
	}
	return fc.newFile
}

// IsDowngrade reports whether the designated old file is chronologically
// newer than the designated new file.
func (fc *FileChange) IsDowngrade() bool {
	return fc.oldFile.NewerThan(fc.newFile)
}
