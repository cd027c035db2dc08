package curse

import "slices"

// Files is a sorted set of a project's files ordered by a FileComparator,
// newest first by default.
//
// Because membership is defined by the active comparator, two distinct files
// that compare as equal under it are indistinguishable as set members:
// inserting such a pair keeps only the first. This is a documented contract,
// not an accident: callers supplying their own comparator must make it strong
// enough to distinguish every file they care about, typically by including
// the file ID as a tie-break the way SortByNewest does.
type Files struct {
	files []*File
	cmp   FileComparator
}

// NewFiles returns a Files collection containing the given files ordered
// newest first. Files that compare as equal are deduplicated.
func NewFiles(files []*File) *Files {
	return NewFilesWith(files, SortByNewest)
}

// NewFilesWith returns a Files collection containing the given files ordered
// by the given comparator. Files that compare as equal under the comparator
// are deduplicated.
func NewFilesWith(files []*File, cmp FileComparator) *Files {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, cmp)
	sorted = slices.CompactFunc(sorted, func(a, b *File) bool {
		return cmp(a, b) == 0
	})
	return &Files{files: sorted, cmp: cmp}
}

// Len returns the number of files in the collection.
func (fs *Files) Len() int {
	return len(fs.files)
}

// Slice returns the files in collection order. Mutating the returned slice
// does not affect the collection.
func (fs *Files) Slice() []*File {
	return slices.Clone(fs.files)
}

// First returns the first file in collection order, or nil if the collection
// is empty. Under the default ordering this is the newest file.
func (fs *Files) First() *File {
	if len(fs.files) == 0 {
		return nil
	}
	return fs.files[0]
}

// Add inserts a file at its position in the collection order and reports
// whether it was added. A file that compares as equal to an existing member
// is silently dropped (see the type comment).
func (fs *Files) Add(file *File) bool {
	i, found := slices.BinarySearchFunc(fs.files, file, fs.cmp)
	if found {
		return false
	}
	fs.files = slices.Insert(fs.files, i, file)
	return true
}

// Remove removes the file that compares as equal to the given file and
// reports whether anything was removed.
func (fs *Files) Remove(file *File) bool {
	i, found := slices.BinarySearchFunc(fs.files, file, fs.cmp)
	if !found {
		return false
	}
	fs.files = slices.Delete(fs.files, i, i+1)
	return true
}

// Filter removes all files that do not match the predicate and reports
// whether any were removed.
func (fs *Files) Filter(match func(*File) bool) bool {
	before := len(fs.files)
	fs.files = slices.DeleteFunc(fs.files, func(f *File) bool {
		return !match(f)
	})
	return len(fs.files) != before
}

// FileWithID returns the file with the given ID, or nil if the collection
// holds none. Every member is checked against the target ID regardless of the
// active comparator.
func (fs *Files) FileWithID(id int) (*File, error) {
	if err := checkFileID(id, "id"); err != nil {
		return nil, err
	}
	for _, file := range fs.files {
		if file.ID == id {
			return file, nil
		}
	}
	return nil, nil
}

// WithComparator returns a copy of the collection re-sorted under the given
// comparator. Files that compare as equal under the new comparator are
// deduplicated.
func (fs *Files) WithComparator(cmp FileComparator) *Files {
	return NewFilesWith(fs.files, cmp)
}
