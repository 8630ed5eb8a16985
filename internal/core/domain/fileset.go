package domain

// FileSet is an ordered, duplicate-free list of regular file paths.
type FileSet []string

// Len returns the number of files in the set.
func (f FileSet) Len() int {
	return len(f)
}

