// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/stitch/internal/core/domain"

// PathExpander defines the interface for turning configured entries into concrete files.
//
//go:generate go run go.uber.org/mock/mockgen -source=expander.go -destination=mocks/mock_expander.go -package=mocks
type PathExpander interface {
	// Expand resolves dependencies and path-roots relative to root into an ordered,
	// duplicate-free set of regular files. Entries that match nothing contribute nothing.
	Expand(root string, dependencies, paths []string) domain.FileSet
}
