package ports

import "go.trai.ch/stitch/internal/core/domain"

// ArtifactJanitor defines the interface for removing superseded artifacts.
//
//go:generate go run go.uber.org/mock/mockgen -source=janitor.go -destination=mocks/mock_janitor.go -package=mocks
type ArtifactJanitor interface {
	// Sweep deletes every artifact next to output that follows its naming convention,
	// except keep. An empty keep removes them all.
	Sweep(output, keep string) domain.CleanupResult
}
