package ports

import "go.trai.ch/stitch/internal/core/domain"

// Fingerprinter defines the interface for computing build fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Compute digests the modification times of files together with the configuration.
	Compute(files domain.FileSet, cfg domain.Config) (domain.Fingerprint, error)
}
