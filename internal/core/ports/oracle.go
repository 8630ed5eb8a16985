package ports

import "go.trai.ch/stitch/internal/core/domain"

// StalenessOracle defines the interface for checking whether an artifact is current.
//
//go:generate go run go.uber.org/mock/mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type StalenessOracle interface {
	// IsFresh reports whether the artifact at path was produced for fingerprint fp.
	IsFresh(path string, fp domain.Fingerprint) (bool, error)
}
