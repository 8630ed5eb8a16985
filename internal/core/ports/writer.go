package ports

//go:generate go run go.uber.org/mock/mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks

// ArtifactWriter defines the interface for persisting artifacts.
type ArtifactWriter interface {
	// Write stores data at path. Readers observe either the old or the new content.
	Write(path string, data []byte) error
	// Exists reports whether a file is present at path.
	Exists(path string) (bool, error)
}
