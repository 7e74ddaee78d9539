package ports

import "io"

// FileStore receives raw upload bytes and returns the collision-resistant
// stored name. The rest of the system treats that name as opaque.
type FileStore interface {
	Save(originalName string, r io.Reader) (string, error)
}
