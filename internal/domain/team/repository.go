package team

import "context"

// Repository describes the curated-table persistence needs of the
// resolver. Load returns a complete snapshot; the resolver owns caching
// and refresh.
type Repository interface {
	Load(ctx context.Context) (Tables, error)
}
