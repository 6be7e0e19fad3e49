package object

import "context"

// Store defines the contract for saving and retrieving resume objects.
// Object paths follow the convention <username>/resumes/[<folder_key>/]<name>.
type Store interface {
	Put(ctx context.Context, objectPath string, data []byte, contentType string) error
	Get(ctx context.Context, objectPath string) ([]byte, error)
	Copy(ctx context.Context, srcPath, dstPath string) error
	ExistsWithPrefix(ctx context.Context, prefix string) (bool, error)
	PublicURL(objectPath string) string
}
