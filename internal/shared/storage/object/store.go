package object

import (
	"context"
	"errors"
	"io"
	"path"

	"resume-builder/internal/shared/util"
)

// ErrNotFound is returned by Open when no object exists at the key.
var ErrNotFound = errors.New("object not found")

// ObjectStore saves and retrieves rendered artifacts by key.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

// ExportKey places an export artifact under the owner's hashed namespace.
func ExportKey(userID, exportID, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join("exports", util.HashUserKey(userID), exportID, name), nil
}
