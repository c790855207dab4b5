package storage

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)

	// Delete removes the object which is addressed by the url returned from
	// Upload. Deleting a missing object is not an error.
	Delete(ctx context.Context, url string) error
}

type UploadObject struct {
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

// newKey builds a unique object key under the prefix of object. Only the
// base name of the client file name is kept.
func (o *UploadObject) newKey() string {
	name := path.Base(strings.ReplaceAll(o.FileName, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}

	return path.Join(o.Prefix, uuid.NewString()+"-"+name)
}

type UploadResponse struct {
	Url      string
	FileName string
}
