package storage

import (
	"context"
	"io"
)

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket    string
	KeyPrefix string
	Region    string
	Endpoint  string
}

// Service stores uploaded profile images in remote object storage and
// returns a URL suitable for the account's image field.
type Service interface {
	UploadAvatar(ctx context.Context, body io.Reader, ext string, opts UploadOptions) (string, error)
}
