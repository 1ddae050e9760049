package storage

import (
	"context"
	"path"
	"strings"
)

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
}

type UploadObject struct {
	Bucket string
	Prefix string

	// FileName is the name given by the client. It only contributes its
	// extension to the stored key.
	FileName string
	Mime     string
	Data     []byte
}

// Key returns the object key stored under Prefix for the given unique id. The
// extension follows Mime and falls back to the one of FileName.
func (o *UploadObject) Key(id string) string {
	ext, ok := mimeExtensions[o.Mime]
	if !ok {
		ext = strings.ToLower(path.Ext(o.FileName))
	}

	return path.Join(o.Prefix, id+ext)
}

type UploadResponse struct {
	URL string
	Key string
}

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}
