package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path"

	"github.com/nfnt/resize"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

var AllowedImageMimes = []string{"image/jpeg", "image/png", "image/gif"}

const PostImagePrefix = "posts"

// ProcessImage uploads the image of the multipart field key. It returns nil
// if the request has no such file. An unsupported file returns an
// InvalidForm error.
func ProcessImage(ctx context.Context, fileStorage storage.Storage, key string) (*storage.UploadResponse, error) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return nil, nil
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, errorx.New(errorx.InvalidForm, "Cannot read the uploaded file")
	}
	defer file.Close()

	cfg := xcontext.Configs(ctx).File
	if header.Size > cfg.MaxSize {
		return nil, errorx.New(errorx.InvalidForm, "The image must not exceed %d bytes", cfg.MaxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errorx.New(errorx.InvalidForm, "Cannot read the uploaded file")
	}

	mime := http.DetectContentType(data)
	if !slices.Contains(AllowedImageMimes, mime) {
		return nil, errorx.New(errorx.InvalidForm,
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image")
	}

	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, errorx.New(errorx.InvalidForm,
			"Upload a valid image. The file you uploaded was either not an image or a corrupted image")
	}

	// Gifs are kept as-is to keep their animation.
	if mime != "image/gif" && cfg.MaxImageWidth > 0 && img.Bounds().Dx() > cfg.MaxImageWidth {
		img = resize.Resize(uint(cfg.MaxImageWidth), 0, img, resize.Lanczos3)
		data, err = encodeImg(mime, img)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.ImageBucket,
		Prefix:   PostImagePrefix,
		FileName: path.Base(header.Filename),
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported mime %s", mime)
	}

	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported mime %s", mime)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
